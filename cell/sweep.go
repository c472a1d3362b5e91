package cell

import "fmt"

// A write runs two passes over the subgraph reachable from the written
// source. invalidate marks every reachable slot Invalid first, so that
// propagate can hold back a cell until all of its changed inputs have been
// delivered again. That keeps each calc to one run per write and never lets
// it see a mix of fresh and stale inputs.

func (s *System) invalidate(c *Cell) {
	for i := 0; i < len(c.ownUses); i++ {
		c.ownUses[i].invalidate()
	}
}

func (u use) invalidate() {
	t := u.target
	if IsInvalid(t.inputValues[u.slot]) {
		return
	}
	t.inputValues[u.slot] = Invalid
	t.updated = 0
	t.missing |= 1 << u.slot
	t.sys.invalidate(t)
}

func (u use) propagate(from *Cell) {
	t := u.target
	mask := uint32(1) << u.slot
	t.inputValues[u.slot] = from.value
	t.updated |= mask
	t.missing &^= mask
	t.sys.propagate(t)
}

func (s *System) propagate(c *Cell) {
	if s.aborted != nil {
		return
	}
	s.currentCalc = c
	if c.missing != 0 {
		return
	}

	v, err := c.calc(c, c.inputValues)
	if s.aborted != nil {
		return
	}
	if err != nil {
		s.aborted = fmt.Errorf("cell %q: %w", c.label, err)
		return
	}
	if IsInvalid(v) {
		return
	}

	c.value = v
	for i := 0; i < len(c.ownUses); i++ {
		c.ownUses[i].propagate(c)
		if s.aborted != nil {
			return
		}
	}
}
