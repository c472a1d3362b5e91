package cell

// Remove detaches c from the graph.
//
// Every input of c loses the edge to c and is removed in turn once nothing
// uses it anymore, unless it is persisted. Every cell depending on c is
// removed as well, persisted or not. Removing an already detached cell is a
// no-op.
func (s *System) Remove(c *Cell) {
	for len(c.inputs) > 0 {
		slot := len(c.inputs) - 1
		up := c.inputs[slot]
		c.inputs[slot] = nil
		c.inputs = c.inputs[:slot]
		c.inputValues = c.inputValues[:slot]
		c.missing &^= 1 << slot
		c.updated &^= 1 << slot

		up.dropUse(c, slot)
		if len(up.ownUses) == 0 && !up.persist {
			s.Remove(up)
		}
	}

	for len(c.ownUses) > 0 {
		s.Remove(c.ownUses[0].target)
	}
}
