package cell

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// MaxInputs is the hard ceiling on the number of inputs of a single cell.
// Readiness of every input slot is tracked in one bit of a uint32.
const MaxInputs = 32

type invalid struct{}

func (invalid) String() string { return "<invalid>" }

// Invalid marks a value or input slot that is not yet available. It can never
// be written into a source and a calc returning it produces no output.
var Invalid any = invalid{}

// IsInvalid reports whether v is the Invalid sentinel.
func IsInvalid(v any) bool {
	_, ok := v.(invalid)
	return ok
}

// CalcFunc computes the value of a cell from the cached values of its inputs.
// c is the cell being recomputed, so c.Value() is its previous output.
// args is owned by the cell and must not be retained or modified.
// Returning Invalid means "no output yet": the cell keeps its previous value
// and nothing is propagated downstream. Returning an error aborts the write
// transaction that triggered the computation.
type CalcFunc func(c *Cell, args []any) (any, error)

// use is one edge from an upstream cell to an input slot of target.
type use struct {
	target *Cell
	slot   int
}

type Cell struct {
	sys    *System
	serial uint64
	label  string

	value       any
	isSource    bool
	inputs      []*Cell
	inputValues []any
	updated     uint32 // slots delivered during the latest propagation
	missing     uint32 // slots currently holding Invalid
	calc        CalcFunc
	persist     bool
	ownUses     []use
}

func passThrough(_ *Cell, args []any) (any, error) {
	if len(args) == 0 {
		return Invalid, nil
	}
	return args[0], nil
}

// New builds a cell depending on inputs and wires it into the graph. A cell
// without inputs is a source and is the only kind that accepts Put. A nil calc
// passes the first input through unchanged.
//
// If every input already has a value, calc runs immediately and its result
// becomes the initial value of the cell.
func (s *System) New(label string, inputs []*Cell, calc CalcFunc, persist bool) (*Cell, error) {
	if len(inputs) > MaxInputs {
		return nil, fmt.Errorf("%w: %q has %d inputs, up to %d are supported", ErrTooManyInputs, label, len(inputs), MaxInputs)
	}
	for i, in := range inputs {
		if in == nil {
			return nil, fmt.Errorf("cell %q: input %d is nil", label, i)
		}
		if in.sys != s {
			return nil, fmt.Errorf("%w: input %q of %q", ErrForeignCell, in.label, label)
		}
	}
	if calc == nil {
		calc = passThrough
	}

	s.constructed++
	c := &Cell{
		sys:      s,
		serial:   s.constructed,
		label:    label,
		value:    Invalid,
		isSource: len(inputs) == 0,
		inputs:   slices.Clone(inputs),
		calc:     calc,
		persist:  persist,
	}

	if c.isSource {
		c.inputValues = []any{Invalid}
		return c, nil
	}

	c.inputValues = make([]any, len(inputs))
	for i, in := range inputs {
		c.inputValues[i] = in.value
		if IsInvalid(in.value) {
			c.missing |= 1 << i
		}
		in.ownUses = append(in.ownUses, use{target: c, slot: i})
	}

	if c.missing == 0 {
		v, err := c.calc(c, c.inputValues)
		if err != nil {
			c.detach()
			return nil, fmt.Errorf("cell %q: initial calc: %w", label, err)
		}
		c.value = v
	}
	return c, nil
}

// Source builds a cell without inputs.
func (s *System) Source(label string) *Cell {
	c, _ := s.New(label, nil, nil, false)
	return c
}

// Sink builds a cell that only runs fn for its side effects. It never
// produces a value, so nothing can usefully depend on it.
func (s *System) Sink(label string, inputs []*Cell, fn func(args []any) error) (*Cell, error) {
	return s.New(label, inputs, func(_ *Cell, args []any) (any, error) {
		return Invalid, fn(args)
	}, false)
}

// detach unhooks c from its inputs without pruning them.
func (c *Cell) detach() {
	for i, in := range c.inputs {
		in.dropUse(c, i)
	}
	c.inputs = nil
	c.inputValues = nil
}

func (c *Cell) dropUse(target *Cell, slot int) {
	idx := slices.IndexFunc(c.ownUses, func(u use) bool {
		return u.target == target && u.slot == slot
	})
	if idx >= 0 {
		c.ownUses = slices.Delete(c.ownUses, idx, idx+1)
	}
}

// Retain exempts c from being pruned when it loses its last dependent.
func (c *Cell) Retain() *Cell {
	c.persist = true
	return c
}

func (c *Cell) System() *System { return c.sys }
func (c *Cell) Label() string   { return c.label }
func (c *Cell) Value() any      { return c.value }
func (c *Cell) IsSource() bool  { return c.isSource }
func (c *Cell) Persist() bool   { return c.persist }

// UpdatedMask has bit i set when input i was delivered during the most recent
// propagation that reached c.
func (c *Cell) UpdatedMask() uint32 { return c.updated }

// MissingMask has bit i set while input i holds Invalid.
func (c *Cell) MissingMask() uint32 { return c.missing }

func (c *Cell) Inputs() []*Cell { return slices.Clone(c.inputs) }

// InputValues returns a copy of the cached input values. For a source it is
// the single slot holding the last written value.
func (c *Cell) InputValues() []any { return slices.Clone(c.inputValues) }

// Dependents lists the cells that use c as an input, once per input slot.
func (c *Cell) Dependents() []*Cell {
	out := make([]*Cell, len(c.ownUses))
	for i, u := range c.ownUses {
		out[i] = u.target
	}
	return out
}

// ID is a stable fingerprint of the cell within its System.
func (c *Cell) ID() uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%d\x00%s", c.serial, c.label))
}

func (c *Cell) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.label
}
