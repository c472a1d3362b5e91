package hclgraph

import (
	"errors"
	"fmt"
	"time"

	"github.com/delaneyj/crosslink/cell"
	"github.com/delaneyj/crosslink/stream"
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"go.uber.org/zap"
)

// prevVar is bound to the previous output of the cell being computed.
const prevVar = "prev"

var (
	ErrDuplicateName = errors.New("duplicate name")
	ErrUnknownName   = errors.New("unknown name")
	ErrNotCtyValue   = errors.New("input is not a cty value")
)

var functions = map[string]function.Function{
	"abs":      stdlib.AbsoluteFunc,
	"ceil":     stdlib.CeilFunc,
	"coalesce": stdlib.CoalesceFunc,
	"concat":   stdlib.ConcatFunc,
	"floor":    stdlib.FloorFunc,
	"format":   stdlib.FormatFunc,
	"length":   stdlib.LengthFunc,
	"lower":    stdlib.LowerFunc,
	"max":      stdlib.MaxFunc,
	"min":      stdlib.MinFunc,
	"upper":    stdlib.UpperFunc,
}

// OnSink receives the input values of a sink every time it runs.
type OnSink func(name string, values []cty.Value) error

type options struct {
	onSink OnSink
	sched  stream.Scheduler
}

type Option func(*options)

func WithSink(fn OnSink) Option {
	return func(o *options) { o.onSink = fn }
}

// WithScheduler is required by graphs declaring delay blocks.
func WithScheduler(s stream.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// Built is a graph wired into a System.
type Built struct {
	sys    *cell.System
	cells  map[string]*cell.Cell
	order  []string
	writes []*Write
}

// Build wires g into sys. Blocks are created in the order sources, cells,
// delays, sinks; within a kind they keep file order.
func Build(sys *cell.System, g *Graph, opts ...Option) (*Built, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	b := &Built{
		sys:    sys,
		cells:  map[string]*cell.Cell{},
		writes: g.Writes,
	}
	log := sys.Logger()

	for _, src := range g.Sources {
		if err := b.add(src.Name, sys.Source(src.Name)); err != nil {
			return nil, err
		}
	}

	for _, def := range g.Cells {
		if err := b.checkName(def.Name); err != nil {
			return nil, err
		}
		if len(def.Inputs) == 0 {
			return nil, fmt.Errorf("cell %q: no inputs, declare a source instead", def.Name)
		}
		inputs, err := b.resolve(def.Name, def.Inputs)
		if err != nil {
			return nil, err
		}
		c, err := sys.New(def.Name, inputs, b.calc(def), def.Persist)
		if err != nil {
			return nil, fmt.Errorf("cell %q: %w", def.Name, err)
		}
		if err := b.add(def.Name, c); err != nil {
			return nil, err
		}
		log.Debug("cell wired", zap.String("name", def.Name), zap.Strings("inputs", def.Inputs))
	}

	for _, def := range g.Delays {
		if err := b.checkName(def.Name); err != nil {
			return nil, err
		}
		if o.sched == nil {
			return nil, fmt.Errorf("delay %q: no scheduler configured", def.Name)
		}
		after, err := time.ParseDuration(def.After)
		if err != nil {
			return nil, fmt.Errorf("delay %q: %w", def.Name, err)
		}
		inputs, err := b.resolve(def.Name, []string{def.Input})
		if err != nil {
			return nil, err
		}
		c, err := stream.Delay(sys, o.sched, after, inputs[0])
		if err != nil {
			return nil, fmt.Errorf("delay %q: %w", def.Name, err)
		}
		if err := b.add(def.Name, c); err != nil {
			return nil, err
		}
	}

	for _, def := range g.Sinks {
		if err := b.checkName(def.Name); err != nil {
			return nil, err
		}
		inputs, err := b.resolve(def.Name, def.Inputs)
		if err != nil {
			return nil, err
		}
		name := def.Name
		c, err := sys.Sink(name, inputs, func(args []any) error {
			if o.onSink == nil {
				return nil
			}
			values, err := ctyArgs(name, args)
			if err != nil {
				return err
			}
			return o.onSink(name, values)
		})
		if err != nil {
			return nil, fmt.Errorf("sink %q: %w", def.Name, err)
		}
		if err := b.add(def.Name, c); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (b *Built) checkName(name string) error {
	if name == prevVar {
		return fmt.Errorf("%q is reserved", prevVar)
	}
	if _, ok := b.cells[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	return nil
}

func (b *Built) add(name string, c *cell.Cell) error {
	if err := b.checkName(name); err != nil {
		return err
	}
	b.cells[name] = c
	b.order = append(b.order, name)
	return nil
}

func (b *Built) resolve(owner string, names []string) ([]*cell.Cell, error) {
	inputs := make([]*cell.Cell, len(names))
	for i, name := range names {
		c, ok := b.cells[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w %q", owner, ErrUnknownName, name)
		}
		inputs[i] = c
	}
	return inputs, nil
}

func (b *Built) calc(def *Cell) cell.CalcFunc {
	return func(c *cell.Cell, args []any) (any, error) {
		values, err := ctyArgs(def.Name, args)
		if err != nil {
			return nil, err
		}
		vars := make(map[string]cty.Value, len(values)+1)
		for i, name := range def.Inputs {
			vars[name] = values[i]
		}
		vars[prevVar] = cty.NullVal(cty.DynamicPseudoType)
		if prev, ok := c.Value().(cty.Value); ok {
			vars[prevVar] = prev
		}

		v, diags := def.Value.Value(&hcl.EvalContext{
			Variables: vars,
			Functions: functions,
		})
		if diags.HasErrors() {
			return nil, diags
		}
		return v, nil
	}
}

func ctyArgs(owner string, args []any) ([]cty.Value, error) {
	values := make([]cty.Value, len(args))
	for i, arg := range args {
		v, ok := arg.(cty.Value)
		if !ok {
			return nil, fmt.Errorf("%q input %d: %w (got %T)", owner, i, ErrNotCtyValue, arg)
		}
		values[i] = v
	}
	return values, nil
}

// Cell returns the cell wired for name.
func (b *Built) Cell(name string) (*cell.Cell, bool) {
	c, ok := b.cells[name]
	return c, ok
}

// Cells returns every wired cell in creation order.
func (b *Built) Cells() []*cell.Cell {
	out := make([]*cell.Cell, len(b.order))
	for i, name := range b.order {
		out[i] = b.cells[name]
	}
	return out
}

// Put writes v into the source called name.
func (b *Built) Put(name string, v cty.Value) error {
	c, ok := b.cells[name]
	if !ok {
		return fmt.Errorf("write: %w %q", ErrUnknownName, name)
	}
	if err := b.sys.Put(c, v); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	return nil
}

// Apply performs the write blocks of the graph in file order and stops at the
// first failure.
func (b *Built) Apply() error {
	ctx := &hcl.EvalContext{Functions: functions}
	for _, w := range b.writes {
		v, diags := w.Value.Value(ctx)
		if diags.HasErrors() {
			return fmt.Errorf("write %q: %w", w.Name, diags)
		}
		if err := b.Put(w.Name, v); err != nil {
			return err
		}
	}
	return nil
}
