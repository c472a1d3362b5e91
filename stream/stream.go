// Package stream builds stream style operators out of cells. Every operator
// here is only a recipe of cell.System.New and cell.System.Put calls.
package stream

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/delaneyj/crosslink/cell"
	"go.uber.org/zap"
)

// FoldFunc combines the accumulated value with the next input.
type FoldFunc func(acc, next any) (any, error)

// MultiFoldFunc combines the accumulated value with the values of several
// inputs.
type MultiFoldFunc func(acc any, next []any) (any, error)

// Scheduler runs fn after d. Writes made from fn must not race with other
// users of the System, see eventloop.Loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Lift turns fn into a constructor of cells computing fn over its arguments.
// Arguments that are not cells are wrapped in constant source cells first.
// An empty label is replaced with the name of fn.
func Lift(s *cell.System, label string, fn cell.CalcFunc) func(args ...any) (*cell.Cell, error) {
	if label == "" {
		label = funcName(fn)
	}
	return func(args ...any) (*cell.Cell, error) {
		inputs := make([]*cell.Cell, len(args))
		for i, arg := range args {
			if c, ok := arg.(*cell.Cell); ok {
				inputs[i] = c
				continue
			}
			k := s.Source(s.Unique("genconst"))
			if err := s.Put(k, arg); err != nil {
				return nil, fmt.Errorf("lift %s: constant %d: %w", label, i, err)
			}
			inputs[i] = k
		}
		return s.New(s.Unique(label), inputs, fn, false)
	}
}

// Merge returns a source that receives every value produced by a or b, in
// the order they are produced.
func Merge(s *cell.System, a, b *cell.Cell) (*cell.Cell, error) {
	result := s.Source(fmt.Sprintf("merger of %s and %s", a.Label(), b.Label()))
	forward := func(_ *cell.Cell, args []any) (any, error) {
		return cell.Invalid, s.Put(result, args[0])
	}
	if _, err := s.New("merge from left "+a.Label(), []*cell.Cell{a}, forward, false); err != nil {
		return nil, err
	}
	if _, err := s.New("merge from right "+b.Label(), []*cell.Cell{b}, forward, false); err != nil {
		return nil, err
	}
	return result, nil
}

// Scan folds the values of src starting from seed. The seed itself is
// emitted first.
func Scan(s *cell.System, fn FoldFunc, seed any, src *cell.Cell) (*cell.Cell, error) {
	starter := s.Source("scan starter")
	if err := s.Put(starter, seed); err != nil {
		return nil, fmt.Errorf("scan seed: %w", err)
	}
	folded, err := Scan0(s, fn, seed, src)
	if err != nil {
		return nil, err
	}
	return Merge(s, starter, folded)
}

// Scan0 folds the values of src starting from seed without emitting the seed.
func Scan0(s *cell.System, fn FoldFunc, seed any, src *cell.Cell) (*cell.Cell, error) {
	return s.New(s.Unique("scanned "+src.Label()), []*cell.Cell{src}, func(c *cell.Cell, args []any) (any, error) {
		return fn(accumulator(c, seed), args[0])
	}, false)
}

// MultiScan folds over several inputs at once. It emits whenever any of them
// changes, once all of them have a value.
func MultiScan(s *cell.System, fn MultiFoldFunc, seed any, srcs ...*cell.Cell) (*cell.Cell, error) {
	labels := make([]string, len(srcs))
	for i, src := range srcs {
		labels[i] = src.Label()
	}
	return s.New(s.Unique("multiscanned "+strings.Join(labels, ", ")), srcs, func(c *cell.Cell, args []any) (any, error) {
		return fn(accumulator(c, seed), args)
	}, false)
}

func accumulator(c *cell.Cell, seed any) any {
	if acc := c.Value(); !cell.IsInvalid(acc) {
		return acc
	}
	return seed
}

// Delay re-emits every value of src on a new source after d. The write
// happens from sched, outside of the transaction that produced the value.
// Failures of the delayed write are logged on the System logger.
func Delay(s *cell.System, sched Scheduler, d time.Duration, src *cell.Cell) (*cell.Cell, error) {
	out := s.Source(fmt.Sprintf("delayed with %s of %s", d, src.Label()))
	_, err := s.Sink(fmt.Sprintf("delaying with %s of %s", d, src.Label()), []*cell.Cell{src}, func(args []any) error {
		v := args[0]
		sched.AfterFunc(d, func() {
			if err := s.Put(out, v); err != nil {
				s.Logger().Error("delayed write failed",
					zap.String("target", out.Label()),
					zap.Error(err),
				)
			}
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func funcName(fn any) string {
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "lifted"
	}
	return name
}
