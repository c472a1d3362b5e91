// Package typed wraps cell construction with statically typed calc
// functions. Computed and Effect constructors are generated by cmd/codegen.
package typed

//go:generate go run ../cmd/codegen --count 4

import (
	"errors"
	"fmt"

	"github.com/delaneyj/crosslink/cell"
)

var ErrType = errors.New("unexpected input type")

func argAt[T any](label string, args []any, i int) (T, error) {
	v, ok := args[i].(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q input %d is %T, want %T", ErrType, label, i, args[i], zero)
	}
	return v, nil
}

// Value returns the value of c as a T. ok is false while c has no value or
// when it holds something else.
func Value[T any](c *cell.Cell) (v T, ok bool) {
	v, ok = c.Value().(T)
	return v, ok
}

// Source builds a source and writes the initial value into it.
func Source[T any](sys *cell.System, label string, initial T) (*cell.Cell, error) {
	c := sys.Source(label)
	if err := sys.Put(c, initial); err != nil {
		return nil, err
	}
	return c, nil
}
