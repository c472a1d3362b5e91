package cell

import (
	"fmt"

	"go.uber.org/zap"
)

// Put writes v into the source c and recomputes everything downstream of it.
//
// A Put issued while another write is still propagating (typically from inside
// a CalcFunc) is queued and runs as its own transaction once the current one
// has fully settled. Writes therefore never interleave and run in FIFO order.
//
// Writing to the cell whose calc is running, to a computed cell or writing
// Invalid is a protocol violation: the current transaction is abandoned, all
// queued writes are discarded and the error is returned both to the offending
// caller and, when nested, from the outermost Put.
func (s *System) Put(c *Cell, v any) error {
	if s.aborted != nil {
		return s.aborted
	}
	if c == nil {
		return s.rollback(fmt.Errorf("%w: nil cell", ErrNotASource))
	}
	if c.sys != s {
		return s.rollback(fmt.Errorf("%w: %q", ErrForeignCell, c.label))
	}
	if c == s.currentCalc {
		return s.rollback(fmt.Errorf("%w: %q", ErrSelfWrite, c.label))
	}
	if !c.isSource {
		return s.rollback(fmt.Errorf("%w: %q", ErrNotASource, c.label))
	}
	if c == s.currentPut {
		s.log.Warn("circularity detected",
			zap.String("target", c.label),
			zap.Stringer("calc", s.currentCalc),
		)
	}
	if IsInvalid(v) {
		return s.rollback(fmt.Errorf("%w: %q", ErrInvalidValue, c.label))
	}

	if s.currentPut != nil {
		s.pending = append(s.pending, write{cell: c, value: v})
		return nil
	}
	return s.transact(c, v)
}

// MustPut is Put for callers that treat a protocol violation as a bug.
func (s *System) MustPut(c *Cell, v any) {
	if err := s.Put(c, v); err != nil {
		panic(err)
	}
}

func (s *System) transact(c *Cell, v any) error {
	defer func() {
		if r := recover(); r != nil {
			s.reset()
			panic(r)
		}
	}()

	for {
		s.currentPut = c
		c.inputValues[0] = v
		s.invalidate(c)
		s.propagate(c)
		s.currentCalc = nil
		s.currentPut = nil

		if err := s.aborted; err != nil {
			s.reset()
			return err
		}
		if len(s.pending) == 0 {
			return nil
		}
		next := s.pending[0]
		s.pending[0] = write{}
		s.pending = s.pending[1:]
		c, v = next.cell, next.value
	}
}

func (s *System) rollback(err error) error {
	nested := s.currentPut != nil
	s.reset()
	if nested {
		s.aborted = err
	}
	return err
}

func (s *System) reset() {
	s.currentCalc = nil
	s.currentPut = nil
	s.pending = nil
	s.aborted = nil
}
