package cell

import (
	"strconv"

	"go.uber.org/zap"
)

type write struct {
	cell  *Cell
	value any
}

// System owns a cell graph and its write transaction state. It is not safe
// for concurrent use: every call, including the ones made from inside a
// CalcFunc, must come from the same goroutine.
type System struct {
	log *zap.Logger

	currentCalc *Cell
	currentPut  *Cell
	pending     []write
	aborted     error

	constructed uint64
	names       map[string]int
}

type Option func(*System)

// WithLogger sets the logger used to report circular writes.
func WithLogger(l *zap.Logger) Option {
	return func(s *System) {
		if l != nil {
			s.log = l
		}
	}
}

func NewSystem(opts ...Option) *System {
	s := &System{
		log:   zap.NewNop(),
		names: map[string]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *System) Logger() *zap.Logger { return s.log }

// Unique returns label the first time it is seen and label followed by a
// counter afterwards.
func (s *System) Unique(label string) string {
	n, ok := s.names[label]
	if !ok {
		s.names[label] = 1
		return label
	}
	n++
	s.names[label] = n
	return label + " " + strconv.Itoa(n)
}

type Stats struct {
	Pending          int
	CurrentCalc      *Cell
	CurrentPut       *Cell
	TotalConstructed uint64
}

// Stats is a read-only snapshot of the transaction state. Outside of a write
// it always reports an empty queue and nil current cells.
func (s *System) Stats() Stats {
	return Stats{
		Pending:          len(s.pending),
		CurrentCalc:      s.currentCalc,
		CurrentPut:       s.currentPut,
		TotalConstructed: s.constructed,
	}
}
