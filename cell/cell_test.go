package cell_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/crosslink/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireSettled(t *testing.T, sys *cell.System) {
	t.Helper()
	st := sys.Stats()
	assert.Zero(t, st.Pending, "queue must be empty when done")
	assert.Nil(t, st.CurrentCalc, "currentCalc must be reset")
	assert.Nil(t, st.CurrentPut, "currentPut must be reset")
}

func newCell(t *testing.T, sys *cell.System, label string, inputs []*cell.Cell, calc cell.CalcFunc) *cell.Cell {
	t.Helper()
	c, err := sys.New(label, inputs, calc, false)
	require.NoError(t, err)
	return c
}

func newSink(t *testing.T, sys *cell.System, label string, inputs []*cell.Cell, fn func(args []any) error) *cell.Cell {
	t.Helper()
	c, err := sys.Sink(label, inputs, fn)
	require.NoError(t, err)
	return c
}

func TestTwoCells(t *testing.T) {
	sys := cell.NewSystem()

	testVar, callCount := 1, 0
	source := sys.Source("source")
	sink := newSink(t, sys, "sink", []*cell.Cell{source}, func(args []any) error {
		testVar = args[0].(int) * 3
		callCount++
		return nil
	})

	assert.Equal(t, 1, testVar, "DAG is set up, but no input happened yet")
	assert.Equal(t, 0, callCount)
	assert.Equal(t, uint32(0), sink.UpdatedMask())

	require.NoError(t, sys.Put(source, 2))
	assert.Equal(t, 6, testVar)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, uint32(1), sink.UpdatedMask())

	require.NoError(t, sys.Put(source, 5))
	assert.Equal(t, 15, testVar)
	assert.Equal(t, 2, callCount)

	err := sys.Put(source, cell.Invalid)
	require.ErrorIs(t, err, cell.ErrInvalidValue)
	assert.Equal(t, 15, testVar, "sink was not invoked again")
	assert.Equal(t, 2, callCount)
	assert.Equal(t, 5, source.Value())

	requireSettled(t, sys)
}

func TestSelfInsertingNode(t *testing.T) {
	sys := cell.NewSystem()

	source := sys.Source("source")
	var inner error
	newCell(t, sys, "sink", []*cell.Cell{source}, func(c *cell.Cell, args []any) (any, error) {
		if inner == nil {
			inner = sys.Put(c, "some value")
		}
		return cell.Invalid, nil
	})

	err := sys.Put(source, "whatever")
	require.ErrorIs(t, err, cell.ErrSelfWrite)
	assert.ErrorIs(t, inner, cell.ErrSelfWrite)
	requireSettled(t, sys)

	// The system is usable again once the failed write is rolled back.
	require.NoError(t, sys.Put(source, "again"))
	assert.Equal(t, "again", source.Value())
	requireSettled(t, sys)
}

func TestOnlySourcesCanBePut(t *testing.T) {
	sys := cell.NewSystem()

	source1 := sys.Source("")
	source2 := sys.Source("just another source")
	source3 := newCell(t, sys, "source with explicit empty input", []*cell.Cell{}, nil)
	calls := 0
	nonSource := newCell(t, sys, "a non-source", []*cell.Cell{source1}, func(_ *cell.Cell, args []any) (any, error) {
		calls++
		return args[0], nil
	})

	require.NoError(t, sys.Put(source1, 0))
	require.NoError(t, sys.Put(source2, 0))
	require.NoError(t, sys.Put(source3, 0))
	assert.Equal(t, 1, calls)

	err := sys.Put(nonSource, 1)
	require.ErrorIs(t, err, cell.ErrNotASource)
	assert.Equal(t, 0, nonSource.Value())
	assert.Equal(t, 1, calls)

	requireSettled(t, sys)
}

func TestTooManyInputs(t *testing.T) {
	sys := cell.NewSystem()

	inputs := make([]*cell.Cell, cell.MaxInputs+1)
	for i := range inputs {
		inputs[i] = sys.Source("s")
	}
	_, err := sys.New("wide", inputs, nil, false)
	require.ErrorIs(t, err, cell.ErrTooManyInputs)
	for _, in := range inputs {
		assert.Empty(t, in.Dependents(), "failed construction must not wire edges")
	}

	c, err := sys.New("widest", inputs[:cell.MaxInputs], func(_ *cell.Cell, args []any) (any, error) {
		return len(args), nil
	}, false)
	require.NoError(t, err)
	assert.Equal(t, ^uint32(0), c.MissingMask())

	for _, in := range inputs[:cell.MaxInputs] {
		require.NoError(t, sys.Put(in, 1))
	}
	assert.Equal(t, uint32(0), c.MissingMask())
	assert.Equal(t, cell.MaxInputs, c.Value())
	requireSettled(t, sys)
}

func TestForeignCell(t *testing.T) {
	a, b := cell.NewSystem(), cell.NewSystem()
	src := a.Source("src")

	_, err := b.New("d", []*cell.Cell{src}, nil, false)
	require.ErrorIs(t, err, cell.ErrForeignCell)
	require.ErrorIs(t, b.Put(src, 1), cell.ErrForeignCell)
	requireSettled(t, b)
}

func TestPresenceOfPreviousValue(t *testing.T) {
	sys := cell.NewSystem()

	var values, prevValues []any
	source := sys.Source("source")
	newCell(t, sys, "sink", []*cell.Cell{source}, func(c *cell.Cell, args []any) (any, error) {
		v := 2*args[0].(int) + 1
		values = append(values, v)
		prevValues = append(prevValues, c.Value())
		return v, nil
	})

	assert.Empty(t, values)
	assert.Empty(t, prevValues)

	require.NoError(t, sys.Put(source, 3))
	assert.Equal(t, []any{7}, values)
	assert.Equal(t, []any{cell.Invalid}, prevValues)

	require.NoError(t, sys.Put(source, 5))
	assert.Equal(t, []any{7, 11}, values)
	assert.Equal(t, []any{cell.Invalid, 7}, prevValues)

	require.NoError(t, sys.Put(source, -81))
	assert.Equal(t, []any{7, 11, -161}, values)
	assert.Equal(t, []any{cell.Invalid, 7, 11}, prevValues)

	requireSettled(t, sys)
}

func TestTwoSourcesOneTarget(t *testing.T) {
	sys := cell.NewSystem()

	testVar, callCount := 1, 0
	s1 := sys.Source("source 1")
	s2 := sys.Source("source 2")
	sink := newSink(t, sys, "sink", []*cell.Cell{s1, s2}, func(args []any) error {
		testVar = args[0].(int) * args[1].(int)
		callCount++
		return nil
	})

	assert.Equal(t, uint32(0), sink.UpdatedMask())
	assert.Equal(t, uint32(0b11), sink.MissingMask())

	require.NoError(t, sys.Put(s1, 2))
	assert.Equal(t, 1, testVar, "still waiting for source 2")
	assert.Equal(t, 0, callCount)
	assert.Equal(t, uint32(0b01), sink.UpdatedMask())
	assert.Equal(t, uint32(0b10), sink.MissingMask())

	require.NoError(t, sys.Put(s2, 21))
	assert.Equal(t, 42, testVar)
	assert.Equal(t, 1, callCount)
	// source 1 is still flagged: its earlier delivery never reached the calc.
	assert.Equal(t, uint32(0b11), sink.UpdatedMask())

	require.NoError(t, sys.Put(s1, 5))
	assert.Equal(t, 105, testVar)
	assert.Equal(t, 2, callCount)
	assert.Equal(t, uint32(0b01), sink.UpdatedMask())

	require.NoError(t, sys.Put(s2, 5))
	assert.Equal(t, 25, testVar)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, uint32(0b10), sink.UpdatedMask())

	requireSettled(t, sys)
}

func TestReverseOrdering(t *testing.T) {
	sys := cell.NewSystem()

	testVar, callCount := 1, 0
	source := sys.Source("source")
	require.NoError(t, sys.Put(source, 2))
	assert.Equal(t, 0, callCount)

	newSink(t, sys, "sink", []*cell.Cell{source}, func(args []any) error {
		testVar = args[0].(int) * 3
		callCount++
		return nil
	})
	assert.Equal(t, 6, testVar, "sink ran as it had sufficient input when added")
	assert.Equal(t, 1, callCount)

	requireSettled(t, sys)
}

func TestInitialCalcError(t *testing.T) {
	sys := cell.NewSystem()

	source := sys.Source("source")
	require.NoError(t, sys.Put(source, 1))

	boom := errors.New("boom")
	_, err := sys.New("broken", []*cell.Cell{source}, func(*cell.Cell, []any) (any, error) {
		return nil, boom
	}, false)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, source.Dependents())
}

func TestCalcErrorAbortsTransaction(t *testing.T) {
	sys := cell.NewSystem()

	boom := errors.New("boom")
	var after []int
	source := sys.Source("source")
	other := sys.Source("other")
	failing := newCell(t, sys, "failing", []*cell.Cell{source}, func(_ *cell.Cell, args []any) (any, error) {
		if err := sys.Put(other, args[0]); err != nil {
			return nil, err
		}
		if args[0].(int) < 0 {
			return nil, boom
		}
		return args[0], nil
	})
	newSink(t, sys, "after", []*cell.Cell{failing}, func(args []any) error {
		after = append(after, args[0].(int))
		return nil
	})

	require.NoError(t, sys.Put(source, 1))
	assert.Equal(t, []int{1}, after)
	assert.Equal(t, 1, other.Value())

	err := sys.Put(source, -1)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1}, after, "downstream of a failing calc must not run")
	assert.Equal(t, 1, other.Value(), "queued write was discarded")
	assert.Equal(t, 1, failing.Value())
	requireSettled(t, sys)
}

func TestCalcPanicResetsState(t *testing.T) {
	sys := cell.NewSystem()

	source := sys.Source("source")
	other := sys.Source("other")
	newCell(t, sys, "panics", []*cell.Cell{source}, func(_ *cell.Cell, args []any) (any, error) {
		require.NoError(t, sys.Put(other, 1))
		panic("calc exploded")
	})

	assert.PanicsWithValue(t, "calc exploded", func() {
		_ = sys.Put(source, 1)
	})
	requireSettled(t, sys)
	assert.True(t, cell.IsInvalid(other.Value()))
}

func TestInvalidSuppressesFanOut(t *testing.T) {
	sys := cell.NewSystem()

	source := sys.Source("source")
	evens := newCell(t, sys, "evens", []*cell.Cell{source}, func(_ *cell.Cell, args []any) (any, error) {
		if args[0].(int)%2 != 0 {
			return cell.Invalid, nil
		}
		return args[0], nil
	})
	var seen []int
	newSink(t, sys, "sink", []*cell.Cell{evens}, func(args []any) error {
		seen = append(seen, args[0].(int))
		return nil
	})

	for _, v := range []int{1, 2, 3, 4} {
		require.NoError(t, sys.Put(source, v))
	}
	assert.Equal(t, []int{2, 4}, seen)
	assert.Equal(t, 4, evens.Value())
	requireSettled(t, sys)
}

func TestStatsCountsConstruction(t *testing.T) {
	sys := cell.NewSystem()
	before := sys.Stats().TotalConstructed

	a := sys.Source("a")
	newCell(t, sys, "b", []*cell.Cell{a}, nil)
	assert.Equal(t, before+2, sys.Stats().TotalConstructed)
}

func TestUnique(t *testing.T) {
	sys := cell.NewSystem()
	assert.Equal(t, "x", sys.Unique("x"))
	assert.Equal(t, "x 2", sys.Unique("x"))
	assert.Equal(t, "y", sys.Unique("y"))
	assert.Equal(t, "x 3", sys.Unique("x"))
}

func TestDefaultCalcPassesThrough(t *testing.T) {
	sys := cell.NewSystem()
	a := sys.Source("a")
	b := newCell(t, sys, "b", []*cell.Cell{a}, nil)

	require.NoError(t, sys.Put(a, "hello"))
	assert.Equal(t, "hello", b.Value())
	assert.Equal(t, []any{"hello"}, a.InputValues())
}
