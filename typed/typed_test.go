package typed_test

import (
	"testing"

	"github.com/delaneyj/crosslink/cell"
	"github.com/delaneyj/crosslink/typed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadmeExample(t *testing.T) {
	sys := cell.NewSystem()

	root := sys.Source("root")
	b, err := typed.Computed1(sys, "B", root, func(r float64) (float64, error) { return r + 1, nil })
	require.NoError(t, err)
	c, err := typed.Computed1(sys, "C", root, func(r float64) (float64, error) { return r * 2, nil })
	require.NoError(t, err)
	d, err := typed.Computed2(sys, "D", b, c, func(b, c float64) (float64, error) { return b / c, nil })
	require.NoError(t, err)
	e, err := typed.Computed3(sys, "E", d, root, c, func(d, r, c float64) (float64, error) {
		return 3*d + 2*r + c, nil
	})
	require.NoError(t, err)

	var observed []float64
	_, err = typed.Effect1(sys, "observe", e, func(e float64) error {
		observed = append(observed, e)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, sys.Put(root, 3.0))
	require.NoError(t, sys.Put(root, 5.0))
	require.Len(t, observed, 2)
	assert.InDelta(t, 14.0, observed[0], 1e-9)
	assert.InDelta(t, 21.8, observed[1], 1e-9)

	v, ok := typed.Value[float64](e)
	assert.True(t, ok)
	assert.InDelta(t, 21.8, v, 1e-9)
}

func TestTypeMismatchAbortsWrite(t *testing.T) {
	sys := cell.NewSystem()

	src := sys.Source("src")
	n, err := typed.Computed1(sys, "len", src, func(s string) (int, error) { return len(s), nil })
	require.NoError(t, err)

	require.NoError(t, sys.Put(src, "four"))
	v, ok := typed.Value[int](n)
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	err = sys.Put(src, 42)
	require.ErrorIs(t, err, typed.ErrType)
	assert.Contains(t, err.Error(), `"len" input 0 is int, want string`)
	assert.Equal(t, 4, n.Value())
}

func TestEffectsAndSources(t *testing.T) {
	sys := cell.NewSystem()

	a, err := typed.Source(sys, "a", 2)
	require.NoError(t, err)
	b, err := typed.Source(sys, "b", "x")
	require.NoError(t, err)
	c, err := typed.Source(sys, "c", true)
	require.NoError(t, err)
	d, err := typed.Source(sys, "d", 1.5)
	require.NoError(t, err)

	var got []string
	_, err = typed.Effect4(sys, "all", a, b, c, d, func(a int, b string, c bool, d float64) error {
		got = append(got, b)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got, "effects run immediately when inputs are ready")

	require.NoError(t, sys.Put(b, "y"))
	assert.Equal(t, []string{"x", "y"}, got)

	_, ok := typed.Value[string](a)
	assert.False(t, ok)

	empty := sys.Source("empty")
	_, ok = typed.Value[int](empty)
	assert.False(t, ok)
}
