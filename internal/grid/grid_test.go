package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("grid size must match axes", func(t *testing.T) {
		_, err := New([][]float64{{0, 1, 2}}, []float64{1, 2}, Linear)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "axes imply")
	})

	t.Run("axes must ascend", func(t *testing.T) {
		_, err := New([][]float64{{2, 1, 0}}, []float64{1, 2, 3}, Linear)
		require.Error(t, err)
	})

	t.Run("repeated axis knots are rejected", func(t *testing.T) {
		// A duplicate knot would divide by zero during cell lookup.
		_, err := New([][]float64{{0, 0, 1}}, []float64{1, 2, 3}, Linear)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "strictly ascending")
	})

	t.Run("unknown method is rejected", func(t *testing.T) {
		_, err := New([][]float64{{0, 1}}, []float64{0, 1}, "quintic")
		require.Error(t, err)
	})

	t.Run("splines require a single axis", func(t *testing.T) {
		_, err := New([][]float64{{0, 1}, {0, 1}}, []float64{0, 1, 2, 3}, Cubic)
		require.Error(t, err)
	})
}

func TestLinear1D(t *testing.T) {
	ip, err := New([][]float64{{300, 400, 500}}, []float64{10, 12, 14}, Linear)
	require.NoError(t, err)

	t.Run("exact at grid nodes", func(t *testing.T) {
		assert.Equal(t, 10.0, ip.At([]float64{300}))
		assert.Equal(t, 12.0, ip.At([]float64{400}))
		assert.Equal(t, 14.0, ip.At([]float64{500}))
	})

	t.Run("linear between nodes", func(t *testing.T) {
		assert.InDelta(t, 11.0, ip.At([]float64{350}), 1e-12)
		assert.InDelta(t, 13.5, ip.At([]float64{475}), 1e-12)
	})

	t.Run("clamps outside the axis", func(t *testing.T) {
		assert.Equal(t, 10.0, ip.At([]float64{250}))
		assert.Equal(t, 14.0, ip.At([]float64{600}))
	})
}

func TestLinear2D(t *testing.T) {
	// f(x, y) = x + 10y over a 2x3 grid; multilinear reproduces any
	// bilinear function exactly.
	axes := [][]float64{{0, 1}, {0, 1, 2}}
	values := []float64{
		0, 10, 20, // x = 0
		1, 11, 21, // x = 1
	}
	ip, err := New(axes, values, Linear)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, ip.At([]float64{0, 0}), 1e-12)
	assert.InDelta(t, 21.0, ip.At([]float64{1, 2}), 1e-12)
	assert.InDelta(t, 5.5, ip.At([]float64{0.5, 0.5}), 1e-12)
	assert.InDelta(t, 15.25, ip.At([]float64{0.25, 1.5}), 1e-12)
}

func TestNearest(t *testing.T) {
	ip, err := New([][]float64{{0, 1, 2}}, []float64{5, 6, 7}, Nearest)
	require.NoError(t, err)

	assert.Equal(t, 5.0, ip.At([]float64{0.4}))
	assert.Equal(t, 6.0, ip.At([]float64{0.6}))
	assert.Equal(t, 7.0, ip.At([]float64{1.9}))
}

func TestSplines(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 4, 9, 16}

	for _, method := range []string{Cubic, Akima} {
		t.Run(method, func(t *testing.T) {
			ip, err := New([][]float64{xs}, ys, method)
			require.NoError(t, err)

			// Splines interpolate the nodes exactly.
			for i, x := range xs {
				assert.InDelta(t, ys[i], ip.At([]float64{x}), 1e-9)
			}
		})
	}
}

func TestEvalBatch(t *testing.T) {
	ip, err := New([][]float64{{0, 1}}, []float64{0, 10}, Linear)
	require.NoError(t, err)

	out := ip.Eval([][]float64{{0}, {0.25}, {1}})
	require.Len(t, out, 3)
	assert.InDelta(t, 2.5, out[1], 1e-12)
}
