// Package grid implements interpolation over rectilinear N-dimensional
// grids. An Interpolator is built once per table and is immutable, so
// concurrent evaluation needs no synchronization.
//
// Bounds checking is intentionally absent: callers clamp query points to
// the grid extrema before evaluating, which makes true out-of-range
// interpolation unreachable.
package grid

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Supported interpolation methods. Linear and nearest work in any
// dimension; the spline methods require a single axis.
const (
	Linear  = "linear"
	Nearest = "nearest"
	Cubic   = "cubic"
	Akima   = "akima"
)

// Interpolator evaluates a dependent grid over rectilinear axes.
type Interpolator struct {
	axes   [][]float64
	values []float64 // row-major, outer axis first
	stride []int
	method string

	// spline is set for the 1-D cubic/akima methods only.
	spline interp.FittablePredictor
}

// New builds an interpolator from strictly ascending axes and a row-major
// dependent grid whose length is the product of the axis lengths.
func New(axes [][]float64, values []float64, method string) (*Interpolator, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("interpolator needs at least one axis")
	}

	size := 1
	for i, axis := range axes {
		if len(axis) < 2 {
			return nil, fmt.Errorf("axis %d has %d points, need at least 2", i, len(axis))
		}
		for j := 1; j < len(axis); j++ {
			if axis[j] <= axis[j-1] {
				return nil, fmt.Errorf("axis %d is not strictly ascending at index %d", i, j)
			}
		}
		size *= len(axis)
	}
	if len(values) != size {
		return nil, fmt.Errorf("grid has %d values, axes imply %d", len(values), size)
	}

	ip := &Interpolator{
		axes:   axes,
		values: values,
		stride: strides(axes),
		method: method,
	}

	switch method {
	case Linear, Nearest:
	case Cubic, Akima:
		if len(axes) != 1 {
			return nil, fmt.Errorf("method %q requires a single axis, got %d", method, len(axes))
		}
		var sp interp.FittablePredictor
		if method == Cubic {
			sp = &interp.NaturalCubic{}
		} else {
			sp = &interp.AkimaSpline{}
		}
		if err := sp.Fit(axes[0], values); err != nil {
			return nil, fmt.Errorf("fitting %s spline: %w", method, err)
		}
		ip.spline = sp
	default:
		return nil, fmt.Errorf("unsupported interpolation method %q", method)
	}

	return ip, nil
}

// Dims returns the number of grid axes.
func (ip *Interpolator) Dims() int { return len(ip.axes) }

// At evaluates the grid at a single point with one coordinate per axis.
func (ip *Interpolator) At(pt []float64) float64 {
	if ip.spline != nil {
		return ip.spline.Predict(pt[0])
	}
	if ip.method == Nearest {
		return ip.nearest(pt)
	}
	return ip.multilinear(pt)
}

// Eval evaluates the grid at a batch of points.
func (ip *Interpolator) Eval(pts [][]float64) []float64 {
	out := make([]float64, len(pts))
	for i, pt := range pts {
		out[i] = ip.At(pt)
	}
	return out
}

// cell locates the interval index and normalized position of x on an
// axis, clamping outside the extrema.
func cell(axis []float64, x float64) (int, float64) {
	n := len(axis)
	i := sort.SearchFloat64s(axis, x)
	switch {
	case i <= 0:
		i = 1
	case i >= n:
		i = n - 1
	}
	t := (x - axis[i-1]) / (axis[i] - axis[i-1])
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return i - 1, t
}

// multilinear blends the 2^N cell corners surrounding the point.
func (ip *Interpolator) multilinear(pt []float64) float64 {
	n := len(ip.axes)
	lo := make([]int, n)
	frac := make([]float64, n)
	for d, axis := range ip.axes {
		lo[d], frac[d] = cell(axis, pt[d])
	}

	var acc float64
	for corner := 0; corner < 1<<n; corner++ {
		weight := 1.0
		offset := 0
		for d := 0; d < n; d++ {
			idx := lo[d]
			if corner&(1<<d) != 0 {
				idx++
				weight *= frac[d]
			} else {
				weight *= 1 - frac[d]
			}
			offset += idx * ip.stride[d]
		}
		acc += weight * ip.values[offset]
	}
	return acc
}

func (ip *Interpolator) nearest(pt []float64) float64 {
	offset := 0
	for d, axis := range ip.axes {
		lo, t := cell(axis, pt[d])
		if t > 0.5 {
			lo++
		}
		offset += lo * ip.stride[d]
	}
	return ip.values[offset]
}

func strides(axes [][]float64) []int {
	out := make([]int, len(axes))
	acc := 1
	for d := len(axes) - 1; d >= 0; d-- {
		out[d] = acc
		acc *= len(axes[d])
	}
	return out
}
