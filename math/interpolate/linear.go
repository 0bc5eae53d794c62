// Package interpolate provides the 1D interpolation and smoothing the
// analysis modes lean on.
package interpolate

import (
	"fmt"
	"sort"
)

// Linear interpolates linearly between a sequence of (x, value) points.
type Linear struct {
	xs   []float64
	vals []float64
}

// NewLinear creates a linear interpolator over strictly increasing or
// strictly decreasing xs. Decreasing points are stored reversed, so the
// caller's slices are never modified.
func NewLinear(xs, vals []float64) *Linear {
	if len(xs) != len(vals) {
		panic("Length of input slices are not equal.")
	}
	if len(xs) < 2 {
		panic("A linear interpolator needs at least two points.")
	}

	if xs[0] > xs[len(xs)-1] {
		rx := make([]float64, len(xs))
		rv := make([]float64, len(vals))
		for i := range xs {
			rx[len(xs)-1-i] = xs[i]
			rv[len(xs)-1-i] = vals[i]
		}
		xs, vals = rx, rv
	}

	return &Linear{xs, vals}
}

// Eval returns the interpolated value at x. Eval panics if x falls
// outside the range of the points.
func (lin *Linear) Eval(x float64) float64 {
	i := lin.cell(x)
	x1, x2 := lin.xs[i], lin.xs[i+1]
	v1, v2 := lin.vals[i], lin.vals[i+1]
	return v1 + (v2-v1)*(x-x1)/(x2-x1)
}

// cell returns the index i of the interval [xs[i], xs[i+1]] holding x.
func (lin *Linear) cell(x float64) int {
	n := len(lin.xs)
	if x < lin.xs[0] || x > lin.xs[n-1] {
		panic(fmt.Sprintf(
			"Value %g is outside the interpolation range [%g, %g].",
			x, lin.xs[0], lin.xs[n-1],
		))
	}

	i := sort.SearchFloat64s(lin.xs, x)
	if i > 0 { i-- }
	return i
}
