package calc

import (
	"math"
	"testing"
)

func TestGradientLinear(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5}
	ys := make([]float64, len(xs))
	for i := range xs {
		ys[i] = 3*xs[i] - 2
	}

	dy := Gradient(xs, ys)
	for i := range dy {
		if math.Abs(dy[i]-3) > 1e-10 {
			t.Errorf("Expected dy[%d] = 3, got %g", i, dy[i])
		}
	}
}

func TestGradientQuadratic(t *testing.T) {
	// The stencils are exact for quadratics even when the grid spacing
	// varies, including at both edges.
	xs := []float64{0, 1, 3, 4, 6, 9}
	ys := make([]float64, len(xs))
	exp := make([]float64, len(xs))
	for i := range xs {
		ys[i] = 2*xs[i]*xs[i] - 3*xs[i] + 1
		exp[i] = 4*xs[i] - 3
	}

	dy := Gradient(xs, ys)
	for i := range dy {
		if math.Abs(dy[i]-exp[i]) > 1e-9 {
			t.Errorf("Expected dy[%d] = %g, got %g", i, exp[i], dy[i])
		}
	}
}

func TestGradientUniform(t *testing.T) {
	// On a uniform grid the stencils reduce to the familiar central and
	// one-sided differences.
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{1, 0, 2, 6, 3}
	exp := []float64{-2.5, 0.5, 3, 0.5, -6.5}

	dy := Gradient(xs, ys)
	for i := range dy {
		if math.Abs(dy[i]-exp[i]) > 1e-10 {
			t.Errorf("Expected dy[%d] = %g, got %g", i, exp[i], dy[i])
		}
	}
}

func TestGradientTwoPoints(t *testing.T) {
	dy := Gradient([]float64{1, 3}, []float64{5, 9})
	if len(dy) != 2 || dy[0] != 2 || dy[1] != 2 {
		t.Errorf("Expected dy = [2 2], got %v", dy)
	}
}
