package interpolate

import (
	"math"
	"testing"
)

func TestLinearEval(t *testing.T) {
	xs := []float64{0, 1, 3, 4}
	vals := []float64{0, 2, 6, 8}
	lin := NewLinear(xs, vals)

	table := []struct{ x, v float64 }{
		{0, 0},
		{0.5, 1},
		{1, 2},
		{2, 4},
		{3.5, 7},
		{4, 8},
	}

	for i := range table {
		v := lin.Eval(table[i].x)
		if math.Abs(v-table[i].v) > 1e-10 {
			t.Errorf("%d) Expected Eval(%g) = %g, but got %g",
				i+1, table[i].x, table[i].v, v)
		}
	}
}

func TestLinearDecreasing(t *testing.T) {
	xs := []float64{4, 3, 1, 0}
	vals := []float64{8, 6, 2, 0}
	lin := NewLinear(xs, vals)

	if v := lin.Eval(2); math.Abs(v-4) > 1e-10 {
		t.Errorf("Expected Eval(2) = 4, but got %g", v)
	}
	if xs[0] != 4 || vals[0] != 8 {
		t.Errorf("NewLinear modified the caller's slices: xs = %v, "+
			"vals = %v", xs, vals)
	}
}
