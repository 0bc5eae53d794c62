package render

import (
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/plot"
)

func TestRainbow(t *testing.T) {
	cs := Rainbow(5)
	if len(cs) != 5 {
		t.Fatalf("Expected 5 colors, but got %d.", len(cs))
	}
	if HexColor(cs[0]) == HexColor(cs[4]) {
		t.Errorf("Expected the ends of the palette to differ, but both "+
			"are %s.", HexColor(cs[0]))
	}

	if len(Rainbow(0)) != 1 {
		t.Errorf("Expected at least one color from an empty request.")
	}
}

func TestHexColor(t *testing.T) {
	table := []struct {
		c   color.Color
		out string
	}{
		{color.RGBA{R: 255, A: 255}, "#ff0000"},
		{color.RGBA{G: 128, B: 255, A: 255}, "#0080ff"},
		{color.Black, "#000000"},
		{color.White, "#ffffff"},
	}

	for i, test := range table {
		if out := HexColor(test.c); out != test.out {
			t.Errorf("%d) Expected '%s', but got '%s'.", i+1, test.out, out)
		}
	}
}

func TestLineStyles(t *testing.T) {
	if n := len(Solid(color.Black).Dashes); n != 0 {
		t.Errorf("Expected a solid line, but got %d dash lengths.", n)
	}
	if n := len(Dashed(color.Black).Dashes); n != 2 {
		t.Errorf("Expected a dash pattern of length 2, but got %d.", n)
	}
	if n := len(Dotted(color.Black).Dashes); n != 2 {
		t.Errorf("Expected a dot pattern of length 2, but got %d.", n)
	}
}

func TestPoints(t *testing.T) {
	pts := Points([]float64{1, 2, 3}, []float64{4, 5, 6})
	if len(pts) != 3 {
		t.Fatalf("Expected 3 points, but got %d.", len(pts))
	}
	if pts[1].X != 2 || pts[1].Y != 5 {
		t.Errorf("Expected the point (2, 5), but got (%g, %g).",
			pts[1].X, pts[1].Y)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Expected a panic for mismatched lengths.")
		}
	}()
	Points([]float64{1}, []float64{1, 2})
}

func TestPositive(t *testing.T) {
	table := []struct {
		ys  []float64
		out []float64
	}{
		{[]float64{1, 0, 3, -2}, []float64{1, 1, 3, 1}},
		{[]float64{0.5, 2}, []float64{0.5, 2}},
		{[]float64{0, -1}, []float64{1, 1}},
		{[]float64{}, []float64{}},
	}

	for i, test := range table {
		out := Positive(test.ys)
		if len(out) != len(test.out) {
			t.Errorf("%d) Expected %d values, but got %d.",
				i+1, len(test.out), len(out))
			continue
		}
		for j := range out {
			if out[j] != test.out[j] {
				t.Errorf("%d) Expected %g at %d, but got %g.",
					i+1, test.out[j], j, out[j])
			}
		}
	}
}

func TestLogLimits(t *testing.T) {
	table := []struct {
		max    float64
		lo, hi float64
	}{
		{5e4, 0.1, 1e5},
		{1, 1e-5, 10},
		{0.05, 1e-6, 1},
		{0, 1e-6, 1},
	}

	for i, test := range table {
		lo, hi := LogLimits(test.max)
		if !almostEq(lo, test.lo) || !almostEq(hi, test.hi) {
			t.Errorf("%d) Expected limits (%g, %g), but got (%g, %g).",
				i+1, test.lo, test.hi, lo, hi)
		}
	}
}

func almostEq(x, y float64) bool {
	if x == y {
		return true
	}
	return math.Abs(x-y) < 1e-10*(math.Abs(x)+math.Abs(y))
}

func TestLogAxes(t *testing.T) {
	p := plot.New()
	LogY(p)
	if _, ok := p.Y.Scale.(plot.LogScale); !ok {
		t.Errorf("Expected a log scaled y axis.")
	}
	if _, ok := p.X.Scale.(plot.LogScale); ok {
		t.Errorf("Expected the x axis to stay linear.")
	}

	p = plot.New()
	LogLog(p)
	if _, ok := p.X.Scale.(plot.LogScale); !ok {
		t.Errorf("Expected a log scaled x axis.")
	}
}
