package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Rainbow returns n colors running from blue for the first entry to
// red for the last, matching the order of an ascending energy grid.
func Rainbow(n int) []color.Color {
	if n < 1 {
		n = 1
	}
	return palette.Rainbow(n, palette.Blue, palette.Red, 1, 1, 1).Colors()
}

// HexColor renders a color as a '#rrggbb' string.
func HexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// Solid, Dashed, and Dotted are the line styles the survey figures
// draw with.
func Solid(c color.Color) draw.LineStyle {
	return draw.LineStyle{Color: c, Width: vg.Points(1.5)}
}

func Dashed(c color.Color) draw.LineStyle {
	sty := Solid(c)
	sty.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	return sty
}

func Dotted(c color.Color) draw.LineStyle {
	sty := Solid(c)
	sty.Dashes = []vg.Length{vg.Points(1), vg.Points(3)}
	return sty
}

// Points pairs two equal length sequences into a plottable point set
// and panics if the lengths differ.
func Points(xs, ys []float64) plotter.XYs {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf("Can't pair %d x values with %d y values.",
			len(xs), len(ys)))
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	return pts
}

// Line builds a styled line through the given points.
func Line(xs, ys []float64, sty draw.LineStyle) (*plotter.Line, error) {
	l, err := plotter.NewLine(Points(xs, ys))
	if err != nil {
		return nil, err
	}
	l.LineStyle = sty
	return l, nil
}

// Dots builds a scatter of small filled circles, the marker the flux
// panels use for sampled spectra.
func Dots(xs, ys []float64, c color.Color) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(Points(xs, ys))
	if err != nil {
		return nil, err
	}
	s.GlyphStyle = draw.GlyphStyle{
		Color: c, Radius: vg.Points(1.5), Shape: draw.CircleGlyph{},
	}
	return s, nil
}

// LogY puts the vertical axis of p on a log scale.
func LogY(p *plot.Plot) {
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
}

// LogLog puts both axes of p on log scales.
func LogLog(p *plot.Plot) {
	LogY(p)
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
}

// Positive replaces values that a log scale can't render. Entries that
// are zero or negative become the smallest positive entry, or 1 if
// there is none.
func Positive(ys []float64) []float64 {
	min := math.Inf(+1)
	for _, y := range ys {
		if y > 0 && y < min {
			min = y
		}
	}
	if math.IsInf(min, +1) {
		min = 1
	}
	out := make([]float64, len(ys))
	for i, y := range ys {
		if y > 0 {
			out[i] = y
		} else {
			out[i] = min
		}
	}
	return out
}

// LogLimits picks vertical axis limits for a log scaled flux panel.
// The upper limit is the next power of ten above max and the lower
// limit sits six decades under it.
func LogLimits(max float64) (lo, hi float64) {
	if max <= 0 {
		return 1e-6, 1
	}
	ymax := int(math.Log10(max)) + 1
	return math.Pow(10, float64(ymax-6)), math.Pow(10, float64(ymax))
}
