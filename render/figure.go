/*Package render draws the figures, scenes, and workbooks that the
analysis modes produce. Flat figures go through gonum's plot package,
the interactive 3-D scene goes through go-echarts, and spreadsheet
output goes through excelize.*/
package render

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// A Panel is one plot in a multi panel figure along with its share of
// the stacked direction. A panel with twice the weight of another gets
// twice the height in a column and twice the width in a row.
type Panel struct {
	Plot   *plot.Plot
	Weight float64
}

// NewPlot builds an empty plot with the house label sizes and legend
// placement.
func NewPlot(xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Title.TextStyle.Font.Size = vg.Points(13)
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.Legend.TextStyle.Font.Size = vg.Points(9)
	p.Legend.Top = true
	return p
}

// SavePlot writes a single plot to a PNG of the given size.
func SavePlot(path string, width, height vg.Length, p *plot.Plot) error {
	img, content := newFigure(width, height, "")
	p.Draw(content)
	return writePNG(path, img)
}

// SaveColumn writes panels stacked top to bottom into a PNG of the
// given size, with an optional figure title above the top panel.
func SaveColumn(path string, width, height vg.Length, title string, panels []Panel) error {
	img, content := newFigure(width, height, title)
	total, err := totalWeight(panels)
	if err != nil {
		return err
	}
	y := content.Rectangle.Max.Y
	for _, pn := range panels {
		h := content.Rectangle.Size().Y * vg.Length(pn.Weight/total)
		sub := draw.Canvas{Canvas: content.Canvas, Rectangle: vg.Rectangle{
			Min: vg.Point{X: content.Rectangle.Min.X, Y: y - h},
			Max: vg.Point{X: content.Rectangle.Max.X, Y: y},
		}}
		pn.Plot.Draw(sub)
		y -= h
	}
	return writePNG(path, img)
}

// SaveRow writes panels side by side, left to right, into a PNG of the
// given size, with an optional figure title above them.
func SaveRow(path string, width, height vg.Length, title string, panels []Panel) error {
	img, content := newFigure(width, height, title)
	total, err := totalWeight(panels)
	if err != nil {
		return err
	}
	x := content.Rectangle.Min.X
	for _, pn := range panels {
		w := content.Rectangle.Size().X * vg.Length(pn.Weight/total)
		sub := draw.Canvas{Canvas: content.Canvas, Rectangle: vg.Rectangle{
			Min: vg.Point{X: x, Y: content.Rectangle.Min.Y},
			Max: vg.Point{X: x + w, Y: content.Rectangle.Max.Y},
		}}
		pn.Plot.Draw(sub)
		x += w
	}
	return writePNG(path, img)
}

func totalWeight(panels []Panel) (float64, error) {
	total := 0.0
	for _, pn := range panels {
		total += pn.Weight
	}
	if total <= 0 {
		return 0, fmt.Errorf("I can't lay out %d panels whose weights "+
			"sum to %g.", len(panels), total)
	}
	return total, nil
}

// newFigure allocates the canvas and, if title is non-empty, draws it
// across the top and shrinks the content area under it.
func newFigure(width, height vg.Length, title string) (*vgimg.Canvas, draw.Canvas) {
	img := vgimg.New(width, height)
	dc := draw.New(img)
	if title == "" {
		return img, dc
	}
	sty := text.Style{
		Color:   color.Black,
		Font:    font.Font{Typeface: "Liberation", Variant: "Sans", Size: vg.Points(15)},
		Handler: text.Plain{Fonts: font.DefaultCache},
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
	}
	mid := (dc.Rectangle.Min.X + dc.Rectangle.Max.X) / 2
	dc.FillText(sty, vg.Point{X: mid, Y: dc.Rectangle.Max.Y - vg.Points(4)}, title)
	dc.Rectangle.Max.Y -= vg.Points(28)
	return img, dc
}

func writePNG(path string, img *vgimg.Canvas) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("I couldn't create the figure file '%s'.", path)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
