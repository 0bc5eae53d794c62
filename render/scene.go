package render

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// sceneChartID names the echarts instance on the generated page so
// that the view script emitted by sceneScript can find it.
const sceneChartID = "epanscene"

// A SceneCamera positions the viewpoint of a 3-D scene. Alpha and Beta
// are rotation angles in degrees and Distance is in echarts view
// units, where 200 is the default. A NaN field keeps the echarts
// default, so an explicit 0 is honored.
type SceneCamera struct {
	Alpha, Beta, Distance float64
	AutoRotate            bool
}

// DefaultSceneCamera leaves every angle to echarts.
func DefaultSceneCamera() SceneCamera {
	return SceneCamera{Alpha: math.NaN(), Beta: math.NaN(), Distance: math.NaN()}
}

// A SceneConfig describes the fixed furniture of a 3-D scene.
type SceneConfig struct {
	Title     string
	PageTitle string
	WidthPx   int
	HeightPx  int

	// AxisUnit labels the x, y, and z axes, e.g. "Rs" or "au".
	AxisUnit string

	// Extent is the half width of the displayed cube in axis units. 0
	// sizes the cube to the data.
	Extent float64

	HideAxes bool
	Camera   SceneCamera
}

// A Scene collects 3-D point series and writes them as a standalone
// interactive HTML page.
type Scene struct {
	chart *charts.Scatter3D
}

func NewScene(cfg SceneConfig) *Scene {
	c := charts.NewScatter3D()
	w, h := cfg.WidthPx, cfg.HeightPx
	if w <= 0 {
		w = 1200
	}
	if h <= 0 {
		h = 800
	}
	c.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:   sceneChartID,
			PageTitle: cfg.PageTitle,
			Width:     fmt.Sprintf("%dpx", w),
			Height:    fmt.Sprintf("%dpx", h),
		}),
		charts.WithTitleOpts(opts.Title{Title: cfg.Title, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Formatter: "{b}"}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: axisName("x", cfg.AxisUnit), Type: "value"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: axisName("y", cfg.AxisUnit), Type: "value"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: axisName("z", cfg.AxisUnit), Type: "value"}),
	)
	if js := sceneScript(cfg); js != "" {
		c.AddJSFuncs(js)
	}
	return &Scene{chart: c}
}

// Add appends one named point series. pts are cartesian coordinates,
// hover carries one tooltip string per point and may be nil, color is
// a '#rrggbb' string, and size is the marker size in pixels.
func (s *Scene) Add(name string, pts [][3]float64, hover []string, color string, opacity float32, size float64) {
	data := make([]opts.Chart3DData, len(pts))
	for i, p := range pts {
		d := opts.Chart3DData{Value: []interface{}{p[0], p[1], p[2]}}
		if i < len(hover) {
			d.Name = hover[i]
		}
		data[i] = d
	}
	s.chart.AddSeries(name, data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color, Opacity: opacity}),
		func(sr *charts.SingleSeries) { sr.SymbolSize = size },
	)
}

// WriteHTML renders the scene to a standalone HTML file.
func (s *Scene) WriteHTML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("I couldn't create the scene file '%s'.", path)
	}
	if err := s.chart.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func axisName(axis, unit string) string {
	if unit == "" {
		return axis
	}
	return fmt.Sprintf("%s [%s]", axis, unit)
}

// sceneScript renders the view options that the typed echarts options
// can't carry, i.e. axis extents, axis visibility, and the camera. It
// runs one setOption call against the named chart instance after the
// page builds it.
func sceneScript(cfg SceneConfig) string {
	grid := []string{}
	view := []string{}
	cam := cfg.Camera
	if !math.IsNaN(cam.Alpha) {
		view = append(view, fmt.Sprintf("alpha:%g", cam.Alpha))
	}
	if !math.IsNaN(cam.Beta) {
		view = append(view, fmt.Sprintf("beta:%g", cam.Beta))
	}
	if !math.IsNaN(cam.Distance) {
		view = append(view, fmt.Sprintf("distance:%g", cam.Distance))
	}
	if cam.AutoRotate {
		view = append(view, "autoRotate:true")
	}
	if len(view) > 0 {
		grid = append(grid, "viewControl:{"+strings.Join(view, ",")+"}")
	}
	axes := []string{}
	if cfg.HideAxes {
		grid = append(grid, "show:false")
		axes = append(axes, "show:false")
	}
	if cfg.Extent > 0 {
		axes = append(axes, fmt.Sprintf("min:%g,max:%g", -cfg.Extent, cfg.Extent))
	}
	parts := []string{}
	if len(grid) > 0 {
		parts = append(parts, "grid3D:{"+strings.Join(grid, ",")+"}")
	}
	if len(axes) > 0 {
		a := strings.Join(axes, ",")
		parts = append(parts, fmt.Sprintf("xAxis3D:{%s},yAxis3D:{%s},zAxis3D:{%s}", a, a, a))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("goecharts_%s.setOption({%s});", sceneChartID, strings.Join(parts, ","))
}
