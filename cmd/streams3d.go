package cmd

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/math/coords"
	"github.com/myoung-space-science/emmrem-analysis/parse"
	"github.com/myoung-space-science/emmrem-analysis/render"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

// Colors of the fixed scene elements.
const (
	backgroundHex = "#000000"
	highlightHex  = "#0000ff"
	sunHex        = "#ffcc00"
)

// colorBuckets is the number of steps the color scale is quantized
// into. A scene series carries a single color, so the continuous scale
// becomes a ladder of buckets whose legend doubles as a colorbar.
const colorBuckets = 12

// Streams3DConfig contains the configuration fields for the 'streams3d'
// mode of the epan tool.
type Streams3DConfig struct {
	streams      []string
	highlight    []string
	observers    []string
	mode         string
	time         []string
	energy       []string
	species      string
	clim         []float64
	sun          bool
	axes         bool
	camera       []float64
	cameraRTP    bool
	markerSize   float64
	resizePower  float64
	resizeEvery  int64
	resizeScale  float64
	startDate    string
	distanceUnit string
	title        bool
	output       string
}

var _ Mode = &Streams3DConfig{}

// ExampleConfig creates an example streams3d.config file.
func (config *Streams3DConfig) ExampleConfig() string {
	return `[streams3d.config]
# All variables are optional.

# Stream observers drawn as translucent black position markers.
# Accepts numbers, the word 'all', and slice syntax over the streams
# the run wrote: 'start:stop', 'start:stop:step', '::step'. Defaults
# to every stream.
# Streams = all
# Streams = ::4

# Streams drawn opaque and blue so they stand out of the background.
# Highlight = 0, 36

# Streams colored by the value of the Mode quantity at each node. The
# two variables go together. Mode accepts the MHD quantities (rho, br,
# bt, bp, ur, ut, up, bmag) and flux.
# Observers = 12:24
# Mode = flux

# Time step of the snapshot. A bare integer is a step index. A value
# followed by a unit is a time, matched to the nearest step. Defaults
# to the last step of the run.
# Time = 10
# Time = 12, hour

# Energy and species of the flux when Mode = flux. Bare energies are
# in the display unit; a trailing unit token overrides it.
# Energy = 10, MeV
# Species = 0

# Color limits as log10 of the data, so -1, 4 spans 1e-1 through 1e4.
# Defaults to the range of the data.
# CLim = -1, 4

# Sun = false drops the solar surface from the scene.
# Sun = true

# Axes = false hides the axis planes, labels, and ticks.
# Axes = true

# Position of the camera, either cartesian x, y, z in view units,
# where the default position is 1.25, 1.25, 1.25, or, with
# CameraRTP = true, r, theta, phi with the angles in degrees.
# Camera = 1.25, 1.25, 1.25
# Camera = 2, 60, 45
# CameraRTP = false

# Size of the node markers in pixels, plus optional growth rules. A
# positive ResizePower grows markers as (r/r0)^p with distance from
# the first node of each stream. ResizeEvery = n scales every nth
# marker by ResizeScale.
# MarkerSize = 2
# ResizePower = 0.5
# ResizeEvery = 10
# ResizeScale = 2

# Start date of the run, 'YYYY-MM-DD' or 'YYYY-MM-DD HH:MM:SS' in UTC.
# When set, the title shows the absolute date of the time step instead
# of an elapsed clock.
# StartDate = 2021-01-01

# Unit of the scene axes: Rs, au, km, m, or cm.
# DistanceUnit = Rs

# Title = false suppresses the line above the scene.
# Title = true

# Name of the output file. Defaults to streams3D_<date>.html in the
# output directory.
# Output = scene.html`
}

// ReadConfig reads in a streams3d.config file into config.
func (config *Streams3DConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("streams3d.config")
	vars.Strings(&config.streams, "Streams", []string{})
	vars.Strings(&config.highlight, "Highlight", []string{})
	vars.Strings(&config.observers, "Observers", []string{})
	vars.String(&config.mode, "Mode", "")
	vars.Strings(&config.time, "Time", []string{})
	vars.Strings(&config.energy, "Energy", []string{})
	vars.String(&config.species, "Species", "0")
	vars.Floats(&config.clim, "CLim", []float64{})
	vars.Bool(&config.sun, "Sun", true)
	vars.Bool(&config.axes, "Axes", true)
	vars.Floats(&config.camera, "Camera", []float64{})
	vars.Bool(&config.cameraRTP, "CameraRTP", false)
	vars.Float(&config.markerSize, "MarkerSize", 2)
	vars.Float(&config.resizePower, "ResizePower", 0)
	vars.Int(&config.resizeEvery, "ResizeEvery", 0)
	vars.Float(&config.resizeScale, "ResizeScale", 2)
	vars.String(&config.startDate, "StartDate", "")
	vars.String(&config.distanceUnit, "DistanceUnit", "Rs")
	vars.Bool(&config.title, "Title", true)
	vars.String(&config.output, "Output", "")

	if fname == "" {
		if len(flags) == 0 { return nil }
		if err := parse.ReadFlags(flags, vars); err != nil { return err }
		return config.validate()
	}
	if err := parse.ReadConfig(fname, vars); err != nil { return err }
	if err := parse.ReadFlags(flags, vars); err != nil { return err }

	return config.validate()
}

// validate checks whether all the fields of config are valid.
func (config *Streams3DConfig) validate() error {
	if err := checkLim("CLim", config.clim); err != nil { return err }
	if len(config.clim) == 2 && config.clim[0] >= config.clim[1] {
		return fmt.Errorf("The 'CLim' variable needs its minimum " +
			"before its maximum.")
	}
	if len(config.camera) != 0 && len(config.camera) != 3 {
		return fmt.Errorf("The 'Camera' variable needs exactly three "+
			"values, but you gave me %d.", len(config.camera))
	}
	if config.markerSize <= 0 {
		return fmt.Errorf("The 'MarkerSize' variable has to be positive.")
	}
	if config.resizeEvery < 0 {
		return fmt.Errorf("The 'ResizeEvery' variable can't be negative.")
	}
	if config.resizeScale <= 0 {
		return fmt.Errorf("The 'ResizeScale' variable has to be positive.")
	}

	if config.mode != "" && len(config.observers) == 0 {
		return fmt.Errorf("The 'Mode' variable is set, but the " +
			"'Observers' variable doesn't select any streams.")
	}
	if len(config.observers) > 0 && config.mode == "" {
		return fmt.Errorf("The 'Observers' variable is set, but the " +
			"'Mode' variable isn't.")
	}

	if _, err := units.RadiusScale(config.distanceUnit); err != nil {
		return fmt.Errorf("The 'DistanceUnit' variable is invalid: %s",
			err.Error())
	}

	if len(config.startDate) == len("2006-01-02") {
		config.startDate += " 00:00:00"
	}
	if config.startDate != "" {
		if _, err := time.Parse(render.DateLayout, config.startDate); err != nil {
			return fmt.Errorf("The 'StartDate' variable is set to '%s', "+
				"but I expect something like '2021-01-01' or "+
				"'2021-01-01 00:00:00'.", config.startDate)
		}
	}
	return nil
}

// Run executes the streams3d mode of the epan tool.
func (config *Streams3DConfig) Run(gConfig *GlobalConfig) error {
	logBanner("streams3d")
	defer logPerformance(time.Now())

	ds, err := eprem.OpenDataset(gConfig.Source)
	if err != nil { return err }
	if len(ds.Streams) == 0 {
		return fmt.Errorf("The dataset in %s has no stream observers.",
			ds.Dir)
	}

	background := ds.Streams
	if len(config.streams) > 0 {
		background, err = parseStreamIDs(config.streams, ds.Streams)
		if err != nil { return err }
	}
	highlight, err := parseStreamIDs(config.highlight, ds.Streams)
	if err != nil { return err }
	observers, err := parseStreamIDs(config.observers, ds.Streams)
	if err != nil { return err }

	scale, err := units.RadiusScale(config.distanceUnit)
	if err != nil { return err }
	cat := gConfig.Catalog()
	eMeV, err := parseEnergy(config.energy, 0, cat)
	if err != nil { return err }

	ref := background
	if len(ref) == 0 { ref = ds.Streams }
	step, stamp, elabel, err := config.resolveView(ds, ref[0], eMeV, cat)
	if err != nil { return err }

	obsNodes := make([]*streamNodes, len(observers))
	for i, id := range observers {
		nodes, err := config.loadObserverNodes(ds, id, step, scale, eMeV)
		if err != nil { return err }
		obsNodes[i] = nodes
	}
	lo, hi := colorRange(obsNodes, config.clim)

	title := ""
	if config.title {
		title = "t = " + stamp
		if config.mode != "" {
			if elabel != "" { title += "    " + elabel }
			title += fmt.Sprintf("    %s [%s] (log-scaled)",
				config.mode, config.modeUnit(cat))
		}
	}

	cam := render.DefaultSceneCamera()
	if len(config.camera) == 3 {
		x, y, z := config.camera[0], config.camera[1], config.camera[2]
		if config.cameraRTP {
			x, y, z = coords.SphericalToCartesian(config.camera[0],
				config.camera[1]*math.Pi/180, config.camera[2]*math.Pi/180)
		}
		cam = cameraFromEye(x, y, z)
	}

	scene := render.NewScene(render.SceneConfig{
		Title:     title,
		PageTitle: "epan streams3d",
		AxisUnit:  config.distanceUnit,
		HideAxes:  !config.axes,
		Camera:    cam,
	})

	if config.sun {
		scene.Add("solar surface", sunShell(scale), nil, sunHex, 0.5, 6)
	}

	for _, id := range background {
		nodes, err := loadStreamNodes(ds, id, step, scale)
		if err != nil { return err }
		nodes.sizes = config.markerSizes(nodes.r)
		addNodes(scene, "streams", backgroundHex, 0.2, nodes, nil,
			config.distanceUnit)
	}
	for _, id := range highlight {
		nodes, err := loadStreamNodes(ds, id, step, scale)
		if err != nil { return err }
		nodes.sizes = config.markerSizes(nodes.r)
		addNodes(scene, "highlighted", highlightHex, 1, nodes, nil,
			config.distanceUnit)
	}

	// Buckets go in ascending order so the legend reads like a colorbar.
	colors := render.Rainbow(colorBuckets)
	for k := 0; k < colorBuckets; k++ {
		hex := render.HexColor(colors[k])
		label := bucketLabel(k, lo, hi)
		for _, nodes := range obsNodes {
			idx := []int{}
			for i, v := range nodes.logv {
				if bucketIndex(v, lo, hi) == k { idx = append(idx, i) }
			}
			if len(idx) == 0 { continue }
			addNodes(scene, label, hex, 1, nodes, idx, config.distanceUnit)
		}
	}

	out := config.output
	if out == "" {
		out = fmt.Sprintf("streams3D_%s.html", render.FileStamp(time.Now()))
	}
	path := out
	if !filepath.IsAbs(out) { path = filepath.Join(gConfig.Output, out) }
	if err := scene.WriteHTML(path); err != nil { return err }
	fmt.Println(path)
	return nil
}

// resolveView resolves the pieces of the scene shared by every stream
// against one reference stream: the time step and its stamp, plus the
// energy label when the color quantity has an energy axis.
func (config *Streams3DConfig) resolveView(
	ds *eprem.Dataset, id int, eMeV float64, cat units.Catalog,
) (int, string, string, error) {
	obs, err := ds.Stream(id)
	if err != nil { return 0, "", "", err }
	defer obs.Close()

	times := obs.Times()
	step := len(times) - 1
	if len(config.time) > 0 {
		picks, err := resolveTimePicks(obs, config.time)
		if err != nil { return 0, "", "", err }
		if len(picks) != 1 {
			return 0, "", "", fmt.Errorf("This mode takes a single time, "+
				"but the 'Time' variable resolved to %d steps.", len(picks))
		}
		step = picks[0].idx
	}
	stamp, err := render.Stamp(times[step], config.startDate, 0)
	if err != nil { return 0, "", "", err }

	elabel := ""
	if isFluxQuantity(config.mode) && len(obs.Energies()) > 0 {
		escale, err := units.EnergyScale(cat.Energy)
		if err != nil { return 0, "", "", err }
		e := obs.Energies()[obs.EnergyIndex(eMeV)] * escale
		elabel = fmt.Sprintf("E = %.2f %s", e, cat.Energy)
	}
	return step, stamp, elabel, nil
}

// modeUnit labels the color quantity. Fluxes display in the catalog
// unit; the MHD quantities keep the file's own units, which is what
// their values are in.
func (config *Streams3DConfig) modeUnit(cat units.Catalog) string {
	if isFluxQuantity(config.mode) { return cat.Flux }
	return eprem.QuantityUnit(config.mode)
}

// isFluxQuantity reports whether a color quantity reads the 4-D flux
// rather than a 2-D MHD grid.
func isFluxQuantity(name string) bool {
	n := strings.ToLower(name)
	return n == "flux" || n == "j"
}

// streamNodes holds one stream's nodes at the scene's time step:
// positions for every stream, values and their logs for streams colored
// by a quantity.
type streamNodes struct {
	id        int
	x, y, z   []float64
	r, th, ph []float64
	sizes     []float64
	raw       []float64
	logv      []float64
}

func loadStreamNodes(
	ds *eprem.Dataset, id, step int, scale float64,
) (*streamNodes, error) {
	obs, err := ds.Stream(id)
	if err != nil { return nil, err }
	defer obs.Close()
	return readNodes(obs, id, step, scale)
}

func (config *Streams3DConfig) loadObserverNodes(
	ds *eprem.Dataset, id, step int, scale, eMeV float64,
) (*streamNodes, error) {
	obs, err := ds.Stream(id)
	if err != nil { return nil, err }
	defer obs.Close()

	nodes, err := readNodes(obs, id, step, scale)
	if err != nil { return nil, err }
	vals, err := observerValues(obs, config.mode, step, config.species, eMeV)
	if err != nil { return nil, err }
	nodes.raw = vals
	nodes.logv = logValues(vals)
	nodes.sizes = config.markerSizes(nodes.r)
	return nodes, nil
}

func readNodes(
	obs *eprem.Observer, id, step int, scale float64,
) (*streamNodes, error) {
	rg, err := obs.Grid("r")
	if err != nil { return nil, err }
	tg, err := obs.Grid("theta")
	if err != nil { return nil, err }
	pg, err := obs.Grid("phi")
	if err != nil { return nil, err }
	if step >= rg.N0 {
		return nil, fmt.Errorf("The file %s has %d time steps, which "+
			"doesn't include step %d.", obs.Path(), rg.N0, step)
	}

	n := rg.N1
	nodes := &streamNodes{
		id: id,
		x:  make([]float64, n), y: make([]float64, n), z: make([]float64, n),
		r:  make([]float64, n), th: make([]float64, n), ph: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		r := rg.At(step, i) * scale
		th, ph := tg.At(step, i), pg.At(step, i)
		nodes.r[i], nodes.th[i], nodes.ph[i] = r, th, ph
		nodes.x[i], nodes.y[i], nodes.z[i] =
			coords.SphericalToCartesian(r, th, ph)
	}
	return nodes, nil
}

// observerValues reads the color quantity at every node of one stream.
func observerValues(
	obs *eprem.Observer, mode string, step int, species string, eMeV float64,
) ([]float64, error) {
	if isFluxQuantity(mode) {
		sIdx, _, err := obs.SpeciesIndex(species)
		if err != nil { return nil, err }
		flux, err := obs.Flux()
		if err != nil { return nil, err }
		eIdx := obs.EnergyIndex(eMeV)
		vals := make([]float64, flux.N1)
		for i := range vals { vals[i] = flux.At(step, i, sIdx, eIdx) }
		return vals, nil
	}

	g, err := obs.Grid(mode)
	if err != nil { return nil, err }
	return append([]float64{}, g.Row(step)...), nil
}

// logValues maps values to log10, flooring nonpositive entries first so
// empty nodes land in the bottom color bucket.
func logValues(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		if v <= 0 { v = math.SmallestNonzeroFloat64 }
		out[i] = math.Log10(v)
	}
	return out
}

// colorRange returns the log10 color limits, from the user when given
// and from the data otherwise.
func colorRange(obsNodes []*streamNodes, clim []float64) (lo, hi float64) {
	if len(clim) == 2 { return clim[0], clim[1] }
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, nodes := range obsNodes {
		for _, v := range nodes.logv {
			if v < lo { lo = v }
			if v > hi { hi = v }
		}
	}
	if !(hi > lo) { hi = lo + 1 }
	return lo, hi
}

func bucketIndex(v, lo, hi float64) int {
	k := int(float64(colorBuckets) * (v - lo) / (hi - lo))
	if k < 0 { return 0 }
	if k >= colorBuckets { return colorBuckets - 1 }
	return k
}

// bucketLabel names a bucket by its lower edge in the data's own units.
func bucketLabel(k int, lo, hi float64) string {
	edge := lo + float64(k)*(hi-lo)/colorBuckets
	return fmt.Sprintf("≥ %.2g", math.Pow(10, edge))
}

// markerSizes sizes each marker of one stream. A scene series carries a
// single size, so sizes land on half pixel steps and nearby nodes share
// a series.
func (config *Streams3DConfig) markerSizes(r []float64) []float64 {
	sizes := make([]float64, len(r))
	for i := range sizes { sizes[i] = config.markerSize }
	if config.resizePower > 0 && len(r) > 0 && r[0] > 0 {
		for i := range sizes {
			sizes[i] *= math.Pow(r[i]/r[0], config.resizePower)
		}
	}
	if config.resizeEvery > 0 {
		for i := 0; i < len(sizes); i += int(config.resizeEvery) {
			sizes[i] *= config.resizeScale
		}
	}
	for i := range sizes {
		sizes[i] = math.Round(2*sizes[i]) / 2
		if sizes[i] < 0.5 { sizes[i] = 0.5 }
	}
	return sizes
}

type sizeGroup struct {
	size float64
	idx  []int
}

// sizeGroups partitions the selected nodes by marker size.
func sizeGroups(sizes []float64, idx []int) []sizeGroup {
	bySize := make(map[float64][]int)
	for _, i := range idx {
		bySize[sizes[i]] = append(bySize[sizes[i]], i)
	}
	keys := make([]float64, 0, len(bySize))
	for s := range bySize { keys = append(keys, s) }
	sort.Float64s(keys)

	out := make([]sizeGroup, len(keys))
	for i, s := range keys { out[i] = sizeGroup{s, bySize[s]} }
	return out
}

// addNodes draws the selected nodes of one stream, one series per
// marker size. Series sharing a name share a legend entry, so every
// stream's background series collapses into one toggle, as do the
// color buckets. A nil idx selects every node.
func addNodes(
	scene *render.Scene, name, hex string, opacity float32,
	nodes *streamNodes, idx []int, unit string,
) {
	if idx == nil {
		idx = make([]int, len(nodes.r))
		for i := range idx { idx[i] = i }
	}
	for _, g := range sizeGroups(nodes.sizes, idx) {
		pts := make([][3]float64, len(g.idx))
		hover := make([]string, len(g.idx))
		for j, i := range g.idx {
			pts[j] = [3]float64{nodes.x[i], nodes.y[i], nodes.z[i]}
			hover[j] = nodes.hover(i, unit)
		}
		scene.Add(name, pts, hover, hex, opacity, g.size)
	}
}

// hover describes one node for the tooltip.
func (nodes *streamNodes) hover(i int, unit string) string {
	s := fmt.Sprintf("stream %d<br>r: %.6g %s<br>θ: %.6g<br>φ: %.6g",
		nodes.id, nodes.r[i], unit, nodes.th[i], nodes.ph[i])
	if nodes.raw != nil {
		s += fmt.Sprintf("<br>value: %.4E", nodes.raw[i])
	}
	return s
}

// sunShell samples a sphere of one solar radius as scatter points.
func sunShell(scale float64) [][3]float64 {
	radius := units.RSun * scale
	pts := make([][3]float64, 0, 13*24)
	for i := 0; i <= 12; i++ {
		th := math.Pi * float64(i) / 12
		for j := 0; j < 24; j++ {
			ph := 2 * math.Pi * float64(j) / 24
			x, y, z := coords.SphericalToCartesian(radius, th, ph)
			pts = append(pts, [3]float64{x, y, z})
		}
	}
	return pts
}
