package cmd

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/math/calc"
	"github.com/myoung-space-science/emmrem-analysis/math/interpolate"
	"github.com/myoung-space-science/emmrem-analysis/parse"
	"github.com/myoung-space-science/emmrem-analysis/render"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

// The node histories the dqdt mode reads, by the names the
// write-history mode gives their files.
var dqdtInputs = []string{
	"rho", "bmag", "br", "bt", "bp", "ur", "ut", "up", "flux", "r",
}

// DqdtConfig contains the configuration fields for the 'dqdt' mode of
// the epan tool.
type DqdtConfig struct {
	directory string
	pattern   string
	species   string
	energy    []string
	title     string
	output    string
}

var _ Mode = &DqdtConfig{}

// ExampleConfig creates an example dqdt.config file.
func (config *DqdtConfig) ExampleConfig() string {
	return `[dqdt.config]
# All variables are optional, but the defaults only work on histories
# written with an energy in their header.

# Directory holding the node histories and the file name pattern they
# share. The mode reads <quantity><pattern>.txt for each of rho, bmag,
# br, bt, bp, ur, ut, up, flux, and r, so a history set written by
#
#   [write-history.config]
#   Stream = 4
#   Shell = 250
#   Quantities = rho, bmag, br, bt, bp, ur, ut, up, r, flux
#   Energy = 1, MeV
#
# has the pattern -obs000004-t0-s250. Directory defaults to the global
# output directory.
# Directory = path/to/histories
# Pattern = -obs000004-t0-s250

# Species and energy of the particles whose acceleration terms to
# compute. They set the particle speed w. Bare energies are in the
# display energy unit; a trailing unit token overrides that. When
# Energy is unset, the energy in the flux history header is used.
# Species = H+
# Energy = 1, MeV

# A line above the figure.
# Title =

# Name of the figure. Defaults to dqdt<pattern>-<species>-<E>MeV.png in
# the history directory.
# Output = dqdt.png`
}

// ReadConfig reads in a dqdt.config file into config.
func (config *DqdtConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("dqdt.config")
	vars.String(&config.directory, "Directory", "")
	vars.String(&config.pattern, "Pattern", "")
	vars.String(&config.species, "Species", "H+")
	vars.Strings(&config.energy, "Energy", []string{})
	vars.String(&config.title, "Title", "")
	vars.String(&config.output, "Output", "")

	if fname == "" {
		if len(flags) == 0 { return nil }
		return parse.ReadFlags(flags, vars)
	}
	if err := parse.ReadConfig(fname, vars); err != nil { return err }
	return parse.ReadFlags(flags, vars)
}

// Run executes the dqdt mode of the epan tool.
func (config *DqdtConfig) Run(gConfig *GlobalConfig) error {
	logBanner("dqdt")
	defer logPerformance(time.Now())

	dir := config.directory
	if dir == "" { dir = gConfig.Output }

	histories := make(map[string]*eprem.History)
	for _, name := range dqdtInputs {
		path := filepath.Join(dir, name+config.pattern+".txt")
		h, err := eprem.ReadHistoryFile(path)
		if err != nil { return err }
		histories[name] = h
	}
	nSteps := len(histories["rho"].Times)
	for _, name := range dqdtInputs {
		if len(histories[name].Times) != nSteps {
			return fmt.Errorf("The history %s%s.txt has %d steps, but "+
				"the rho history has %d. All of the histories have to "+
				"follow the same node.", name, config.pattern,
				len(histories[name].Times), nSteps)
		}
	}

	cat := gConfig.Catalog()
	eMeV, err := config.particleEnergy(histories["flux"], cat)
	if err != nil { return err }
	sp, err := eprem.LookupSpecies(config.species)
	if err != nil { return err }
	// w = sqrt(2E/m), in cm/s.
	w := math.Sqrt(2 * eMeV * units.ErgPerMeV / sp.MassGrams())

	tscale, err := units.TimeScale(cat.Time)
	if err != nil { return err }
	days := histories["rho"].Times
	seconds := make([]float64, nSteps)
	xs := make([]float64, nSteps)
	for i, d := range days {
		seconds[i] = d * units.SecondsPerDay
		xs[i] = d * tscale
	}

	dqdt, err := config.dqdtPanel(histories, seconds, xs, w)
	if err != nil { return err }
	fluxPanel, err := config.fluxDotPanel(histories["flux"], xs)
	if err != nil { return err }
	divV, err := config.divVPanel(histories["rho"], seconds, xs)
	if err != nil { return err }
	radius, err := config.radiusPanel(histories["r"], xs,
		fmt.Sprintf("Time [%s]", cat.Time))
	if err != nil { return err }

	panels := []render.Panel{
		{Plot: dqdt, Weight: 3},
		{Plot: fluxPanel, Weight: 1},
		{Plot: divV, Weight: 1},
		{Plot: radius, Weight: 1},
	}

	out := config.output
	if out == "" {
		out = fmt.Sprintf("dqdt%s-%s-%gMeV.png",
			config.pattern, sp.Symbol, eMeV)
	}
	path := out
	if !filepath.IsAbs(out) { path = filepath.Join(dir, out) }
	err = render.SaveColumn(path, 10*vg.Inch, 10*vg.Inch,
		config.title, panels)
	if err != nil { return err }
	fmt.Println(path)
	return nil
}

// particleEnergy returns the particle energy in MeV, from the config or
// from the flux history header.
func (config *DqdtConfig) particleEnergy(
	flux *eprem.History, cat units.Catalog,
) (float64, error) {
	if len(config.energy) > 0 {
		e, err := parseEnergy(config.energy, 0, cat)
		if err != nil { return 0, err }
		if e <= 0 {
			return 0, fmt.Errorf("The 'Energy' variable is set to %g, "+
				"but it needs to be positive.", e)
		}
		return e, nil
	}

	if text, ok := flux.Meta["energy"]; ok {
		fields := strings.Fields(text)
		if len(fields) > 0 {
			if e, err := strconv.ParseFloat(fields[0], 64); err == nil &&
				e > 0 {
				return e, nil
			}
		}
	}
	return 0, fmt.Errorf("I need the 'Energy' variable, or a flux " +
		"history that names its energy, to compute the particle speed.")
}

// dqdtPanel draws the acceleration terms, once raw and dotted and once
// smoothed and solid.
func (config *DqdtConfig) dqdtPanel(
	histories map[string]*eprem.History, seconds, xs []float64, w float64,
) (*plot.Plot, error) {
	p := render.NewPlot("", "dQ/dt [s^-1]")
	colors := render.Rainbow(4)

	for _, smoothed := range []bool{false, true} {
		rho := histories["rho"].Values
		bmag := histories["bmag"].Values
		if smoothed {
			rho = interpolate.SmoothPositive(rho, 2, 11)
			bmag = interpolate.SmoothPositive(bmag, 2, 11)
		}

		n := len(rho)
		lnRhoB := make([]float64, n)
		lnB := make([]float64, n)
		vb := make([]float64, n)
		for i := 0; i < n; i++ {
			lnRhoB[i] = math.Log(rho[i] / bmag[i])
			lnB[i] = math.Log(bmag[i])
			vb[i] = (histories["br"].Values[i]*histories["ur"].Values[i] +
				histories["bt"].Values[i]*histories["ut"].Values[i] +
				histories["bp"].Values[i]*histories["up"].Values[i]) /
				bmag[i]
		}

		dLnRhoB := calc.Gradient(seconds, lnRhoB)
		dLnB := calc.Gradient(seconds, lnB)
		sum := make([]float64, n)
		for i := range sum { sum[i] = dLnRhoB[i] + dLnB[i] }
		dVb := calc.Gradient(seconds, vb)
		accel := make([]float64, n)
		for i := range accel { accel[i] = -dVb[i] / w }

		curves := []struct {
			label string
			ys    []float64
		}{
			{"ln(n/B)", dLnRhoB},
			{"ln(B)", dLnB},
			{"ln(n/B) + ln(B)", sum},
			{"-b·V/w", accel},
		}
		for i, curve := range curves {
			sty := render.Dotted(colors[i])
			label := curve.label
			if smoothed {
				sty = render.Solid(colors[i])
				label += " [smoothed]"
			}
			ln, err := render.Line(xs, curve.ys, sty)
			if err != nil { return nil, err }
			p.Add(ln)
			p.Legend.Add(label, ln)
		}
	}

	p.Y.Min, p.Y.Max = -2e-3, 2e-3
	return p, nil
}

// fluxDotPanel draws the flux history as points.
func (config *DqdtConfig) fluxDotPanel(
	h *eprem.History, xs []float64,
) (*plot.Plot, error) {
	p := render.NewPlot("", "")
	dots, err := render.Dots(xs, h.Values, color.Black)
	if err != nil { return nil, err }
	p.Add(dots)
	p.Legend.Add(fmt.Sprintf("J(E) [%s]", h.DataUnit()), dots)
	return p, nil
}

// divVPanel draws the compression term recovered from the density
// history. div(V) = -dln(n)/dt along the co-moving node.
func (config *DqdtConfig) divVPanel(
	rho *eprem.History, seconds, xs []float64,
) (*plot.Plot, error) {
	n := len(rho.Values)
	lnRho := make([]float64, n)
	for i, v := range rho.Values { lnRho[i] = math.Log(v) }
	dLnRho := calc.Gradient(seconds, lnRho)
	ys := make([]float64, n)
	for i := range ys { ys[i] = dLnRho[i] / 3 }

	p := render.NewPlot("", "")
	green := color.RGBA{G: 128, A: 255}
	ln, err := render.Line(xs, ys, render.Solid(green))
	if err != nil { return nil, err }
	p.Add(ln)
	p.Legend.Add("-(1/3) div(V)", ln)
	p.Y.Min, p.Y.Max = -2e-4, 0
	return p, nil
}

// radiusPanel draws the node's radius in solar radii.
func (config *DqdtConfig) radiusPanel(
	r *eprem.History, xs []float64, xlabel string,
) (*plot.Plot, error) {
	ys := make([]float64, len(r.Values))
	for i, v := range r.Values { ys[i] = v / units.RSun }

	p := render.NewPlot(xlabel, "")
	ln, err := render.Line(xs, ys, render.Dashed(color.Black))
	if err != nil { return nil, err }
	p.Add(ln)
	p.Legend.Add("r [Rs]", ln)
	p.Y.Min, p.Y.Max = 0, 5
	return p, nil
}
