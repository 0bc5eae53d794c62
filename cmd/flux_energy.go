package cmd

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot/vg"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/parse"
	"github.com/myoung-space-science/emmrem-analysis/render"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

// FluxEnergyConfig contains the configuration fields for the
// 'flux-energy' mode of the epan tool.
type FluxEnergyConfig struct {
	streams     []int64
	times       []string
	location    []string
	species     string
	showInitial bool
	xlim        []float64
	ylim        []float64
	title       bool
}

var _ Mode = &FluxEnergyConfig{}

// ExampleConfig creates an example flux-energy.config file.
func (config *FluxEnergyConfig) ExampleConfig() string {
	return `[flux-energy.config]
# All variables are optional.

# Stream observers to plot, by number. Each stream gets its own figure,
# named <stem>-flux-energy.png. Leaving this unset plots every stream
# in the run.
# Streams = 0, 4, 12

# Times of the observation. Bare integers are time step indices. Values
# followed by a unit are physical times.
# Time = 0
# Time = 12, 24, 36, hour

# Locations of the observation. A bare integer is a shell index. Values
# followed by a unit are radii.
# Location = 0
# Location = 0.5, 1, 1.5, au

# Either Time or Location, but not both, may hold several values. The
# multi-valued one gets a curve per value.

# Ion species to plot, by symbol or index.
# Species = H+

# ShowInitial = true adds the spectrum at the inner boundary at the
# first time step as a dashed reference curve.
# ShowInitial = false

# Axis limits, in display units.
# XLim = 0.1, 100
# YLim = 1e-6, 1e2

# Title = false suppresses the line above the figure.
# Title = true`
}

// ReadConfig reads in a flux-energy.config file into config.
func (config *FluxEnergyConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("flux-energy.config")
	vars.Ints(&config.streams, "Streams", []int64{})
	vars.Strings(&config.times, "Time", []string{})
	vars.Strings(&config.location, "Location", []string{})
	vars.String(&config.species, "Species", "0")
	vars.Bool(&config.showInitial, "ShowInitial", false)
	vars.Floats(&config.xlim, "XLim", []float64{})
	vars.Floats(&config.ylim, "YLim", []float64{})
	vars.Bool(&config.title, "Title", true)

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
func (config *FluxEnergyConfig) validate() error {
	if err := checkLim("XLim", config.xlim); err != nil { return err }
	if err := checkLim("YLim", config.ylim); err != nil { return err }
	return nil
}

// Run executes the flux-energy mode of the epan tool.
func (config *FluxEnergyConfig) Run(gConfig *GlobalConfig) error {
	logBanner("flux-energy")
	defer logPerformance(time.Now())

	ds, err := eprem.OpenDataset(gConfig.Source)
	if err != nil { return err }
	nums, err := pickStreams(ds, config.streams)
	if err != nil { return err }

	for _, n := range nums {
		if err := config.plotStream(ds, n, gConfig); err != nil {
			return err
		}
	}
	return nil
}

func (config *FluxEnergyConfig) plotStream(
	ds *eprem.Dataset, n int, gConfig *GlobalConfig,
) error {
	obs, err := ds.Stream(n)
	if err != nil { return err }
	defer obs.Close()

	species, sp, err := obs.SpeciesIndex(config.species)
	if err != nil { return err }

	times, err := resolveTimePicks(obs, config.times)
	if err != nil { return err }
	places, err := resolvePlacePicks(obs, config.location, times[0].idx)
	if err != nil { return err }
	if err := errTimePlace(times, places); err != nil { return err }

	flux, err := obs.Flux()
	if err != nil { return err }

	cat := gConfig.Catalog()
	escale, err := units.EnergyScale(cat.Energy)
	if err != nil { return err }
	energies := obs.Energies()
	xs := make([]float64, len(energies))
	for i, e := range energies { xs[i] = e * escale }

	p := render.NewPlot(
		fmt.Sprintf("Energy [%s]", cat.Energy),
		fmt.Sprintf("Flux [%s]", cat.Flux),
	)

	title := ""
	switch {
	case len(places) > 1:
		colors := render.Rainbow(len(places))
		for i, place := range places {
			ys := flux.Slice(times[0].idx, place.shell, species)
			ln, err := render.Line(xs, render.Positive(ys),
				render.Solid(colors[i]))
			if err != nil { return err }
			p.Add(ln)
			p.Legend.Add(place.label, ln)
		}
		title = titleParts(times[0].title, "species = "+sp.Symbol)
	case len(times) > 1:
		colors := render.Rainbow(len(times))
		for i, tp := range times {
			ys := flux.Slice(tp.idx, places[0].shell, species)
			ln, err := render.Line(xs, render.Positive(ys),
				render.Solid(colors[i]))
			if err != nil { return err }
			p.Add(ln)
			p.Legend.Add(tp.label, ln)
		}
		title = titleParts(places[0].title, "species = "+sp.Symbol)
	default:
		ys := flux.Slice(times[0].idx, places[0].shell, species)
		ln, err := render.Line(xs, render.Positive(ys),
			render.Solid(render.Rainbow(1)[0]))
		if err != nil { return err }
		p.Add(ln)
		title = titleParts(times[0].title, places[0].title,
			"species = "+sp.Symbol)
	}

	if config.showInitial {
		ys := flux.Slice(0, 0, species)
		ln, err := render.Line(xs, render.Positive(ys),
			render.Dashed(color.Black))
		if err != nil { return err }
		p.Add(ln)
		p.Legend.Add("Seed Spectrum", ln)
	}

	render.LogLog(p)
	applyLims(p, config.xlim, config.ylim)
	if config.title { p.Title.Text = title }

	path := outputName("", gConfig.Output, obsStem(obs.Path()),
		"flux-energy", "png")
	if err := render.SavePlot(path, 8*vg.Inch, 6*vg.Inch, p); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
