package cmd

import (
	"fmt"
	"time"

	"gonum.org/v1/plot/vg"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/parse"
	"github.com/myoung-space-science/emmrem-analysis/render"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

// FluenceEnergyConfig contains the configuration fields for the
// 'fluence-energy' mode of the epan tool.
type FluenceEnergyConfig struct {
	streams  []int64
	location []string
	species  string
	xlim     []float64
	ylim     []float64
	title    bool
}

var _ Mode = &FluenceEnergyConfig{}

// ExampleConfig creates an example fluence-energy.config file.
func (config *FluenceEnergyConfig) ExampleConfig() string {
	return `[fluence-energy.config]
# All variables are optional.

# Stream observers to plot, by number. Each stream gets its own figure,
# named <stem>-fluence-energy.png. Leaving this unset plots every
# stream in the run.
# Streams = 0, 4, 12

# Locations of the observation, one curve per value. A bare integer is
# a shell index. Values followed by a unit are radii, matched to shells
# at the end of the run.
# Location = 0
# Location = 0.5, 1, 1.5, au

# Ion species to plot, by symbol or index.
# Species = H+

# Axis limits, in display units.
# XLim = 0.1, 100
# YLim = 1e0, 1e8

# Title = false suppresses the line above the figure.
# Title = true`
}

// ReadConfig reads in a fluence-energy.config file into config.
func (config *FluenceEnergyConfig) ReadConfig(
	fname string, flags []string,
) error {
	vars := parse.NewConfigVars("fluence-energy.config")
	vars.Ints(&config.streams, "Streams", []int64{})
	vars.Strings(&config.location, "Location", []string{})
	vars.String(&config.species, "Species", "0")
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
func (config *FluenceEnergyConfig) validate() error {
	if err := checkLim("XLim", config.xlim); err != nil { return err }
	if err := checkLim("YLim", config.ylim); err != nil { return err }
	return nil
}

// Run executes the fluence-energy mode of the epan tool.
func (config *FluenceEnergyConfig) Run(gConfig *GlobalConfig) error {
	logBanner("fluence-energy")
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

func (config *FluenceEnergyConfig) plotStream(
	ds *eprem.Dataset, n int, gConfig *GlobalConfig,
) error {
	obs, err := ds.Stream(n)
	if err != nil { return err }
	defer obs.Close()

	species, sp, err := obs.SpeciesIndex(config.species)
	if err != nil { return err }

	last := len(obs.Times()) - 1
	places, err := resolvePlacePicks(obs, config.location, last)
	if err != nil { return err }

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
		fmt.Sprintf("Fluence [%s]", cat.Fluence),
	)
	colors := render.Rainbow(len(places))
	for i, place := range places {
		ys := obs.Fluence(flux, place.shell, species)
		ln, err := render.Line(xs, render.Positive(ys),
			render.Solid(colors[i]))
		if err != nil { return err }
		p.Add(ln)
		if len(places) > 1 { p.Legend.Add(place.label, ln) }
	}

	render.LogLog(p)
	applyLims(p, config.xlim, config.ylim)
	if config.title {
		title := "species = " + sp.Symbol
		if len(places) == 1 {
			title = titleParts(places[0].title, title)
		}
		p.Title.Text = title
	}

	path := outputName("", gConfig.Output, obsStem(obs.Path()),
		"fluence-energy", "png")
	if err := render.SavePlot(path, 8*vg.Inch, 6*vg.Inch, p); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
