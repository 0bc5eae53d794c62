package cmd

import (
	"fmt"
	"time"

	"gonum.org/v1/plot/vg"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/parse"
	"github.com/myoung-space-science/emmrem-analysis/render"
)

// IntFluxTimeConfig contains the configuration fields for the
// 'intflux-time' mode of the epan tool.
type IntFluxTimeConfig struct {
	streams    []int64
	location   []string
	species    string
	thresholds []string
	xlim       []float64
	ylim       []float64
	title      bool
}

var _ Mode = &IntFluxTimeConfig{}

// ExampleConfig creates an example intflux-time.config file.
func (config *IntFluxTimeConfig) ExampleConfig() string {
	return `[intflux-time.config]
# All variables are optional.

# Stream observers to plot, by number. Each stream gets its own figure,
# named <stem>-intflux-time.png. Leaving this unset plots every stream
# in the run.
# Streams = 0, 4, 12

# Location of the observation. A bare integer is a shell index. Values
# followed by a unit are radii, matched to shells at the end of the run.
# Location = 0
# Location = 1, au

# Ion species to plot, by symbol or index.
# Species = H+

# Threshold energies, one curve per value. Each curve shows the flux
# integrated over energies at and above its threshold. Bare values are
# in the display energy unit; a trailing unit token overrides that.
# Thresholds = 10, 50, 100
# Thresholds = 0.01, 0.05, 0.1, GeV

# Axis limits, in display units.
# XLim = 0, 48
# YLim = 1e-4, 1e4

# Title = false suppresses the line above the figure.
# Title = true`
}

// ReadConfig reads in an intflux-time.config file into config.
func (config *IntFluxTimeConfig) ReadConfig(
	fname string, flags []string,
) error {
	vars := parse.NewConfigVars("intflux-time.config")
	vars.Ints(&config.streams, "Streams", []int64{})
	vars.Strings(&config.location, "Location", []string{})
	vars.String(&config.species, "Species", "0")
	vars.Strings(&config.thresholds, "Thresholds", []string{})
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
func (config *IntFluxTimeConfig) validate() error {
	if err := checkLim("XLim", config.xlim); err != nil { return err }
	if err := checkLim("YLim", config.ylim); err != nil { return err }
	return nil
}

// Run executes the intflux-time mode of the epan tool.
func (config *IntFluxTimeConfig) Run(gConfig *GlobalConfig) error {
	logBanner("intflux-time")
	defer logPerformance(time.Now())

	ds, err := eprem.OpenDataset(gConfig.Source)
	if err != nil { return err }
	nums, err := pickStreams(ds, config.streams)
	if err != nil { return err }

	thresholds, err := parseThresholds(config.thresholds,
		[]float64{10, 50, 100}, gConfig.Catalog())
	if err != nil { return err }

	for _, n := range nums {
		if err := config.plotStream(ds, n, thresholds, gConfig); err != nil {
			return err
		}
	}
	return nil
}

func (config *IntFluxTimeConfig) plotStream(
	ds *eprem.Dataset, n int, thresholds []float64, gConfig *GlobalConfig,
) error {
	obs, err := ds.Stream(n)
	if err != nil { return err }
	defer obs.Close()

	species, sp, err := obs.SpeciesIndex(config.species)
	if err != nil { return err }

	last := len(obs.Times()) - 1
	picks, err := resolvePlacePicks(obs, config.location, last)
	if err != nil { return err }
	place, err := onePlace(picks)
	if err != nil { return err }

	flux, err := obs.Flux()
	if err != nil { return err }

	cat := gConfig.Catalog()
	p, err := intfluxPanel(obs, flux, place.shell, species, thresholds,
		true, cat)
	if err != nil { return err }
	applyLims(p, config.xlim, config.ylim)
	if config.title {
		p.Title.Text = titleParts(place.title, "species = "+sp.Symbol)
	}

	path := outputName("", gConfig.Output, obsStem(obs.Path()),
		"intflux-time", "png")
	if err := render.SavePlot(path, 8*vg.Inch, 6*vg.Inch, p); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
