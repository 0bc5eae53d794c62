package cmd

import (
	"fmt"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/parse"
	"github.com/myoung-space-science/emmrem-analysis/render"
)

// Panel widths in inches. Flux panels carry a long legend, so they get
// twice the room.
var surveyWidths = map[string]float64{
	"flux":    10,
	"fluence": 5,
	"intflux": 5,
}

// SurveyConfig contains the configuration fields for the 'survey' mode
// of the epan tool.
type SurveyConfig struct {
	streams    []int64
	panels     []string
	location   []string
	species    string
	thresholds []string
	title      bool
}

var _ Mode = &SurveyConfig{}

// ExampleConfig creates an example survey.config file.
func (config *SurveyConfig) ExampleConfig() string {
	return `[survey.config]
# All variables are optional.

# Stream observers to plot, by number. Each stream gets its own figure,
# named <stem>-survey.png. Leaving this unset plots every stream in the
# run.
# Streams = 0, 4, 12

# Panels to draw, left to right. Any subset and order of flux, fluence,
# and intflux works.
# Panels = flux, fluence, intflux

# Location of the observation. A bare integer is a shell index. Values
# followed by a unit are radii, matched to shells at the end of the run.
# Location = 0
# Location = 1, au

# Ion species to plot, by symbol or index.
# Species = H+

# Threshold energies for the intflux panel. Bare values are in the
# display energy unit; a trailing unit token overrides that.
# Thresholds = 10, 50, 100

# Title = false suppresses the line above the figure.
# Title = true`
}

// ReadConfig reads in a survey.config file into config.
func (config *SurveyConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("survey.config")
	vars.Ints(&config.streams, "Streams", []int64{})
	vars.Strings(&config.panels, "Panels",
		[]string{"flux", "fluence", "intflux"})
	vars.Strings(&config.location, "Location", []string{})
	vars.String(&config.species, "Species", "0")
	vars.Strings(&config.thresholds, "Thresholds", []string{})
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
func (config *SurveyConfig) validate() error {
	if len(config.panels) == 0 {
		return fmt.Errorf("The 'Panels' variable is empty.")
	}
	for _, name := range config.panels {
		if _, ok := surveyWidths[name]; !ok {
			return fmt.Errorf("The 'Panels' variable contains '%s', "+
				"which I don't recognize.", name)
		}
	}
	return nil
}

// Run executes the survey mode of the epan tool.
func (config *SurveyConfig) Run(gConfig *GlobalConfig) error {
	logBanner("survey")
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

func (config *SurveyConfig) plotStream(
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
	panels := []render.Panel{}
	width := 0.0
	for _, name := range config.panels {
		var (
			plt *plot.Plot
			err error
		)
		switch name {
		case "flux":
			plt, err = fluxPanel(obs, flux, place.shell, species,
				allEnergyIndices(obs), cat)
		case "fluence":
			plt, err = fluencePanel(obs, flux, place.shell, species, cat)
		case "intflux":
			plt, err = intfluxPanel(obs, flux, place.shell, species,
				thresholds, true, cat)
		}
		if err != nil { return err }
		panels = append(panels,
			render.Panel{Plot: plt, Weight: surveyWidths[name]})
		width += surveyWidths[name]
	}

	title := ""
	if config.title {
		title = titleParts(place.title, "species = "+sp.Symbol)
	}

	path := outputName("", gConfig.Output, obsStem(obs.Path()),
		"survey", "png")
	err = render.SaveRow(path, vg.Length(width)*vg.Inch, 6*vg.Inch,
		title, panels)
	if err != nil { return err }
	fmt.Println(path)
	return nil
}
