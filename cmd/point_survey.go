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

// PointSurveyConfig contains the configuration fields for the
// 'point-survey' mode of the epan tool.
type PointSurveyConfig struct {
	points     []int64
	species    string
	thresholds []string
}

var _ Mode = &PointSurveyConfig{}

// ExampleConfig creates an example point-survey.config file.
func (config *PointSurveyConfig) ExampleConfig() string {
	return `[point-survey.config]
# All variables are optional.

# Point observers to plot, by number. Each point gets its own figure
# with flux, fluence, and intflux panels, named <stem>-point-survey.png.
# Leaving this unset plots every point in the run.
# Points = 0, 1

# Ion species to plot, by symbol or index.
# Species = H+

# Threshold energies for the intflux panel. Bare values are in the
# display energy unit; a trailing unit token overrides that.
# Thresholds = 1, 5, 10, 50, 100`
}

// ReadConfig reads in a point-survey.config file into config.
func (config *PointSurveyConfig) ReadConfig(
	fname string, flags []string,
) error {
	vars := parse.NewConfigVars("point-survey.config")
	vars.Ints(&config.points, "Points", []int64{})
	vars.String(&config.species, "Species", "0")
	vars.Strings(&config.thresholds, "Thresholds", []string{})

	if fname == "" {
		if len(flags) == 0 { return nil }
		return parse.ReadFlags(flags, vars)
	}
	if err := parse.ReadConfig(fname, vars); err != nil { return err }
	return parse.ReadFlags(flags, vars)
}

// Run executes the point-survey mode of the epan tool.
func (config *PointSurveyConfig) Run(gConfig *GlobalConfig) error {
	logBanner("point-survey")
	defer logPerformance(time.Now())

	ds, err := eprem.OpenDataset(gConfig.Source)
	if err != nil { return err }
	nums, err := pickPoints(ds, config.points)
	if err != nil { return err }

	thresholds, err := parseThresholds(config.thresholds,
		[]float64{1, 5, 10, 50, 100}, gConfig.Catalog())
	if err != nil { return err }

	for _, n := range nums {
		if err := config.plotPoint(ds, n, thresholds, gConfig); err != nil {
			return err
		}
	}
	return nil
}

func (config *PointSurveyConfig) plotPoint(
	ds *eprem.Dataset, n int, thresholds []float64, gConfig *GlobalConfig,
) error {
	obs, err := ds.Point(n)
	if err != nil { return err }
	defer obs.Close()

	species, sp, err := obs.SpeciesIndex(config.species)
	if err != nil { return err }

	flux, err := obs.Flux()
	if err != nil { return err }

	// Point observers record a single shell.
	cat := gConfig.Catalog()
	fp, err := fluxPanel(obs, flux, 0, species, allEnergyIndices(obs), cat)
	if err != nil { return err }
	cp, err := fluencePanel(obs, flux, 0, species, cat)
	if err != nil { return err }
	ip, err := intfluxPanel(obs, flux, 0, species, thresholds, false, cat)
	if err != nil { return err }

	r, err := obs.Grid("r")
	if err != nil { return err }
	rscale, err := units.RadiusScale(cat.Radius)
	if err != nil { return err }
	title := fmt.Sprintf("radius = %.2f %s | species = %s",
		r.At(0, 0)*rscale, cat.Radius, sp.Symbol)

	panels := []render.Panel{
		{Plot: fp, Weight: 1},
		{Plot: cp, Weight: 1},
		{Plot: ip, Weight: 1},
	}
	path := outputName("", gConfig.Output, obsStem(obs.Path()),
		"point-survey", "png")
	err = render.SaveRow(path, 20*vg.Inch, 6*vg.Inch, title, panels)
	if err != nil { return err }
	fmt.Println(path)
	return nil
}
