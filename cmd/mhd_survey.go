package cmd

import (
	"fmt"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/parse"
	"github.com/myoung-space-science/emmrem-analysis/render"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

// MHDSurveyConfig contains the configuration fields for the 'mhd-survey'
// mode of the epan tool.
type MHDSurveyConfig struct {
	streams  []int64
	location []string
	title    bool
}

var _ Mode = &MHDSurveyConfig{}

// ExampleConfig creates an example mhd-survey.config file.
func (config *MHDSurveyConfig) ExampleConfig() string {
	return `[mhd-survey.config]
# All variables are optional.

# Stream observers to plot, by number. Each stream gets its own figure
# with magnetic field, velocity, and density panels, named
# <stem>-mhd-survey.png. Leaving this unset plots every stream in the
# run.
# Streams = 0, 4, 12

# Location of the observation. A bare integer is a shell index. Values
# followed by a unit are radii, matched to shells at the end of the run.
# Location = 0
# Location = 1, au

# Title = false suppresses the line above the figure.
# Title = true`
}

// ReadConfig reads in an mhd-survey.config file into config.
func (config *MHDSurveyConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("mhd-survey.config")
	vars.Ints(&config.streams, "Streams", []int64{})
	vars.Strings(&config.location, "Location", []string{})
	vars.Bool(&config.title, "Title", true)

	if fname == "" {
		if len(flags) == 0 { return nil }
		return parse.ReadFlags(flags, vars)
	}
	if err := parse.ReadConfig(fname, vars); err != nil { return err }
	return parse.ReadFlags(flags, vars)
}

// Run executes the mhd-survey mode of the epan tool.
func (config *MHDSurveyConfig) Run(gConfig *GlobalConfig) error {
	logBanner("mhd-survey")
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

func (config *MHDSurveyConfig) plotStream(
	ds *eprem.Dataset, n int, gConfig *GlobalConfig,
) error {
	obs, err := ds.Stream(n)
	if err != nil { return err }
	defer obs.Close()

	last := len(obs.Times()) - 1
	picks, err := resolvePlacePicks(obs, config.location, last)
	if err != nil { return err }
	place, err := onePlace(picks)
	if err != nil { return err }

	cat := gConfig.Catalog()
	times, err := scaledTimes(obs, cat)
	if err != nil { return err }
	xlabel := fmt.Sprintf("Time [%s]", cat.Time)

	bPanel, err := config.quantityPanel(obs, place.shell, times, "", "[nT]",
		units.NTPerGauss, []string{"br", "bt", "bp"},
		[]string{"Br", "Bθ", "Bφ"})
	if err != nil { return err }
	vPanel, err := config.quantityPanel(obs, place.shell, times, "",
		"[cm / s]", 1, []string{"ur", "ut", "up"},
		[]string{"Ur", "Uθ", "Uφ"})
	if err != nil { return err }
	rhoPanel, err := config.quantityPanel(obs, place.shell, times, xlabel,
		"[cm^-3]", 1, []string{"rho"}, []string{"ρ"})
	if err != nil { return err }

	title := ""
	if config.title { title = place.title }

	panels := []render.Panel{
		{Plot: bPanel, Weight: 1},
		{Plot: vPanel, Weight: 1},
		{Plot: rhoPanel, Weight: 1},
	}
	path := outputName("", gConfig.Output, obsStem(obs.Path()),
		"mhd-survey", "png")
	err = render.SaveColumn(path, 10*vg.Inch, 8*vg.Inch, title, panels)
	if err != nil { return err }
	fmt.Println(path)
	return nil
}

// quantityPanel plots the histories of a few 2-D quantities at one
// shell on shared axes.
func (config *MHDSurveyConfig) quantityPanel(
	obs *eprem.Observer, shell int, times []float64,
	xlabel, ylabel string, scale float64, names, labels []string,
) (*plot.Plot, error) {
	p := render.NewPlot(xlabel, ylabel)
	colors := render.Rainbow(len(names))
	for i, name := range names {
		g, err := obs.Grid(name)
		if err != nil { return nil, err }
		ys := gridColumn(g, shell)
		for j := range ys { ys[j] *= scale }
		ln, err := render.Line(times, ys, render.Solid(colors[i]))
		if err != nil { return nil, err }
		p.Add(ln)
		p.Legend.Add(labels[i], ln)
	}
	return p, nil
}
