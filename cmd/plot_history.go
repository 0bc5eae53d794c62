package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/math/interpolate"
	"github.com/myoung-space-science/emmrem-analysis/parse"
	"github.com/myoung-space-science/emmrem-analysis/render"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

// PlotHistoryConfig contains the configuration fields for the
// 'plot-history' mode of the epan tool.
type PlotHistoryConfig struct {
	files  []string
	filter bool
	logy   bool
	output string
}

var _ Mode = &PlotHistoryConfig{}

// ExampleConfig creates an example plot-history.config file.
func (config *PlotHistoryConfig) ExampleConfig() string {
	return `[plot-history.config]
#####################
## Required Fields ##
#####################

# Node history files to plot, as written by the write-history mode.
# Files with the same data name share a panel, labeled by file stem, so
# the same quantity from two runs can be compared directly.
Files = rho-obs000000-t0-s0.txt, rho-obs000004-t0-s0.txt

#####################
## Optional Fields ##
#####################

# Filter = true overlays a smoothed curve on each history, drawing the
# raw data dotted.
# Filter = false

# LogY = true plots the data on a logarithmic y axis.
# LogY = false

# Name of the figure. Defaults to history.png in the output directory.
# Output = history.png`
}

// ReadConfig reads in a plot-history.config file into config.
func (config *PlotHistoryConfig) ReadConfig(
	fname string, flags []string,
) error {
	vars := parse.NewConfigVars("plot-history.config")
	vars.Strings(&config.files, "Files", []string{})
	vars.Bool(&config.filter, "Filter", false)
	vars.Bool(&config.logy, "LogY", false)
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
func (config *PlotHistoryConfig) validate() error {
	if len(config.files) == 0 {
		return fmt.Errorf("The 'Files' variable isn't set.")
	}
	return nil
}

// Run executes the plot-history mode of the epan tool.
func (config *PlotHistoryConfig) Run(gConfig *GlobalConfig) error {
	logBanner("plot-history")
	defer logPerformance(time.Now())

	if len(config.files) == 0 {
		return fmt.Errorf("Either no plot-history.config file was " +
			"provided or the 'Files' variable wasn't set.")
	}

	cat := gConfig.Catalog()
	tscale, err := units.TimeScale(cat.Time)
	if err != nil { return err }

	// Histories with the same data name share a panel, in the order the
	// names first appear.
	names := []string{}
	groups := make(map[string]*plot.Plot)
	counts := make(map[string]int)

	for _, file := range config.files {
		h, err := eprem.ReadHistoryFile(file)
		if err != nil { return err }

		name := h.Name()
		p, ok := groups[name]
		if !ok {
			p = render.NewPlot(
				fmt.Sprintf("Time [%s]", cat.Time),
				fmt.Sprintf("%s [%s]", name, h.DataUnit()),
			)
			if config.logy { render.LogY(p) }
			groups[name] = p
			names = append(names, name)
		}

		xs := make([]float64, len(h.Times))
		for i, t := range h.Times { xs[i] = t * tscale }
		ys := h.Values
		if config.logy { ys = render.Positive(ys) }

		label := obsStem(filepath.Base(file))
		color := render.Rainbow(len(config.files))[counts[name]]
		counts[name]++

		if config.filter {
			raw, err := render.Line(xs, ys, render.Dotted(color))
			if err != nil { return err }
			p.Add(raw)

			smoothed := interpolate.NewSavGolKernel(2, 11).
				Convolve(h.Values, interpolate.Extension)
			if config.logy { smoothed = render.Positive(smoothed) }
			ln, err := render.Line(xs, smoothed, render.Solid(color))
			if err != nil { return err }
			p.Add(ln)
			p.Legend.Add(label, ln)
		} else {
			ln, err := render.Line(xs, ys, render.Solid(color))
			if err != nil { return err }
			p.Add(ln)
			p.Legend.Add(label, ln)
		}
	}

	panels := make([]render.Panel, len(names))
	for i, name := range names {
		panels[i] = render.Panel{Plot: groups[name], Weight: 1}
	}

	out := config.output
	if out == "" { out = "history.png" }
	path := out
	if !filepath.IsAbs(out) { path = filepath.Join(gConfig.Output, out) }
	height := vg.Length(4*len(panels)) * vg.Inch
	if err := render.SaveColumn(path, 10*vg.Inch, height, "", panels); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
