package cmd

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/plot"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/indexer"
	"github.com/myoung-space-science/emmrem-analysis/logging"
	"github.com/myoung-space-science/emmrem-analysis/math/coords"
	"github.com/myoung-space-science/emmrem-analysis/render"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

func logBanner(mode string) {
	if logging.Mode == logging.Nil { return }
	line := strings.Repeat("#", len(mode)+11)
	log.Printf("\n%s\n## epan %s ##\n%s", line, mode, line)
}

func logPerformance(t time.Time) {
	if logging.Mode < logging.Performance { return }
	log.Printf("Time: %s", time.Since(t).String())
	if logging.Mode == logging.Debug {
		log.Printf("Memory:\n%s", logging.MemString())
	}
}

// obsStem returns the file stem naming an observer, e.g. "obs000012".
func obsStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputName joins dir with "<stem>-<mode>.<ext>", the default name for
// a mode's artifact. An explicit override is used as given.
func outputName(override, dir, stem, mode, ext string) string {
	if override != "" { return override }
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", stem, mode, ext))
}

// titleParts joins the non-empty parts with " | ".
func titleParts(parts ...string) string {
	kept := []string{}
	for _, part := range parts {
		if part != "" { kept = append(kept, part) }
	}
	return strings.Join(kept, " | ")
}

// A timePick is one resolved time selection: the index into the output
// steps plus the labels figures print for it.
type timePick struct {
	idx   int
	label string
	title string
}

// resolveTimePicks resolves time selector tokens against an observer's
// output steps. Empty tokens select the first step.
func resolveTimePicks(obs *eprem.Observer, tokens []string) ([]timePick, error) {
	arg, err := indexer.Resolve(tokens)
	if err != nil { return nil, err }
	idxs, err := obs.TimeIndices(arg)
	if err != nil { return nil, err }

	picks := make([]timePick, len(idxs))
	switch a := arg.(type) {
	case indexer.Indices:
		for i, idx := range idxs {
			label := fmt.Sprintf("time step %d", idx)
			picks[i] = timePick{idx, label, label}
		}
	case indexer.Measurement:
		for i, idx := range idxs {
			picks[i] = timePick{
				idx,
				fmt.Sprintf("t = %.1f %s", a.Values[i], a.Unit),
				fmt.Sprintf("time = %g %s", a.Values[i], a.Unit),
			}
		}
	}
	return picks, nil
}

// A placePick is one resolved location selection: the shell index plus
// the labels figures print for it.
type placePick struct {
	shell int
	label string
	title string
}

// resolvePlacePicks resolves location selector tokens against an
// observer. Radii are matched to the shells of the given time step.
// Empty tokens select shell 0.
func resolvePlacePicks(
	obs *eprem.Observer, tokens []string, timeStep int,
) ([]placePick, error) {
	arg, err := indexer.Resolve(tokens)
	if err != nil { return nil, err }
	idxs, err := obs.ShellIndices(arg, timeStep)
	if err != nil { return nil, err }

	picks := make([]placePick, len(idxs))
	switch a := arg.(type) {
	case indexer.Indices:
		for i, idx := range idxs {
			label := fmt.Sprintf("shell = %d", idx)
			picks[i] = placePick{idx, label, label}
		}
	case indexer.Measurement:
		for i, idx := range idxs {
			picks[i] = placePick{
				idx,
				fmt.Sprintf("r = %.3f %s", a.Values[i], a.Unit),
				fmt.Sprintf("radius = %g %s", a.Values[i], a.Unit),
			}
		}
	}
	return picks, nil
}

// onePlace enforces that a mode taking a single location got one.
func onePlace(picks []placePick) (placePick, error) {
	if len(picks) != 1 {
		return placePick{}, fmt.Errorf("This mode takes a single "+
			"location, but the 'Location' variable resolved to %d shells.",
			len(picks))
	}
	return picks[0], nil
}

// errTimePlace is the exclusivity rule for spectrum figures.
func errTimePlace(times []timePick, places []placePick) error {
	if len(times) > 1 && len(places) > 1 {
		return fmt.Errorf("Either time or location, but not both, may " +
			"be multi-valued.")
	}
	return nil
}

// pickStreams maps an explicit stream selection onto the dataset, or
// every discovered stream when the selection is empty.
func pickStreams(ds *eprem.Dataset, sel []int64) ([]int, error) {
	if len(sel) == 0 { return ds.Streams, nil }
	out := make([]int, len(sel))
	for i, n := range sel {
		if _, err := ds.StreamPath(int(n)); err != nil { return nil, err }
		out[i] = int(n)
	}
	return out, nil
}

// pickPoints is pickStreams for point observers.
func pickPoints(ds *eprem.Dataset, sel []int64) ([]int, error) {
	if len(sel) == 0 { return ds.Points, nil }
	out := make([]int, len(sel))
	for i, n := range sel {
		if _, err := ds.PointPath(int(n)); err != nil { return nil, err }
		out[i] = int(n)
	}
	return out, nil
}

// parseStreamIDs expands a stream selection into IDs from avail. A
// token is an explicit ID, the word 'all', or python slice syntax over
// the available list: 'start:stop', 'start:stop:step', '::step'.
func parseStreamIDs(tokens []string, avail []int) ([]int, error) {
	have := make(map[int]bool)
	for _, n := range avail { have[n] = true }

	out, seen := []int{}, make(map[int]bool)
	add := func(n int) {
		if !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}

	for _, tok := range tokens {
		switch {
		case strings.EqualFold(tok, "all"):
			for _, n := range avail { add(n) }
		case strings.Contains(tok, ":"):
			start, stop, step, err := parseSlice(tok, len(avail))
			if err != nil { return nil, err }
			for i := start; i < stop; i += step { add(avail[i]) }
		default:
			n, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("You passed me the stream "+
					"selector '%s', which I can't parse.", tok)
			}
			if !have[n] {
				return nil, fmt.Errorf("The dataset has no stream "+
					"observer %d.", n)
			}
			add(n)
		}
	}
	return out, nil
}

// parseSlice parses 'start:stop[:step]' with python defaults against a
// list of the given length.
func parseSlice(tok string, length int) (start, stop, step int, err error) {
	fields := strings.Split(tok, ":")
	if len(fields) > 3 {
		return 0, 0, 0, fmt.Errorf("You passed me the stream selector "+
			"'%s', which has too many ':' separators.", tok)
	}

	start, stop, step = 0, length, 1
	atoi := func(s string, def int) (int, error) {
		if s == "" { return def, nil }
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("You passed me the stream selector "+
				"'%s', which I can't parse.", tok)
		}
		return n, nil
	}

	if start, err = atoi(fields[0], 0); err != nil { return }
	if stop, err = atoi(fields[1], length); err != nil { return }
	if len(fields) == 3 {
		if step, err = atoi(fields[2], 1); err != nil { return }
	}
	if step <= 0 {
		return 0, 0, 0, fmt.Errorf("The stream selector '%s' has a "+
			"non-positive step.", tok)
	}
	if start < 0 { start = 0 }
	if stop > length { stop = length }
	return start, stop, step, nil
}

// parseThresholds parses threshold energies into MeV. Bare values are
// in the display energy unit; a trailing non-numeric token overrides
// the unit. Empty tokens return the defaults, also in the display
// unit.
func parseThresholds(
	tokens []string, def []float64, cat units.Catalog,
) ([]float64, error) {
	unit := cat.Energy
	vals := def
	if len(tokens) > 0 {
		strs := tokens
		last := tokens[len(tokens)-1]
		if _, err := strconv.ParseFloat(last, 64); err != nil {
			unit, strs = last, tokens[:len(tokens)-1]
		}
		vals = make([]float64, len(strs))
		for i, tok := range strs {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("You passed me the energy '%s', "+
					"which I can't parse.", tok)
			}
			vals[i] = v
		}
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("I need at least one threshold energy.")
	}

	scale, err := units.EnergyScale(unit)
	if err != nil { return nil, err }
	out := make([]float64, len(vals))
	for i, v := range vals { out[i] = v / scale }
	return out, nil
}

// parseEnergy parses a single energy selection into MeV.
func parseEnergy(
	tokens []string, def float64, cat units.Catalog,
) (float64, error) {
	es, err := parseThresholds(tokens, []float64{def}, cat)
	if err != nil { return 0, err }
	if len(es) != 1 {
		return 0, fmt.Errorf("This mode takes a single energy, but you "+
			"gave me %d.", len(es))
	}
	return es[0], nil
}

// resolveEnergyIndices resolves energy selector tokens, defaulting to
// the whole grid.
func resolveEnergyIndices(obs *eprem.Observer, tokens []string) ([]int, error) {
	if len(tokens) == 0 { return allEnergyIndices(obs), nil }
	arg, err := indexer.Resolve(tokens)
	if err != nil { return nil, err }
	return obs.EnergyIndices(arg)
}

// checkLim validates an axis limit variable: unset or exactly two
// values.
func checkLim(name string, lim []float64) error {
	if len(lim) != 0 && len(lim) != 2 {
		return fmt.Errorf("The '%s' variable needs exactly two values, "+
			"but you gave me %d.", name, len(lim))
	}
	return nil
}

// applyLims overrides the axis ranges a plot computed from its data.
func applyLims(p *plot.Plot, xlim, ylim []float64) {
	if len(xlim) == 2 { p.X.Min, p.X.Max = xlim[0], xlim[1] }
	if len(ylim) == 2 { p.Y.Min, p.Y.Max = ylim[0], ylim[1] }
}

// scaledTimes converts an observer's output times from days into the
// display unit.
func scaledTimes(obs *eprem.Observer, cat units.Catalog) ([]float64, error) {
	scale, err := units.TimeScale(cat.Time)
	if err != nil { return nil, err }
	times := obs.Times()
	out := make([]float64, len(times))
	for i, t := range times { out[i] = t * scale }
	return out, nil
}

// gridColumn extracts a 2-D quantity's history at a fixed shell.
func gridColumn(g *eprem.Array2, shell int) []float64 {
	out := make([]float64, g.N0)
	for t := range out { out[t] = g.At(t, shell) }
	return out
}

// fluxColumn extracts the flux history at a fixed shell, species, and
// energy.
func fluxColumn(f *eprem.Array4, shell, species, energy int) []float64 {
	out := make([]float64, f.N0)
	for t := range out { out[t] = f.At(t, shell, species, energy) }
	return out
}

// allEnergyIndices selects every energy bin, the default for flux
// figures.
func allEnergyIndices(obs *eprem.Observer) []int {
	out := make([]int, len(obs.Energies()))
	for i := range out { out[i] = i }
	return out
}

// cameraFromEye converts an eye position in data-cube units to echarts
// view angles. echarts' default distance of 200 is calibrated to the
// conventional eye position (1.25, 1.25, 1.25).
func cameraFromEye(x, y, z float64) render.SceneCamera {
	r, theta, phi := coords.CartesianToSpherical(x, y, z)
	const deg = 180 / math.Pi
	return render.SceneCamera{
		Alpha:    90 - theta*deg,
		Beta:     phi * deg,
		Distance: 200 * r / math.Sqrt(3*1.25*1.25),
	}
}
