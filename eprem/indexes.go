package eprem

import (
	"fmt"
	"math"

	"github.com/myoung-space-science/emmrem-analysis/indexer"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

// TimeIndices resolves a time selector to indices into the observer's time
// axis. Measured times are converted to days and matched to the nearest
// output step.
func (o *Observer) TimeIndices(arg indexer.Argument) ([]int, error) {
	switch a := arg.(type) {
	case indexer.Indices:
		out := make([]int, len(a))
		for i, idx := range a {
			if idx < 0 || idx >= len(o.times) {
				return nil, fmt.Errorf(
					"The time step %d is outside the range [0, %d) of %s.",
					idx, len(o.times), o.path,
				)
			}
			out[i] = idx
		}
		return out, nil
	case indexer.Measurement:
		scale, err := units.TimeScale(a.Unit)
		if err != nil { return nil, err }
		out := make([]int, len(a.Values))
		for i, v := range a.Values {
			out[i] = nearestIndex(o.times, v/scale)
		}
		return out, nil
	}
	return nil, fmt.Errorf("The time selector was left unresolved.")
}

// ShellIndices resolves a location selector to shell indices. Measured
// locations are converted to cm and matched to the nearest shell radius at
// the given time step.
func (o *Observer) ShellIndices(
	arg indexer.Argument, timeStep int,
) ([]int, error) {
	switch a := arg.(type) {
	case indexer.Indices:
		out := make([]int, len(a))
		for i, idx := range a {
			if idx < 0 || idx >= o.nShells {
				return nil, fmt.Errorf(
					"The shell %d is outside the range [0, %d) of %s.",
					idx, o.nShells, o.path,
				)
			}
			out[i] = idx
		}
		return out, nil
	case indexer.Measurement:
		scale, err := units.RadiusScale(a.Unit)
		if err != nil { return nil, err }
		radius, err := o.Grid("R")
		if err != nil { return nil, err }
		if timeStep < 0 || timeStep >= radius.N0 {
			return nil, fmt.Errorf(
				"The time step %d is outside the range [0, %d) of %s.",
				timeStep, radius.N0, o.path,
			)
		}
		row := radius.Row(timeStep)
		out := make([]int, len(a.Values))
		for i, v := range a.Values {
			out[i] = nearestIndex(row, v/scale)
		}
		return out, nil
	}
	return nil, fmt.Errorf("The location selector was left unresolved.")
}

// EnergyIndices resolves an energy selector to indices into the energy
// grid. Measured energies are converted to MeV and matched to the nearest
// grid value.
func (o *Observer) EnergyIndices(arg indexer.Argument) ([]int, error) {
	switch a := arg.(type) {
	case indexer.Indices:
		out := make([]int, len(a))
		for i, idx := range a {
			if idx < 0 || idx >= len(o.egrid) {
				return nil, fmt.Errorf(
					"The energy index %d is outside the range [0, %d) "+
						"of %s.", idx, len(o.egrid), o.path,
				)
			}
			out[i] = idx
		}
		return out, nil
	case indexer.Measurement:
		scale, err := units.EnergyScale(a.Unit)
		if err != nil { return nil, err }
		out := make([]int, len(a.Values))
		for i, v := range a.Values {
			out[i] = nearestIndex(o.egrid, v/scale)
		}
		return out, nil
	}
	return nil, fmt.Errorf("The energy selector was left unresolved.")
}

// EnergyIndex resolves a single energy in MeV to the nearest grid index.
func (o *Observer) EnergyIndex(energyMeV float64) int {
	return nearestIndex(o.egrid, energyMeV)
}

func nearestIndex(xs []float64, x float64) int {
	best, bestD := 0, math.Inf(1)
	for i := range xs {
		if d := math.Abs(xs[i] - x); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
