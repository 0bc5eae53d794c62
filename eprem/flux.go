package eprem

import (
	"fmt"

	"github.com/myoung-space-science/emmrem-analysis/math/interpolate"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

// Fluence returns the flux integrated over the whole run at the given shell
// and species, one value per energy bin, in 1 / (cm^2 sr MeV/nuc). The
// integral is a trapezoid over time in seconds.
func (o *Observer) Fluence(flux *Array4, shell, species int) []float64 {
	out := make([]float64, flux.N3)
	for t := 1; t < flux.N0; t++ {
		dt := (o.times[t] - o.times[t-1]) * units.SecondsPerDay
		prev := flux.Slice(t-1, shell, species)
		cur := flux.Slice(t, shell, species)
		for e := range out {
			out[e] += 0.5 * (prev[e] + cur[e]) * dt
		}
	}
	return out
}

// IntegralFlux returns the flux integrated over energies at and above each
// threshold, in 1 / (cm^2 s sr). The result is indexed as
// [threshold][time step]. Thresholds are in MeV/nuc. The energy integral
// is a trapezoid with a linearly interpolated point at the threshold
// crossing; thresholds below the grid integrate the whole grid.
func (o *Observer) IntegralFlux(
	flux *Array4, shell, species int, thresholds []float64,
) ([][]float64, error) {
	egrid := o.egrid
	if len(egrid) < 2 {
		return nil, fmt.Errorf(
			"The file %s has only %d energies, which isn't enough to "+
				"integrate over.", o.path, len(egrid),
		)
	}

	for _, e0 := range thresholds {
		if e0 > egrid[len(egrid)-1] {
			return nil, fmt.Errorf(
				"The threshold %g MeV is above the top of the energy "+
					"grid, %g MeV.", e0, egrid[len(egrid)-1],
			)
		}
	}

	out := make([][]float64, len(thresholds))
	for i := range out { out[i] = make([]float64, flux.N0) }

	for t := 0; t < flux.N0; t++ {
		ys := flux.Slice(t, shell, species)
		var lin *interpolate.Linear
		for i, e0 := range thresholds {
			if e0 <= egrid[0] {
				out[i][t] = trapezoid(egrid, ys, 0)
				continue
			}
			k := 0
			for egrid[k] < e0 { k++ }
			sum := trapezoid(egrid, ys, k)
			if egrid[k] > e0 {
				if lin == nil { lin = interpolate.NewLinear(egrid, ys) }
				y0 := lin.Eval(e0)
				sum += 0.5 * (y0 + ys[k]) * (egrid[k] - e0)
			}
			out[i][t] = sum
		}
	}
	return out, nil
}

// trapezoid integrates ys over xs from index k to the end.
func trapezoid(xs, ys []float64, k int) float64 {
	sum := 0.0
	for i := k + 1; i < len(xs); i++ {
		sum += 0.5 * (ys[i-1] + ys[i]) * (xs[i] - xs[i-1])
	}
	return sum
}
