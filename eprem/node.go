package eprem

import (
	"fmt"
	"strings"
)

// CanonicalQuantity maps the spellings users write (ur, density, |b|)
// to the variable names EPREM writes (Vr, Rho, bmag). ok is false for
// names with no alias.
func CanonicalQuantity(name string) (string, bool) {
	key, ok := gridAliases[strings.ToLower(name)]
	return key, ok
}

// QuantityUnit names the unit a 2-D quantity is recorded in. These are
// the file's own units, not display units. Unknown names get "".
func QuantityUnit(name string) string {
	if key, ok := CanonicalQuantity(name); ok {
		return quantityUnit(key)
	}
	return quantityUnit(name)
}

// quantityUnit names the unit a node history of the given quantity is
// recorded in. These are the file's own units, not display units.
func quantityUnit(key string) string {
	switch key {
	case "R":
		return "cm"
	case "T", "P":
		return "rad"
	case "Br", "Bt", "Bp", "bmag":
		return "G"
	case "Vr", "Vt", "Vp":
		return "cm / s"
	case "Rho":
		return "cm^-3"
	}
	return ""
}

// nodeWalk pairs each time step t with the shell s0+t. EPREM streams grow
// by one node per step, so the node that occupies the given shell at the
// given time step was at earlier shells on earlier steps. Steps whose shell
// falls outside the grid are skipped.
func nodeWalk(nTimes, nShells, timeStep, shell int) (ts, ss []int) {
	s0 := shell - timeStep
	for t := 0; t < nTimes; t++ {
		s := s0 + t
		if s < 0 || s >= nShells { continue }
		ts = append(ts, t)
		ss = append(ss, s)
	}
	return ts, ss
}

// NodeHistory collects the history of a 2-D quantity along the node that
// occupies the given shell at the given time step. Times are recorded in
// days.
func (o *Observer) NodeHistory(name string, timeStep, shell int) (*History, error) {
	if timeStep < 0 || timeStep >= len(o.times) {
		return nil, fmt.Errorf(
			"The time step %d is outside the range [0, %d) of %s.",
			timeStep, len(o.times), o.path,
		)
	}
	grid, err := o.Grid(name)
	if err != nil { return nil, err }
	if shell < 0 || shell >= grid.N1 {
		return nil, fmt.Errorf(
			"The shell %d is outside the range [0, %d) of %s.",
			shell, grid.N1, o.path,
		)
	}

	key, ok := gridAliases[strings.ToLower(name)]
	if !ok { key = name }

	h := &History{
		Meta: map[string]string{
			"data name": strings.ToLower(name),
			"time unit": "days",
			"data unit": quantityUnit(key),
		},
	}
	ts, ss := nodeWalk(grid.N0, grid.N1, timeStep, shell)
	for i := range ts {
		h.Times = append(h.Times, o.times[ts[i]])
		h.Values = append(h.Values, grid.At(ts[i], ss[i]))
	}
	return h, nil
}

// NodeFluxHistory collects the history of the differential flux at one
// energy along the node that occupies the given shell at the given time
// step. The species may be a symbol or an index and the energy is in MeV.
func (o *Observer) NodeFluxHistory(
	timeStep, shell int, species string, energyMeV float64,
) (*History, error) {
	if timeStep < 0 || timeStep >= len(o.times) {
		return nil, fmt.Errorf(
			"The time step %d is outside the range [0, %d) of %s.",
			timeStep, len(o.times), o.path,
		)
	}

	sIdx, sp, err := o.SpeciesIndex(species)
	if err != nil { return nil, err }
	flux, err := o.Flux()
	if err != nil { return nil, err }
	if shell < 0 || shell >= flux.N1 {
		return nil, fmt.Errorf(
			"The shell %d is outside the range [0, %d) of %s.",
			shell, flux.N1, o.path,
		)
	}
	eIdx := o.EnergyIndex(energyMeV)

	h := &History{
		Meta: map[string]string{
			"data name": "flux",
			"time unit": "days",
			"data unit": "1 / (cm^2 s sr MeV/nuc)",
			"species":   sp.Symbol,
			"energy":    fmt.Sprintf("%g MeV", o.egrid[eIdx]),
		},
	}
	ts, ss := nodeWalk(flux.N0, flux.N1, timeStep, shell)
	for i := range ts {
		h.Times = append(h.Times, o.times[ts[i]])
		h.Values = append(h.Values, flux.At(ts[i], ss[i], sIdx, eIdx))
	}
	return h, nil
}
