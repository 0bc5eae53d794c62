package eprem

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/myoung-space-science/emmrem-analysis/units"
)

// A Species identifies one of the particle populations EPREM transports.
// Masses are in atomic mass units and charges in elementary charges.
type Species struct {
	Symbol string
	Mass   float64
	Charge float64
}

// MassGrams returns the species mass in grams.
func (s Species) MassGrams() float64 {
	return s.Mass * units.GramsPerAMU
}

var speciesCatalog = []Species{
	{"H+", 1.0073, 1},
	{"He+", 4.0026, 1},
	{"He++", 4.0026, 2},
	{"O+", 15.999, 1},
	{"Fe+", 55.845, 1},
	{"e-", 5.4858e-4, -1},
}

// LookupSpecies returns the catalog entry for a species symbol. Symbols are
// matched without regard to case.
func LookupSpecies(symbol string) (Species, error) {
	for _, s := range speciesCatalog {
		if strings.EqualFold(s.Symbol, symbol) {
			return s, nil
		}
	}
	return Species{}, fmt.Errorf(
		"I don't know the species '%s'.", symbol,
	)
}

// SpeciesIndex resolves a species given on the command line to an index into
// the observer's species axis. The argument may be an integer index or a
// symbol like "H+", which is matched against the mass and charge arrays in
// the file.
func (o *Observer) SpeciesIndex(symbolOrIndex string) (int, Species, error) {
	if i, err := strconv.Atoi(symbolOrIndex); err == nil {
		if i < 0 || i >= o.NSpecies() {
			return 0, Species{}, fmt.Errorf(
				"The species index %d is outside [0, %d).", i, o.NSpecies(),
			)
		}
		s := Species{Symbol: symbolOrIndex}
		if i < len(o.mass) { s.Mass = o.mass[i] }
		if i < len(o.charge) { s.Charge = o.charge[i] }
		return i, s, nil
	}

	s, err := LookupSpecies(symbolOrIndex)
	if err != nil { return 0, Species{}, err }

	for i := 0; i < o.NSpecies(); i++ {
		if i >= len(o.mass) || i >= len(o.charge) { break }
		if math.Abs(o.mass[i]-s.Mass) < 0.01*s.Mass &&
			math.Abs(o.charge[i]-s.Charge) < 0.5 {
			return i, s, nil
		}
	}

	// Files without species metadata are common enough that a lone
	// population is taken at face value.
	if o.NSpecies() == 1 { return 0, s, nil }

	return 0, Species{}, fmt.Errorf(
		"I couldn't find the species '%s' among the %d species in %s.",
		symbolOrIndex, o.NSpecies(), o.path,
	)
}
