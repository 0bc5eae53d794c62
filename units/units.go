/*package units holds the physical constants the analysis routines share and
the conversions between the units EPREM writes and the units figures display.

EPREM output is in cgs: times in days, radii in cm, magnetic fields in Gauss,
velocities in cm/s, number densities in cm^-3, energies in MeV/nuc, and
differential fluxes in 1 / (cm^2 s sr erg).*/
package units

import (
	"fmt"
	"strings"
)

const (
	// ErgPerMeV converts energies in MeV to erg.
	ErgPerMeV = 1.6022e-6
	// GramsPerAMU converts masses in atomic mass units to grams.
	GramsPerAMU = 1.6605e-24
	// RSun is the solar radius in cm.
	RSun = 6.96e10
	// AU is the astronomical unit in cm.
	AU = 1.495978707e13
	// RSPerAU is the number of solar radii in an astronomical unit.
	RSPerAU = AU / RSun
	// NTPerGauss converts magnetic field strengths in Gauss to nT.
	NTPerGauss = 1e5
	// SecondsPerDay converts times in days to seconds.
	SecondsPerDay = 86400.0
)

// A Catalog names the units in which derived quantities are displayed.
// Axis labels and file headers read their unit strings from here rather
// than from package-level state, so two figures with different display
// units can coexist.
type Catalog struct {
	Time    string
	Energy  string
	Radius  string
	Flux    string
	Fluence string
	IntFlux string
}

// DefaultCatalog returns the display units the command line tools use when
// the user doesn't override them.
func DefaultCatalog() Catalog {
	return Catalog{
		Time:    "hour",
		Energy:  "MeV",
		Radius:  "au",
		Flux:    "1 / (cm^2 s sr MeV/nuc)",
		Fluence: "1 / (cm^2 sr MeV/nuc)",
		IntFlux: "1 / (cm^2 s sr)",
	}
}

// TimeScale returns the factor that converts times in days to the given
// unit.
func TimeScale(unit string) (float64, error) {
	switch normalize(unit) {
	case "day", "days", "d":
		return 1, nil
	case "hour", "hours", "hr", "h":
		return 24, nil
	case "minute", "minutes", "min":
		return 1440, nil
	case "second", "seconds", "sec", "s":
		return SecondsPerDay, nil
	}
	return 0, fmt.Errorf("I don't recognize the time unit '%s'.", unit)
}

// RadiusScale returns the factor that converts radii in cm to the given
// unit.
func RadiusScale(unit string) (float64, error) {
	switch normalize(unit) {
	case "au":
		return 1 / AU, nil
	case "rs", "rsun", "r_sun":
		return 1 / RSun, nil
	case "cm":
		return 1, nil
	case "m":
		return 1e-2, nil
	case "km":
		return 1e-5, nil
	}
	return 0, fmt.Errorf("I don't recognize the radius unit '%s'.", unit)
}

// EnergyScale returns the factor that converts energies in MeV to the given
// unit.
func EnergyScale(unit string) (float64, error) {
	switch normalize(unit) {
	case "mev":
		return 1, nil
	case "gev":
		return 1e-3, nil
	case "kev":
		return 1e3, nil
	case "ev":
		return 1e6, nil
	case "erg":
		return ErgPerMeV, nil
	}
	return 0, fmt.Errorf("I don't recognize the energy unit '%s'.", unit)
}

func normalize(unit string) string {
	return strings.ToLower(strings.Trim(unit, " "))
}
