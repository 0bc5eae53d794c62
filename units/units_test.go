package units

import (
	"math"
	"testing"
)

func almostEq(x, y float64) bool {
	return math.Abs(x-y) <= 1e-10*math.Abs(y)
}

func TestTimeScale(t *testing.T) {
	table := []struct {
		unit  string
		scale float64
		valid bool
	}{
		{"day", 1, true},
		{"days", 1, true},
		{"hour", 24, true},
		{" Hour ", 24, true},
		{"min", 1440, true},
		{"s", 86400, true},
		{"fortnight", 0, false},
	}

	for i := range table {
		scale, err := TimeScale(table[i].unit)
		if table[i].valid && err != nil {
			t.Errorf("%d) Expected TimeScale(%q) to succeed, but got the "+
				"error '%s'", i+1, table[i].unit, err.Error())
		} else if !table[i].valid && err == nil {
			t.Errorf("%d) Expected TimeScale(%q) to fail, but got %g",
				i+1, table[i].unit, scale)
		} else if table[i].valid && !almostEq(scale, table[i].scale) {
			t.Errorf("%d) Expected TimeScale(%q) = %g, but got %g",
				i+1, table[i].unit, table[i].scale, scale)
		}
	}
}

func TestRadiusScale(t *testing.T) {
	table := []struct {
		unit  string
		scale float64
		valid bool
	}{
		{"au", 1 / AU, true},
		{"Rs", 1 / RSun, true},
		{"cm", 1, true},
		{"km", 1e-5, true},
		{"parsec", 0, false},
	}

	for i := range table {
		scale, err := RadiusScale(table[i].unit)
		if table[i].valid && err != nil {
			t.Errorf("%d) Expected RadiusScale(%q) to succeed, but got "+
				"the error '%s'", i+1, table[i].unit, err.Error())
		} else if !table[i].valid && err == nil {
			t.Errorf("%d) Expected RadiusScale(%q) to fail, but got %g",
				i+1, table[i].unit, scale)
		} else if table[i].valid && !almostEq(scale, table[i].scale) {
			t.Errorf("%d) Expected RadiusScale(%q) = %g, but got %g",
				i+1, table[i].unit, table[i].scale, scale)
		}
	}
}

func TestEnergyScale(t *testing.T) {
	table := []struct {
		unit  string
		scale float64
		valid bool
	}{
		{"MeV", 1, true},
		{"GeV", 1e-3, true},
		{"keV", 1e3, true},
		{"erg", ErgPerMeV, true},
		{"joule", 0, false},
	}

	for i := range table {
		scale, err := EnergyScale(table[i].unit)
		if table[i].valid && err != nil {
			t.Errorf("%d) Expected EnergyScale(%q) to succeed, but got "+
				"the error '%s'", i+1, table[i].unit, err.Error())
		} else if !table[i].valid && err == nil {
			t.Errorf("%d) Expected EnergyScale(%q) to fail, but got %g",
				i+1, table[i].unit, scale)
		} else if table[i].valid && !almostEq(scale, table[i].scale) {
			t.Errorf("%d) Expected EnergyScale(%q) = %g, but got %g",
				i+1, table[i].unit, table[i].scale, scale)
		}
	}
}

func TestRSPerAU(t *testing.T) {
	if math.Abs(RSPerAU-214.94) > 0.1 {
		t.Errorf("Expected roughly 214.9 solar radii per au, got %g", RSPerAU)
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if c.Time != "hour" {
		t.Errorf("Expected default time unit 'hour', got '%s'", c.Time)
	}
	if c.Energy != "MeV" {
		t.Errorf("Expected default energy unit 'MeV', got '%s'", c.Energy)
	}
	if c.Flux != "1 / (cm^2 s sr MeV/nuc)" {
		t.Errorf("Unexpected default flux unit '%s'", c.Flux)
	}
}
