package eprem

import (
	"io"
	"math"
	"os"
	"testing"

	"github.com/ctessum/cdf"

	"github.com/myoung-space-science/emmrem-analysis/indexer"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

func mustResolve(t *testing.T, args []string) indexer.Argument {
	t.Helper()
	arg, err := indexer.Resolve(args)
	if err != nil {
		t.Fatalf("Could not resolve %v: %s", args, err.Error())
	}
	return arg
}

// writeTestObserver writes a miniature EPREM observer file with 4 time
// steps, 3 shells, 1 species, and 5 energies. The values follow simple
// closed forms so tests can predict every lookup.
func writeTestObserver(t *testing.T, path string) {
	t.Helper()

	const (
		nTime, nShell, nSpecies, nEnergy = 4, 3, 1, 5
	)
	dims := []string{"time", "shell", "species", "energy"}
	lens := []int{nTime, nShell, nSpecies, nEnergy}

	h := cdf.NewHeader(dims, lens)
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddVariable("egrid", []string{"energy"}, []float64{0})
	h.AddVariable("mass", []string{"species"}, []float64{0})
	h.AddVariable("charge", []string{"species"}, []float64{0})
	for _, name := range []string{
		"R", "T", "P", "Br", "Bt", "Bp", "Vr", "Vt", "Vp", "Rho",
	} {
		h.AddVariable(name, []string{"time", "shell"}, []float64{0})
	}
	h.AddVariable("flux", dims, []float64{0})
	h.Define()

	ff, err := os.Create(path)
	if err != nil { t.Fatalf("Could not create %s: %s", path, err.Error()) }
	f, err := cdf.Create(ff, h)
	if err != nil { t.Fatalf("Could not define %s: %s", path, err.Error()) }

	write := func(name string, vals []float64) {
		w := f.Writer(name, nil, nil)
		// A full write of a fixed-size variable returns io.EOF.
		if _, err := w.Write(vals); err != nil && err != io.EOF {
			t.Fatalf("Could not write %s: %s", name, err.Error())
		}
	}

	write("time", []float64{0, 0.5, 1, 1.5})
	write("egrid", []float64{1, 5, 10, 50, 100})
	write("mass", []float64{1.0073})
	write("charge", []float64{1})

	grid := func(fn func(t, s int) float64) []float64 {
		vals := make([]float64, nTime*nShell)
		for ti := 0; ti < nTime; ti++ {
			for s := 0; s < nShell; s++ {
				vals[ti*nShell+s] = fn(ti, s)
			}
		}
		return vals
	}

	write("R", grid(func(ti, s int) float64 {
		return (float64(s+1) + 0.1*float64(ti)) * units.AU
	}))
	write("T", grid(func(ti, s int) float64 { return 1.5 }))
	write("P", grid(func(ti, s int) float64 { return 0.5 }))
	write("Br", grid(func(ti, s int) float64 {
		return 1e-4 * float64(s+1)
	}))
	write("Bt", grid(func(ti, s int) float64 { return 0 }))
	write("Bp", grid(func(ti, s int) float64 {
		return 2e-4 * float64(s+1)
	}))
	write("Vr", grid(func(ti, s int) float64 { return 4e7 }))
	write("Vt", grid(func(ti, s int) float64 { return 0 }))
	write("Vp", grid(func(ti, s int) float64 { return 0 }))
	write("Rho", grid(func(ti, s int) float64 {
		return float64(10*(ti+1) + s)
	}))

	flux := make([]float64, nTime*nShell*nSpecies*nEnergy)
	for ti := 0; ti < nTime; ti++ {
		for s := 0; s < nShell; s++ {
			for e := 0; e < nEnergy; e++ {
				i := ((ti*nShell+s)*nSpecies+0)*nEnergy + e
				flux[i] = float64(ti+1) * 2 / units.ErgPerMeV
			}
		}
	}
	write("flux", flux)

	if err := ff.Close(); err != nil {
		t.Fatalf("Could not close %s: %s", path, err.Error())
	}
}

func openTestObserver(t *testing.T) *Observer {
	t.Helper()
	path := t.TempDir() + "/obs000000.nc"
	writeTestObserver(t, path)
	o, err := OpenObserver(path)
	if err != nil {
		t.Fatalf("Could not open %s: %s", path, err.Error())
	}
	t.Cleanup(func() { o.Close() })
	return o
}

func TestOpenObserver(t *testing.T) {
	o := openTestObserver(t)

	times := o.Times()
	exp := []float64{0, 0.5, 1, 1.5}
	if len(times) != len(exp) {
		t.Fatalf("Expected %d time steps, got %d", len(exp), len(times))
	}
	for i := range exp {
		if times[i] != exp[i] {
			t.Errorf("Expected times[%d] = %g, got %g", i, exp[i], times[i])
		}
	}

	if o.NShells() != 3 {
		t.Errorf("Expected 3 shells, got %d", o.NShells())
	}
	if o.NSpecies() != 1 {
		t.Errorf("Expected 1 species, got %d", o.NSpecies())
	}
	energies := o.Energies()
	if len(energies) != 5 || energies[0] != 1 || energies[4] != 100 {
		t.Errorf("Unexpected energy grid %v", energies)
	}
}

func TestGridAliases(t *testing.T) {
	o := openTestObserver(t)

	r1, err := o.Grid("R")
	if err != nil { t.Fatalf("Grid(R) failed: %s", err.Error()) }
	r2, err := o.Grid("radius")
	if err != nil { t.Fatalf("Grid(radius) failed: %s", err.Error()) }
	if &r1.Vals[0] != &r2.Vals[0] {
		t.Errorf("Expected 'R' and 'radius' to share a cached array.")
	}
	if got := r1.At(0, 1); math.Abs(got-2*units.AU) > 1e-3*units.AU {
		t.Errorf("Expected R[0,1] = 2 au in cm, got %g", got)
	}

	if _, err := o.Grid("omega"); err == nil {
		t.Errorf("Expected an error for an unknown variable.")
	}
}

func TestGridBMag(t *testing.T) {
	o := openTestObserver(t)

	bmag, err := o.Grid("bmag")
	if err != nil { t.Fatalf("Grid(bmag) failed: %s", err.Error()) }

	// Br = 1e-4 (s+1), Bp = 2e-4 (s+1), Bt = 0.
	for s := 0; s < 3; s++ {
		exp := math.Sqrt(5) * 1e-4 * float64(s+1)
		if got := bmag.At(2, s); math.Abs(got-exp) > 1e-12 {
			t.Errorf("Expected bmag[2,%d] = %g, got %g", s, exp, got)
		}
	}
}

func TestFlux(t *testing.T) {
	o := openTestObserver(t)

	flux, err := o.Flux()
	if err != nil { t.Fatalf("Flux failed: %s", err.Error()) }
	if flux.N0 != 4 || flux.N1 != 3 || flux.N2 != 1 || flux.N3 != 5 {
		t.Fatalf("Unexpected flux shape (%d, %d, %d, %d)",
			flux.N0, flux.N1, flux.N2, flux.N3)
	}

	// The file holds (t+1) * 2 / ErgPerMeV, so converted values are
	// 2 (t+1) per MeV.
	for ti := 0; ti < 4; ti++ {
		exp := 2 * float64(ti+1)
		if got := flux.At(ti, 1, 0, 2); math.Abs(got-exp) > 1e-9 {
			t.Errorf("Expected flux[%d,1,0,2] = %g, got %g", ti, exp, got)
		}
	}
}

func TestTimeIndices(t *testing.T) {
	o := openTestObserver(t)

	idx, err := o.TimeIndices(mustResolve(t, []string{"1", "3"}))
	if err != nil { t.Fatalf("TimeIndices failed: %s", err.Error()) }
	if len(idx) != 2 || idx[0] != 1 || idx[1] != 3 {
		t.Errorf("Expected [1 3], got %v", idx)
	}

	idx, err = o.TimeIndices(mustResolve(t, []string{"12", "36", "hour"}))
	if err != nil { t.Fatalf("TimeIndices failed: %s", err.Error()) }
	if len(idx) != 2 || idx[0] != 1 || idx[1] != 3 {
		t.Errorf("Expected [1 3] from measured times, got %v", idx)
	}

	if _, err := o.TimeIndices(mustResolve(t, []string{"7"})); err == nil {
		t.Errorf("Expected an error for an out of range time step.")
	}
}

func TestShellIndices(t *testing.T) {
	o := openTestObserver(t)

	idx, err := o.ShellIndices(mustResolve(t, []string{"2"}), 0)
	if err != nil { t.Fatalf("ShellIndices failed: %s", err.Error()) }
	if len(idx) != 1 || idx[0] != 2 {
		t.Errorf("Expected [2], got %v", idx)
	}

	// At time step 0 the shells sit at 1, 2, and 3 au.
	idx, err = o.ShellIndices(mustResolve(t, []string{"2.05", "au"}), 0)
	if err != nil { t.Fatalf("ShellIndices failed: %s", err.Error()) }
	if len(idx) != 1 || idx[0] != 1 {
		t.Errorf("Expected [1], got %v", idx)
	}

	// At time step 2 they've moved to 1.2, 2.2, and 3.2 au.
	idx, err = o.ShellIndices(mustResolve(t, []string{"3.0", "au"}), 2)
	if err != nil { t.Fatalf("ShellIndices failed: %s", err.Error()) }
	if len(idx) != 1 || idx[0] != 2 {
		t.Errorf("Expected [2], got %v", idx)
	}

	if _, err := o.ShellIndices(mustResolve(t, []string{"5"}), 0); err == nil {
		t.Errorf("Expected an error for an out of range shell.")
	}
}

func TestEnergyIndices(t *testing.T) {
	o := openTestObserver(t)

	idx, err := o.EnergyIndices(mustResolve(t, []string{"49", "MeV"}))
	if err != nil { t.Fatalf("EnergyIndices failed: %s", err.Error()) }
	if len(idx) != 1 || idx[0] != 3 {
		t.Errorf("Expected [3], got %v", idx)
	}

	if got := o.EnergyIndex(9.9); got != 2 {
		t.Errorf("Expected EnergyIndex(9.9) = 2, got %d", got)
	}
}

func TestSpeciesIndex(t *testing.T) {
	o := openTestObserver(t)

	idx, sp, err := o.SpeciesIndex("H+")
	if err != nil { t.Fatalf("SpeciesIndex failed: %s", err.Error()) }
	if idx != 0 {
		t.Errorf("Expected index 0 for H+, got %d", idx)
	}
	if math.Abs(sp.MassGrams()-1.6726e-24) > 1e-27 {
		t.Errorf("Expected a proton mass in grams, got %g", sp.MassGrams())
	}

	if idx, _, err := o.SpeciesIndex("0"); err != nil || idx != 0 {
		t.Errorf("Expected index 0 for '0', got %d (%v)", idx, err)
	}
	if _, _, err := o.SpeciesIndex("3"); err == nil {
		t.Errorf("Expected an error for an out of range species index.")
	}
	if _, _, err := o.SpeciesIndex("Xx"); err == nil {
		t.Errorf("Expected an error for an unknown species symbol.")
	}
}
