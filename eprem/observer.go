package eprem

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ctessum/cdf"

	"github.com/myoung-space-science/emmrem-analysis/units"
)

// Users name variables a few different ways on the command line. Everything
// funnels through this table to the names EPREM writes.
var gridAliases = map[string]string{
	"r": "R", "radius": "R",
	"t": "T", "theta": "T",
	"p": "P", "phi": "P",
	"br": "Br",
	"bt": "Bt", "btheta": "Bt",
	"bp": "Bp", "bphi": "Bp",
	"vr": "Vr", "ur": "Vr",
	"vt": "Vt", "vtheta": "Vt", "ut": "Vt", "utheta": "Vt",
	"vp": "Vp", "vphi": "Vp", "up": "Vp", "uphi": "Vp",
	"rho": "Rho", "density": "Rho",
	"bmag": "bmag", "|b|": "bmag",
}

// An Observer wraps one EPREM output file. EPREM writes one file per
// stream or point observer with 2-D (time, shell) MHD quantities and a 4-D
// (time, shell, species, energy) flux or distribution. All values keep the
// cgs units of the file; callers convert for display.
type Observer struct {
	path   string
	osFile *os.File
	file   *cdf.File

	names map[string]string
	cache map[string]*Array2

	times  []float64
	egrid  []float64
	vgrid  []float64
	mass   []float64
	charge []float64

	nShells  int
	nSpecies int

	fluxVar string
	distVar string
}

// OpenObserver opens an EPREM observer file.
func OpenObserver(path string) (*Observer, error) {
	ff, err := os.Open(path)
	if err != nil { return nil, err }
	f, err := cdf.Open(ff)
	if err != nil {
		ff.Close()
		return nil, fmt.Errorf(
			"I couldn't read %s as a NetCDF file: %s", path, err.Error(),
		)
	}

	o := &Observer{
		path: path, osFile: ff, file: f,
		names: make(map[string]string),
		cache: make(map[string]*Array2),
	}
	if err := o.index(); err != nil {
		ff.Close()
		return nil, err
	}
	return o, nil
}

// Close releases the underlying file.
func (o *Observer) Close() error { return o.osFile.Close() }

// Path returns the path the observer was opened from.
func (o *Observer) Path() string { return o.path }

func (o *Observer) index() error {
	for _, v := range o.file.Header.Variables() {
		o.names[strings.ToLower(v)] = v
	}

	var err error
	if o.times, _, err = o.read1D("time"); err != nil {
		return fmt.Errorf(
			"The file %s doesn't have a time variable: %s",
			o.path, err.Error(),
		)
	}

	if vals, dims, err := o.readVar("egrid"); err == nil {
		// Some EPREM versions write egrid per species. The grid is the
		// same for every species, so the first row is enough.
		if len(dims) == 2 && dims[0] > 0 {
			o.egrid = vals[:dims[1]]
		} else {
			o.egrid = vals
		}
	}
	if vals, _, err := o.read1D("vgrid"); err == nil { o.vgrid = vals }
	if vals, _, err := o.read1D("mass"); err == nil { o.mass = vals }
	if vals, _, err := o.read1D("charge"); err == nil { o.charge = vals }

	if _, ok := o.names["flux"]; ok { o.fluxVar = o.names["flux"] }
	if _, ok := o.names["dist"]; ok { o.distVar = o.names["dist"] }

	if rv, ok := o.names["r"]; ok {
		dims := o.lengths(rv)
		if len(dims) == 2 { o.nShells = dims[1] }
	}

	o.nSpecies = len(o.mass)
	if o.nSpecies == 0 {
		for _, v := range []string{o.fluxVar, o.distVar} {
			if v == "" { continue }
			dims := o.lengths(v)
			if len(dims) == 4 { o.nSpecies = dims[2] }
		}
	}
	if o.nSpecies == 0 { o.nSpecies = 1 }

	return nil
}

// Times returns the output times in days.
func (o *Observer) Times() []float64 { return o.times }

// Energies returns the energy grid in MeV/nuc.
func (o *Observer) Energies() []float64 { return o.egrid }

// NShells returns the number of shells in the observer's grid.
func (o *Observer) NShells() int { return o.nShells }

// NSpecies returns the number of particle species.
func (o *Observer) NSpecies() int { return o.nSpecies }

// Grid returns a 2-D (time, shell) quantity in the file's units. Names go
// through the alias table, so "radius" and "R" are the same variable. The
// derived name "bmag" gives the magnitude of the magnetic field.
func (o *Observer) Grid(name string) (*Array2, error) {
	key, ok := gridAliases[strings.ToLower(name)]
	if !ok { key = name }

	if cached, ok := o.cache[key]; ok { return cached, nil }

	if key == "bmag" {
		br, err := o.Grid("Br")
		if err != nil { return nil, err }
		bt, err := o.Grid("Bt")
		if err != nil { return nil, err }
		bp, err := o.Grid("Bp")
		if err != nil { return nil, err }

		vals := make([]float64, len(br.Vals))
		for i := range vals {
			vals[i] = math.Sqrt(br.Vals[i]*br.Vals[i] +
				bt.Vals[i]*bt.Vals[i] + bp.Vals[i]*bp.Vals[i])
		}
		a := NewArray2(br.N0, br.N1, vals)
		o.cache[key] = a
		return a, nil
	}

	vals, dims, err := o.readVar(key)
	if err != nil { return nil, err }
	if len(dims) != 2 {
		return nil, fmt.Errorf(
			"The variable '%s' in %s has %d dimensions, not 2.",
			key, o.path, len(dims),
		)
	}

	a := NewArray2(dims[0], dims[1], vals)
	o.cache[key] = a
	return a, nil
}

// Flux returns the differential flux in 1 / (cm^2 s sr MeV/nuc), indexed
// as (time, shell, species, energy). EPREM writes flux per unit energy in
// erg. Files that only carry the phase space distribution get
// j(E) = p^2 f with the nonrelativistic momentum.
func (o *Observer) Flux() (*Array4, error) {
	if o.fluxVar != "" {
		vals, dims, err := o.readVar(o.fluxVar)
		if err != nil { return nil, err }
		if len(dims) != 4 {
			return nil, fmt.Errorf(
				"The variable '%s' in %s has %d dimensions, not 4.",
				o.fluxVar, o.path, len(dims),
			)
		}
		for i := range vals { vals[i] *= units.ErgPerMeV }
		return NewArray4(dims[0], dims[1], dims[2], dims[3], vals), nil
	}

	if o.distVar == "" {
		return nil, fmt.Errorf(
			"The file %s has neither a flux nor a dist variable.", o.path,
		)
	}

	vals, dims, err := o.readVar(o.distVar)
	if err != nil { return nil, err }
	if len(dims) != 4 {
		return nil, fmt.Errorf(
			"The variable '%s' in %s has %d dimensions, not 4.",
			o.distVar, o.path, len(dims),
		)
	}
	if len(o.egrid) != dims[3] {
		return nil, fmt.Errorf(
			"The file %s has a dist variable with %d energies, but an "+
				"energy grid with %d.", o.path, dims[3], len(o.egrid),
		)
	}

	a := NewArray4(dims[0], dims[1], dims[2], dims[3], vals)
	for s := 0; s < a.N2; s++ {
		m := units.GramsPerAMU
		if s < len(o.mass) { m = o.mass[s] * units.GramsPerAMU }
		for e := 0; e < a.N3; e++ {
			p2 := 2 * m * o.egrid[e] * units.ErgPerMeV
			scale := p2 * units.ErgPerMeV
			for t := 0; t < a.N0; t++ {
				for sh := 0; sh < a.N1; sh++ {
					i := ((t*a.N1+sh)*a.N2+s)*a.N3 + e
					a.Vals[i] *= scale
				}
			}
		}
	}
	return a, nil
}

func (o *Observer) lengths(v string) []int {
	return o.file.Header.Lengths(v)
}

func (o *Observer) read1D(name string) ([]float64, []int, error) {
	vals, dims, err := o.readVar(name)
	if err != nil { return nil, nil, err }
	if len(dims) != 1 {
		return nil, nil, fmt.Errorf(
			"The variable '%s' in %s has %d dimensions, not 1.",
			name, o.path, len(dims),
		)
	}
	return vals, dims, nil
}

func (o *Observer) readVar(name string) ([]float64, []int, error) {
	v, ok := o.names[strings.ToLower(name)]
	if !ok {
		return nil, nil, fmt.Errorf(
			"The file %s has no variable named '%s'.", o.path, name,
		)
	}

	dims := append([]int{}, o.lengths(v)...)
	r := o.file.Reader(v, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, nil, fmt.Errorf(
			"I couldn't read the variable '%s' from %s: %s",
			v, o.path, err.Error(),
		)
	}

	var vals []float64
	switch b := buf.(type) {
	case []float64:
		vals = b
	case []float32:
		vals = make([]float64, len(b))
		for i := range b { vals[i] = float64(b[i]) }
	case []int32:
		vals = make([]float64, len(b))
		for i := range b { vals[i] = float64(b[i]) }
	case []int16:
		vals = make([]float64, len(b))
		for i := range b { vals[i] = float64(b[i]) }
	default:
		return nil, nil, fmt.Errorf(
			"The variable '%s' in %s has an unsupported type.", v, o.path,
		)
	}

	// The time dimension is unlimited in EPREM output, which some readers
	// report as length zero.
	if len(dims) > 0 && dims[0] == 0 {
		rest := 1
		for _, d := range dims[1:] { rest *= d }
		if rest > 0 { dims[0] = len(vals) / rest }
	}

	return vals, dims, nil
}
