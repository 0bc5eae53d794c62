package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/parse"
	"github.com/myoung-space-science/emmrem-analysis/render"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

// TableConfig contains the configuration fields for the 'table' mode of
// the epan tool.
type TableConfig struct {
	quantity   string
	streams    []int64
	location   []string
	species    string
	energies   []string
	thresholds []string
	format     string
	output     string
}

var _ Mode = &TableConfig{}

// ExampleConfig creates an example table.config file.
func (config *TableConfig) ExampleConfig() string {
	return `[table.config]
# All variables are optional.

# Quantity to tabulate: flux, fluence, intflux, or one of the MHD
# quantities (rho, br, bt, bp, ur, ut, up, bmag). Fluxes get one
# column per selected energy and integral fluxes one per threshold.
# Quantity = flux

# Stream observers to tabulate, by number. Each stream becomes one
# worksheet (xlsx) or one file (tsv). Leaving this unset tabulates
# every stream in the run.
# Streams = 0, 4, 12

# Location of the observation. A bare integer is a shell index. Values
# followed by a unit are radii, matched to shells at the end of the
# run.
# Location = 0
# Location = 1, au

# Ion species, by symbol or index. Only the flux quantities care.
# Species = H+

# Energies of the flux columns. Bare integers are energy bin indices.
# Values followed by a unit are energies, matched to the nearest bin.
# Leaving this unset tabulates every bin.
# Energies = 10, 50, 100, MeV

# Threshold energies of the intflux columns. Bare values are in the
# display energy unit; a trailing unit token overrides it.
# Thresholds = 10, 50, 100

# Format of the output: xlsx or tsv.
# Format = xlsx

# Name of the output file. The default is <quantity>-table.xlsx for a
# workbook and <stem>-table.tsv per stream for tsv. Setting this with
# tsv output requires a single stream.
# Output = flux.xlsx`
}

// ReadConfig reads in a table.config file into config.
func (config *TableConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("table.config")
	vars.String(&config.quantity, "Quantity", "flux")
	vars.Ints(&config.streams, "Streams", []int64{})
	vars.Strings(&config.location, "Location", []string{})
	vars.String(&config.species, "Species", "0")
	vars.Strings(&config.energies, "Energies", []string{})
	vars.Strings(&config.thresholds, "Thresholds", []string{})
	vars.String(&config.format, "Format", "xlsx")
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
func (config *TableConfig) validate() error {
	if config.quantity == "" {
		return fmt.Errorf("The 'Quantity' variable isn't set.")
	}
	switch strings.ToLower(config.format) {
	case "xlsx", "tsv":
	default:
		return fmt.Errorf("The 'Format' variable is set to '%s', which "+
			"I don't recognize.", config.format)
	}
	return nil
}

// Run executes the table mode of the epan tool.
func (config *TableConfig) Run(gConfig *GlobalConfig) error {
	logBanner("table")
	defer logPerformance(time.Now())

	ds, err := eprem.OpenDataset(gConfig.Source)
	if err != nil { return err }
	nums, err := pickStreams(ds, config.streams)
	if err != nil { return err }
	cat := gConfig.Catalog()

	sheets := make([]render.Sheet, 0, len(nums))
	for _, n := range nums {
		sheet, err := config.buildSheet(ds, n, cat)
		if err != nil { return err }
		sheets = append(sheets, *sheet)
	}

	if strings.EqualFold(config.format, "tsv") {
		if config.output != "" && len(sheets) > 1 {
			return fmt.Errorf("The 'Output' variable names one file, but "+
				"the table covers %d streams.", len(sheets))
		}
		for _, sheet := range sheets {
			path := outputName(config.output, gConfig.Output, sheet.Name,
				"table", "tsv")
			if err := writeTSV(path, sheet); err != nil { return err }
			fmt.Println(path)
		}
		return nil
	}

	out := config.output
	if out == "" {
		out = fmt.Sprintf("%s-table.xlsx", strings.ToLower(config.quantity))
	}
	path := out
	if !filepath.IsAbs(out) { path = filepath.Join(gConfig.Output, out) }
	if err := render.WriteWorkbook(path, sheets); err != nil { return err }
	fmt.Println(path)
	return nil
}

// buildSheet tabulates the quantity for one stream.
func (config *TableConfig) buildSheet(
	ds *eprem.Dataset, n int, cat units.Catalog,
) (*render.Sheet, error) {
	obs, err := ds.Stream(n)
	if err != nil { return nil, err }
	defer obs.Close()

	sheet := &render.Sheet{Name: obsStem(obs.Path())}
	switch strings.ToLower(config.quantity) {
	case "flux":
		err = config.fluxTable(obs, cat, sheet)
	case "fluence":
		err = config.fluenceTable(obs, cat, sheet)
	case "intflux":
		err = config.intfluxTable(obs, cat, sheet)
	default:
		err = config.gridTable(obs, cat, sheet)
	}
	if err != nil { return nil, err }
	return sheet, nil
}

// place resolves the Location variable against one stream.
func (config *TableConfig) place(obs *eprem.Observer) (placePick, error) {
	last := len(obs.Times()) - 1
	picks, err := resolvePlacePicks(obs, config.location, last)
	if err != nil { return placePick{}, err }
	return onePlace(picks)
}

func (config *TableConfig) fluxTable(
	obs *eprem.Observer, cat units.Catalog, sheet *render.Sheet,
) error {
	species, _, err := obs.SpeciesIndex(config.species)
	if err != nil { return err }
	place, err := config.place(obs)
	if err != nil { return err }
	eIdxs, err := resolveEnergyIndices(obs, config.energies)
	if err != nil { return err }
	flux, err := obs.Flux()
	if err != nil { return err }

	times, err := scaledTimes(obs, cat)
	if err != nil { return err }
	escale, err := units.EnergyScale(cat.Energy)
	if err != nil { return err }

	sheet.Header = []string{fmt.Sprintf("time [%s]", cat.Time)}
	for _, e := range eIdxs {
		sheet.Header = append(sheet.Header, fmt.Sprintf(
			"flux @ %.3f %s [%s]",
			obs.Energies()[e]*escale, cat.Energy, cat.Flux))
	}
	for t, tv := range times {
		row := make([]float64, 0, len(eIdxs)+1)
		row = append(row, tv)
		for _, e := range eIdxs {
			row = append(row, flux.At(t, place.shell, species, e))
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return nil
}

func (config *TableConfig) fluenceTable(
	obs *eprem.Observer, cat units.Catalog, sheet *render.Sheet,
) error {
	species, _, err := obs.SpeciesIndex(config.species)
	if err != nil { return err }
	place, err := config.place(obs)
	if err != nil { return err }
	flux, err := obs.Flux()
	if err != nil { return err }
	escale, err := units.EnergyScale(cat.Energy)
	if err != nil { return err }

	fl := obs.Fluence(flux, place.shell, species)
	sheet.Header = []string{
		fmt.Sprintf("energy [%s]", cat.Energy),
		fmt.Sprintf("fluence [%s]", cat.Fluence),
	}
	for e, v := range fl {
		sheet.Rows = append(sheet.Rows,
			[]float64{obs.Energies()[e] * escale, v})
	}
	return nil
}

func (config *TableConfig) intfluxTable(
	obs *eprem.Observer, cat units.Catalog, sheet *render.Sheet,
) error {
	species, _, err := obs.SpeciesIndex(config.species)
	if err != nil { return err }
	place, err := config.place(obs)
	if err != nil { return err }
	thresholds, err := parseThresholds(config.thresholds,
		[]float64{10, 50, 100}, cat)
	if err != nil { return err }
	flux, err := obs.Flux()
	if err != nil { return err }

	series, err := obs.IntegralFlux(flux, place.shell, species, thresholds)
	if err != nil { return err }
	times, err := scaledTimes(obs, cat)
	if err != nil { return err }
	escale, err := units.EnergyScale(cat.Energy)
	if err != nil { return err }

	sheet.Header = []string{fmt.Sprintf("time [%s]", cat.Time)}
	for _, e0 := range thresholds {
		sheet.Header = append(sheet.Header, fmt.Sprintf(
			"intflux >= %g %s [%s]", e0*escale, cat.Energy, cat.IntFlux))
	}
	for t, tv := range times {
		row := make([]float64, 0, len(thresholds)+1)
		row = append(row, tv)
		for i := range thresholds {
			row = append(row, series[i][t])
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return nil
}

func (config *TableConfig) gridTable(
	obs *eprem.Observer, cat units.Catalog, sheet *render.Sheet,
) error {
	g, err := obs.Grid(config.quantity)
	if err != nil { return err }
	place, err := config.place(obs)
	if err != nil { return err }
	times, err := scaledTimes(obs, cat)
	if err != nil { return err }

	name := strings.ToLower(config.quantity)
	head := name
	if unit := eprem.QuantityUnit(config.quantity); unit != "" {
		head = fmt.Sprintf("%s [%s]", name, unit)
	}
	sheet.Header = []string{fmt.Sprintf("time [%s]", cat.Time), head}

	col := gridColumn(g, place.shell)
	for t, tv := range times {
		sheet.Rows = append(sheet.Rows, []float64{tv, col[t]})
	}
	return nil
}

// writeTSV writes one sheet as tab separated text.
func writeTSV(path string, sheet render.Sheet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("I couldn't create the table file '%s'.", path)
	}
	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(sheet.Header); err != nil {
		f.Close()
		return err
	}
	record := make([]string, 0, len(sheet.Header))
	for _, row := range sheet.Rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
