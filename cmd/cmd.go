// Package cmd holds the analysis modes and the config plumbing they
// share. Each mode is a Mode value registered in ModeNames.
package cmd

import (
	"fmt"
	"strings"

	"github.com/myoung-space-science/emmrem-analysis/logging"
	"github.com/myoung-space-science/emmrem-analysis/parse"
	"github.com/myoung-space-science/emmrem-analysis/units"
	"github.com/myoung-space-science/emmrem-analysis/version"
)

var ModeNames map[string]Mode = map[string]Mode{
	"flux-time":      &FluxTimeConfig{},
	"flux-energy":    &FluxEnergyConfig{},
	"fluence-energy": &FluenceEnergyConfig{},
	"intflux-time":   &IntFluxTimeConfig{},
	"survey":         &SurveyConfig{},
	"point-survey":   &PointSurveyConfig{},
	"mhd-survey":     &MHDSurveyConfig{},
	"write-history":  &WriteHistoryConfig{},
	"plot-history":   &PlotHistoryConfig{},
	"dqdt":           &DqdtConfig{},
	"streams3d":      &Streams3DConfig{},
	"table":          &TableConfig{},
}

// Mode represents the interface used by the main binary when interacting
// with a given command line mode.
type Mode interface {
	// ReadConfig reads a mode-specific config file and the command line
	// flags and stores their contents within the Mode. Flags win over
	// config file values. fname may be empty.
	ReadConfig(fname string, flags []string) error
	// ExampleConfig returns the text of an example config file of this
	// mode.
	ExampleConfig() string
	// Run executes the mode against an initialized GlobalConfig.
	Run(gConfig *GlobalConfig) error
}

// GlobalConfig is a config file used by every mode. It names the EPREM
// run to analyze, where artifacts land, and the units figures display.
type GlobalConfig struct {
	Version string

	Source string
	Output string

	TimeUnit     string
	EnergyUnit   string
	DistanceUnit string
	FluxUnit     string
	FluenceUnit  string
	IntFluxUnit  string

	Verbose bool
	LogFlag string
}

// ReadConfig reads a config file and returns an error, if applicable.
func (config *GlobalConfig) ReadConfig(fname string) error {
	def := units.DefaultCatalog()

	vars := parse.NewConfigVars("config")
	vars.String(&config.Version, "Version", version.SourceVersion)
	vars.String(&config.Source, "Source", "")
	vars.String(&config.Output, "Output", ".")
	vars.String(&config.TimeUnit, "TimeUnit", def.Time)
	vars.String(&config.EnergyUnit, "EnergyUnit", def.Energy)
	vars.String(&config.DistanceUnit, "DistanceUnit", def.Radius)
	vars.String(&config.FluxUnit, "FluxUnit", def.Flux)
	vars.String(&config.FluenceUnit, "FluenceUnit", def.Fluence)
	vars.String(&config.IntFluxUnit, "IntFluxUnit", def.IntFlux)
	vars.Bool(&config.Verbose, "Verbose", false)
	vars.String(&config.LogFlag, "LogFlag", "")

	err := parse.ReadConfig(fname, vars)
	if err != nil { return err }

	if err = config.validate(); err != nil { return err }

	return nil
}

// validate checks that all the user-generated fields of GlobalConfig are
// properly set. Whether Source actually holds EPREM output is left to
// the modes, which report missing files with more context.
func (config *GlobalConfig) validate() error {
	major, minor, patch, err := version.Parse(config.Version)
	if err != nil {
		return fmt.Errorf("I couldn't parse the 'Version' variable: %s",
			err.Error())
	}
	smajor, sminor, spatch, _ := version.Parse(version.SourceVersion)
	if major != smajor || minor != sminor || patch != spatch {
		return fmt.Errorf("The 'Version' variable is set to %s, but the "+
			"version of the source is %s",
			config.Version, version.SourceVersion)
	}

	if config.Source == "" {
		return fmt.Errorf("The 'Source' variable isn't set.")
	}
	if config.Output == "" { config.Output = "." }

	if _, err := units.TimeScale(config.TimeUnit); err != nil {
		return fmt.Errorf("The 'TimeUnit' variable is invalid: %s",
			err.Error())
	}
	if _, err := units.EnergyScale(config.EnergyUnit); err != nil {
		return fmt.Errorf("The 'EnergyUnit' variable is invalid: %s",
			err.Error())
	}
	if _, err := units.RadiusScale(config.DistanceUnit); err != nil {
		return fmt.Errorf("The 'DistanceUnit' variable is invalid: %s",
			err.Error())
	}

	switch strings.ToLower(config.LogFlag) {
	case "", "none", "nil":
		logging.Mode = logging.Nil
	case "performance":
		logging.Mode = logging.Performance
	case "debug":
		logging.Mode = logging.Debug
	default:
		return fmt.Errorf("The 'LogFlag' variable is set to '%s', which "+
			"I don't recognize.", config.LogFlag)
	}
	if config.Verbose && logging.Mode == logging.Nil {
		logging.Mode = logging.Performance
	}

	return nil
}

// Catalog collects the display units into the record the analysis and
// rendering code reads.
func (config *GlobalConfig) Catalog() units.Catalog {
	return units.Catalog{
		Time:    config.TimeUnit,
		Energy:  config.EnergyUnit,
		Radius:  config.DistanceUnit,
		Flux:    config.FluxUnit,
		Fluence: config.FluenceUnit,
		IntFlux: config.IntFluxUnit,
	}
}

// ExampleConfig returns an example configuration file.
func (config *GlobalConfig) ExampleConfig() string {
	return fmt.Sprintf(`[config]
# Target version of epan. This option merely allows epan to notice when
# its source and configuration files are not from the same version.
#
# This variable defaults to the source version if not included.
Version = %s

# Directory holding the output of one EPREM run. epan looks directly
# inside it for stream observer files (obs000000.nc, or flux000000.nc
# when only the flux was written) and point observer files
# (p_obs000000.nc).
Source = path/to/eprem/run

# Directory that figures, histories, tables, and scenes are written
# into. Defaults to the current directory.
# Output = .

# Units used on figure axes and in history file headers. Times,
# energies, and distances are converted from the file units (days, MeV,
# cm) into these. Supported TimeUnits: day, hour, minute, second.
# Supported EnergyUnits: MeV, GeV, keV, eV, erg. Supported
# DistanceUnits: au, Rs, cm, m, km.
# TimeUnit = hour
# EnergyUnit = MeV
# DistanceUnit = au

# The flux, fluence, and integral flux unit strings only label axes and
# headers, so any text works. The data itself is always in the units
# below.
# FluxUnit = 1 / (cm^2 s sr MeV/nuc)
# FluenceUnit = 1 / (cm^2 sr MeV/nuc)
# IntFluxUnit = 1 / (cm^2 s sr)

# LogFlag chooses how chatty epan is: none, performance, or debug.
# Verbose = true is shorthand for LogFlag = performance.
# LogFlag = none
# Verbose = false`, version.SourceVersion)
}
