package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/parse"
)

// WriteHistoryConfig contains the configuration fields for the
// 'write-history' mode of the epan tool.
type WriteHistoryConfig struct {
	stream     int64
	timeStep   int64
	shell      int64
	quantities []string
	species    string
	energy     []string
}

var _ Mode = &WriteHistoryConfig{}

// ExampleConfig creates an example write-history.config file.
func (config *WriteHistoryConfig) ExampleConfig() string {
	return `[write-history.config]
#####################
## Required Fields ##
#####################

# The stream observer whose node histories to write.
Stream = 0

#####################
## Optional Fields ##
#####################

# The time step and shell that identify the target node. The history
# follows that node, so step t reads the shell the node occupied at
# step t. A negative Time counts back from the end of the run.
# Time = 0
# Shell = 0

# Quantities to write, one file per quantity, named
# <quantity>-<stem>-t<T>-s<S>.txt. The quantity 'flux' is also allowed;
# it needs the 'Energy' variable and respects 'Species'.
# Quantities = rho, br, bt, bp, ur, ut, up

# Species and energy of the flux history. Bare energies are in the
# display energy unit; a trailing unit token overrides that.
# Species = H+
# Energy = 1, MeV`
}

// ReadConfig reads in a write-history.config file into config.
func (config *WriteHistoryConfig) ReadConfig(
	fname string, flags []string,
) error {
	vars := parse.NewConfigVars("write-history.config")
	vars.Int(&config.stream, "Stream", -1)
	vars.Int(&config.timeStep, "Time", 0)
	vars.Int(&config.shell, "Shell", 0)
	vars.Strings(&config.quantities, "Quantities",
		[]string{"rho", "br", "bt", "bp", "ur", "ut", "up"})
	vars.String(&config.species, "Species", "H+")
	vars.Strings(&config.energy, "Energy", []string{})

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
func (config *WriteHistoryConfig) validate() error {
	if config.stream < 0 {
		return fmt.Errorf("The 'Stream' variable isn't set.")
	}
	if config.shell < 0 {
		return fmt.Errorf("The 'Shell' variable is set to %d, but it "+
			"needs to be non-negative.", config.shell)
	}
	if len(config.quantities) == 0 {
		return fmt.Errorf("The 'Quantities' variable is empty.")
	}
	for _, name := range config.quantities {
		if strings.EqualFold(name, "flux") && len(config.energy) == 0 {
			return fmt.Errorf("The 'flux' quantity needs the 'Energy' " +
				"variable.")
		}
	}
	return nil
}

// Run executes the write-history mode of the epan tool.
func (config *WriteHistoryConfig) Run(gConfig *GlobalConfig) error {
	logBanner("write-history")
	defer logPerformance(time.Now())

	ds, err := eprem.OpenDataset(gConfig.Source)
	if err != nil { return err }
	obs, err := ds.Stream(int(config.stream))
	if err != nil { return err }
	defer obs.Close()

	t0 := int(config.timeStep)
	if t0 < 0 { t0 += len(obs.Times()) }
	shell := int(config.shell)
	stem := obsStem(obs.Path())

	for _, name := range config.quantities {
		var (
			h   *eprem.History
			err error
		)
		if strings.EqualFold(name, "flux") {
			energy, perr := parseEnergy(config.energy, 0, gConfig.Catalog())
			if perr != nil { return perr }
			h, err = obs.NodeFluxHistory(t0, shell, config.species, energy)
		} else {
			h, err = obs.NodeHistory(name, t0, shell)
		}
		if err != nil { return err }

		fname := fmt.Sprintf("%s-%s-t%d-s%d.txt",
			strings.ToLower(name), stem, t0, shell)
		path := filepath.Join(gConfig.Output, fname)
		if err := h.WriteFile(path); err != nil { return err }
		fmt.Println(path)
	}
	return nil
}
