/*epan contains code for plotting and analyzing the output of EPREM,
the Energetic Particle Radiation Environment Module.*/
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/myoung-space-science/emmrem-analysis/cmd"
	"github.com/myoung-space-science/emmrem-analysis/version"
)

var helpStrings = map[string]string{
	"flux-time": `The flux-time mode plots the differential flux at one
location against time, one curve per energy bin and one figure per
stream observer.`,
	"flux-energy": `The flux-energy mode plots flux spectra: one figure
per stream, with curves across times at one location or across
locations at one time. ShowInitial = true adds the seed spectrum.`,
	"fluence-energy": `The fluence-energy mode plots the time integrated
flux against energy at one or more locations.`,
	"intflux-time": `The intflux-time mode plots the flux integrated
above threshold energies against time.`,
	"survey": `The survey mode joins the flux, fluence, and intflux
panels into one row per stream observer.`,
	"point-survey": `The point-survey mode draws the survey row for
point observer files (p_obs000000.nc).`,
	"mhd-survey": `The mhd-survey mode stacks the magnetic field, solar
wind velocity, and density histories at one location.`,
	"write-history": `The write-history mode follows one node of a
stream and writes a text history file per quantity.`,
	"plot-history": `The plot-history mode plots history files written
by the write-history mode, one panel per quantity.`,
	"dqdt": `The dqdt mode reads a node's history files and plots the
terms of its adiabatic energy change rate.`,
	"streams3d": `The streams3d mode renders the simulation streams as
an interactive 3-D HTML scene, optionally colored by a quantity.`,
	"table": `The table mode tabulates a quantity into an xlsx workbook
or tab separated text.`,

	"config":                new(cmd.GlobalConfig).ExampleConfig(),
	"flux-time.config":      cmd.ModeNames["flux-time"].ExampleConfig(),
	"flux-energy.config":    cmd.ModeNames["flux-energy"].ExampleConfig(),
	"fluence-energy.config": cmd.ModeNames["fluence-energy"].ExampleConfig(),
	"intflux-time.config":   cmd.ModeNames["intflux-time"].ExampleConfig(),
	"survey.config":         cmd.ModeNames["survey"].ExampleConfig(),
	"point-survey.config":   cmd.ModeNames["point-survey"].ExampleConfig(),
	"mhd-survey.config":     cmd.ModeNames["mhd-survey"].ExampleConfig(),
	"write-history.config":  cmd.ModeNames["write-history"].ExampleConfig(),
	"plot-history.config":   cmd.ModeNames["plot-history"].ExampleConfig(),
	"dqdt.config":           cmd.ModeNames["dqdt"].ExampleConfig(),
	"streams3d.config":      cmd.ModeNames["streams3d"].ExampleConfig(),
	"table.config":          cmd.ModeNames["table"].ExampleConfig(),
}

var modeDescriptions = `My help modes are:
epan help
epan help [ flux-time | flux-energy | fluence-energy | intflux-time |
            survey | point-survey | mhd-survey | write-history |
            plot-history | dqdt | streams3d | table ]
epan help [ config | flux-time.config | ... | table.config ]

My analysis modes are:
epan flux-time      [flags] ____.config [____.flux-time.config]
epan flux-energy    [flags] ____.config [____.flux-energy.config]
epan fluence-energy [flags] ____.config [____.fluence-energy.config]
epan intflux-time   [flags] ____.config [____.intflux-time.config]
epan survey         [flags] ____.config [____.survey.config]
epan point-survey   [flags] ____.config [____.point-survey.config]
epan mhd-survey     [flags] ____.config [____.mhd-survey.config]
epan write-history  [flags] ____.config [____.write-history.config]
epan plot-history   [flags] ____.config [____.plot-history.config]
epan dqdt           [flags] ____.config [____.dqdt.config]
epan streams3d      [flags] ____.config [____.streams3d.config]
epan table          [flags] ____.config [____.table.config]`

func main() {
	args := os.Args
	if len(args) <= 1 {
		fmt.Fprintf(
			os.Stderr, "I was not supplied with a mode.\nFor help, type "+
				"'./epan help'.\n",
		)
		os.Exit(1)
	}

	if args[1] == "help" {
		switch len(args) - 2 {
		case 0:
			fmt.Println(modeDescriptions)
		case 1:
			text, ok := helpStrings[args[2]]
			if !ok {
				fmt.Printf("I don't recognize the help target '%s'\n", args[2])
			} else {
				fmt.Println(text)
			}
		default:
			fmt.Println("The help mode can only take a single argument.")
		}
		os.Exit(0)
	} else if args[1] == "version" {
		fmt.Printf("epan version %s\n", version.SourceVersion)
		os.Exit(0)
	}

	mode, ok := cmd.ModeNames[args[1]]
	if !ok {
		fmt.Fprintf(
			os.Stderr, "You passed me the mode '%s', which I don't "+
				"recognize.\nFor help, type './epan help'\n", args[1],
		)
		os.Exit(1)
	}

	flags := getFlags(args)
	config, _ := getConfig(args)
	gConfig, err := getGlobalConfig(args)
	if err != nil {
		log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error())
	}

	if err = mode.ReadConfig(config, flags); err != nil {
		log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error())
	}

	if err = mode.Run(gConfig); err != nil {
		log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error())
	}
}

// getFlags returns the flag tokens from the command line arguments.
func getFlags(args []string) []string {
	return args[2 : len(args)-configNum(args)]
}

// getGlobalConfig returns the global config from the command line
// arguments, or from $EPAN_GLOBAL_CONFIG when that is set.
func getGlobalConfig(args []string) (*cmd.GlobalConfig, error) {
	name := os.Getenv("EPAN_GLOBAL_CONFIG")
	if name != "" {
		if configNum(args) > 1 {
			return nil, fmt.Errorf("$EPAN_GLOBAL_CONFIG has been set, " +
				"so you may only pass a single config file as a parameter.")
		}

		config := &cmd.GlobalConfig{}
		err := config.ReadConfig(name)
		if err != nil { return nil, err }
		return config, nil
	}

	switch configNum(args) {
	case 0:
		return nil, fmt.Errorf("No config files provided in command " +
			"line arguments.")
	case 1:
		name = args[len(args)-1]
	case 2:
		name = args[len(args)-2]
	default:
		return nil, fmt.Errorf("Passed too many config files as arguments.")
	}

	config := &cmd.GlobalConfig{}
	err := config.ReadConfig(name)
	if err != nil { return nil, err }
	return config, nil
}

// getConfig returns the name of the mode-specific config file from the
// command line arguments.
func getConfig(args []string) (string, bool) {
	if os.Getenv("EPAN_GLOBAL_CONFIG") != "" && configNum(args) == 1 {
		return args[len(args)-1], true
	} else if os.Getenv("EPAN_GLOBAL_CONFIG") == "" &&
		configNum(args) == 2 {

		return args[len(args)-1], true
	}
	return "", false
}

// configNum returns the number of configuration files at the end of the
// argument list (up to 2).
func configNum(args []string) int {
	num := 0
	for i := len(args) - 1; i >= 0; i-- {
		if isConfig(args[i]) {
			num++
		} else {
			break
		}
	}
	return num
}

// isConfig returns true if the given string is a config file name.
func isConfig(s string) bool {
	return len(s) >= 7 && s[len(s)-7:] == ".config"
}
