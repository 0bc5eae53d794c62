package parse

import (
	"fmt"
	"strings"
)

// ReadFlags parses command line arguments of the form "--Name value" into
// the variables registered with vars. Flag names are matched without regard
// to case or to the number of leading dashes. All the value tokens between
// one flag and the next are joined with commas before conversion, so
// "--Floats 1 2 3" and "--Floats 1,2,3" are the same assignment. A bool
// flag given with no value is set to true.
func ReadFlags(args []string, vars *ConfigVars) error {
	for i := range vars.varNames {
		vars.varNames[i] = strings.ToLower(vars.varNames[i])
	}

	i := 0
	for i < len(args) {
		if !isFlagName(args[i]) {
			return fmt.Errorf(
				"I expected a flag in position %d, but got '%s' instead.",
				i+1, args[i],
			)
		}
		name := strings.ToLower(strings.TrimLeft(args[i], "-"))
		if len(name) == 0 {
			return fmt.Errorf(
				"The flag in position %d doesn't have a name.", i+1,
			)
		}

		j := vars.lookup(name)
		if j == -1 {
			return fmt.Errorf(
				"You passed me the flag '--%s', but I don't know what " +
				"that is.", name,
			)
		}

		i++
		start := i
		for i < len(args) && !isFlagName(args[i]) { i++ }

		val := strings.Join(args[start:i], ",")
		if start == i {
			if vars.varTypes[j] != boolVar {
				return fmt.Errorf(
					"The flag '--%s' wasn't given a value.", name,
				)
			}
			val = "true"
		}

		if ok := vars.conversionFuncs[j](val); !ok {
			typeName := vars.varTypes[j].String()
			return fmt.Errorf(
				"The flag '--%s' expects values of type %s and '%s' " +
				"cannot be converted to %s %s.", name, typeName, val,
				article(typeName), typeName,
			)
		}
	}

	return nil
}

func isFlagName(tok string) bool {
	return strings.HasPrefix(tok, "--")
}
