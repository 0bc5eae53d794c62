// Package parse reads the "[mode]"-headed config files and the --Flag
// command line overrides that every epan mode accepts.
package parse

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// A ConfigVars holds the variables one mode accepts, in registration
// order. Registering a variable writes its default through the supplied
// pointer immediately, so a config is fully usable even if no file or
// flags are ever read into it.
type ConfigVars struct {
	name            string
	varNames        []string
	varTypes        []varType
	conversionFuncs []conversionFunc
}

type varType int

const (
	intVar varType = iota
	intsVar
	floatVar
	floatsVar
	stringVar
	stringsVar
	boolVar
	boolsVar
)

var varTypeNames = [...]string{
	intVar:     "int",
	intsVar:    "int list",
	floatVar:   "float",
	floatsVar:  "float list",
	stringVar:  "string",
	stringsVar: "string list",
	boolVar:    "bool",
	boolsVar:   "bool list",
}

func (v varType) String() string { return varTypeNames[v] }

// A conversionFunc writes one raw config value through a registered
// pointer and reports whether the conversion succeeded.
type conversionFunc func(string) bool

func NewConfigVars(name string) *ConfigVars {
	return &ConfigVars{name: name}
}

func (vars *ConfigVars) add(name string, t varType, conv conversionFunc) {
	vars.varNames = append(vars.varNames, name)
	vars.varTypes = append(vars.varTypes, t)
	vars.conversionFuncs = append(vars.conversionFuncs, conv)
}

// lookup returns the index of the registered variable called name, or -1
// if there is no such variable.
func (vars *ConfigVars) lookup(name string) int {
	for i := range vars.varNames {
		if vars.varNames[i] == name {
			return i
		}
	}
	return -1
}

func (vars *ConfigVars) Int(ptr *int64, name string, value int64) {
	*ptr = value
	vars.add(name, intVar, intConv(ptr))
}

func (vars *ConfigVars) Float(ptr *float64, name string, value float64) {
	*ptr = value
	vars.add(name, floatVar, floatConv(ptr))
}

func (vars *ConfigVars) String(ptr *string, name string, value string) {
	*ptr = value
	vars.add(name, stringVar, stringConv(ptr))
}

func (vars *ConfigVars) Bool(ptr *bool, name string, value bool) {
	*ptr = value
	vars.add(name, boolVar, boolConv(ptr))
}

func (vars *ConfigVars) Ints(ptr *[]int64, name string, value []int64) {
	*ptr = value
	vars.add(name, intsVar, intsConv(ptr))
}

func (vars *ConfigVars) Floats(ptr *[]float64, name string, value []float64) {
	*ptr = value
	vars.add(name, floatsVar, floatsConv(ptr))
}

func (vars *ConfigVars) Strings(ptr *[]string, name string, value []string) {
	*ptr = value
	vars.add(name, stringsVar, stringsConv(ptr))
}

func (vars *ConfigVars) Bools(ptr *[]bool, name string, value []bool) {
	*ptr = value
	vars.add(name, boolsVar, boolsConv(ptr))
}

func intConv(ptr *int64) conversionFunc {
	return func(s string) bool {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil { return false }
		*ptr = i
		return true
	}
}

func floatConv(ptr *float64) conversionFunc {
	return func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil { return false }
		*ptr = f
		return true
	}
}

func stringConv(ptr *string) conversionFunc {
	return func(s string) bool {
		*ptr = strings.TrimSpace(s)
		return true
	}
}

func boolConv(ptr *bool) conversionFunc {
	return func(s string) bool {
		b, err := strconv.ParseBool(s)
		if err != nil { return false }
		*ptr = b
		return true
	}
}

// splitList breaks a comma separated value into trimmed tokens.
func splitList(s string) []string {
	toks := strings.Split(s, ",")
	for i := range toks {
		toks[i] = strings.TrimSpace(toks[i])
	}
	return toks
}

// The list converters truncate the target slice before appending, so a
// later assignment replaces an earlier one instead of growing it.

func intsConv(ptr *[]int64) conversionFunc {
	return func(s string) bool {
		*ptr = (*ptr)[:0]
		var x int64
		conv := intConv(&x)
		for _, tok := range splitList(s) {
			if !conv(tok) { return false }
			*ptr = append(*ptr, x)
		}
		return true
	}
}

func floatsConv(ptr *[]float64) conversionFunc {
	return func(s string) bool {
		*ptr = (*ptr)[:0]
		var x float64
		conv := floatConv(&x)
		for _, tok := range splitList(s) {
			if !conv(tok) { return false }
			*ptr = append(*ptr, x)
		}
		return true
	}
}

func stringsConv(ptr *[]string) conversionFunc {
	return func(s string) bool {
		*ptr = append((*ptr)[:0], splitList(s)...)
		return true
	}
}

func boolsConv(ptr *[]bool) conversionFunc {
	return func(s string) bool {
		*ptr = (*ptr)[:0]
		var x bool
		conv := boolConv(&x)
		for _, tok := range splitList(s) {
			if !conv(tok) { return false }
			*ptr = append(*ptr, x)
		}
		return true
	}
}

// An assignment is one 'variable = value' line of a config file, tagged
// with its 1-indexed line number so errors can point back at the file.
type assignment struct {
	name string
	val  string
	line int
}

// ReadConfig reads the config file fname into the variables registered
// with vars. The first line of the file must be the header [name], '#'
// starts a comment, and every other line is a 'variable = value'
// assignment. Variable names are matched without regard to case.
func ReadConfig(fname string, vars *ConfigVars) error {
	for i := range vars.varNames {
		vars.varNames[i] = strings.ToLower(vars.varNames[i])
	}

	bs, err := os.ReadFile(fname)
	if err != nil { return err }

	lines, nums := cleanLines(string(bs))
	header := fmt.Sprintf("[%s]", vars.name)
	if len(lines) == 0 || lines[0] != header {
		return fmt.Errorf(
			"I expected the first line of the config file %s to be the "+
				"header %s, but it isn't.", fname, header,
		)
	}

	asgns, badLine := parseAssignments(lines[1:], nums[1:])
	if badLine != 0 {
		return fmt.Errorf(
			"I couldn't parse line %d of the config file %s because it "+
				"isn't a 'variable = value' assignment.", badLine, fname,
		)
	}

	if i := findUnknown(asgns, vars); i != -1 {
		return fmt.Errorf(
			"Line %d of the config file %s sets the variable '%s', but "+
				"%s config files don't have that variable.",
			asgns[i].line, fname, asgns[i].name, vars.name,
		)
	}

	if i, j := findDuplicate(asgns); i != -1 {
		return fmt.Errorf(
			"Lines %d and %d of the config file %s both set the variable "+
				"'%s'.", asgns[i].line, asgns[j].line, fname, asgns[i].name,
		)
	}

	if i := applyAssignments(asgns, vars); i != -1 {
		typeName := vars.varTypes[vars.lookup(asgns[i].name)].String()
		return fmt.Errorf(
			"I couldn't parse line %d of the config file %s because '%s' "+
				"expects values of type %s and '%s' cannot be converted "+
				"to %s %s.", asgns[i].line, fname, asgns[i].name, typeName,
			asgns[i].val, article(typeName), typeName,
		)
	}

	return nil
}

// cleanLines splits text into lines, strips '#' comments and blank
// lines, and returns the surviving lines along with their 1-indexed
// positions in the original text.
func cleanLines(text string) ([]string, []int) {
	out, nums := []string{}, []int{}
	for i, line := range strings.Split(text, "\n") {
		if cut := strings.Index(line, "#"); cut != -1 {
			line = line[:cut]
		}
		line = strings.TrimSpace(line)
		if line == "" { continue }
		out = append(out, line)
		nums = append(nums, i+1)
	}
	return out, nums
}

// parseAssignments splits cleaned config lines on their first '=' into
// lowercased names and raw values. The second return value is the file
// line number of the first line that isn't an assignment, or 0 when
// every line is one.
func parseAssignments(lines []string, nums []int) ([]assignment, int) {
	asgns := []assignment{}
	for i := range lines {
		name, val, found := strings.Cut(lines[i], "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if !found || name == "" { return nil, nums[i] }
		asgns = append(asgns, assignment{name, strings.TrimSpace(val), nums[i]})
	}
	return asgns, 0
}

// findUnknown returns the index of the first assignment to a variable
// that vars doesn't have, or -1.
func findUnknown(asgns []assignment, vars *ConfigVars) int {
	for i := range asgns {
		if vars.lookup(asgns[i].name) == -1 { return i }
	}
	return -1
}

// findDuplicate returns the indices of the first pair of assignments to
// the same variable, or (-1, -1).
func findDuplicate(asgns []assignment) (int, int) {
	for i := range asgns {
		for j := i + 1; j < len(asgns); j++ {
			if asgns[i].name == asgns[j].name { return i, j }
		}
	}
	return -1, -1
}

// applyAssignments writes every assignment through its registered
// pointer and returns the index of the first value that doesn't
// convert, or -1.
func applyAssignments(asgns []assignment, vars *ConfigVars) int {
	for i := range asgns {
		j := vars.lookup(asgns[i].name)
		if !vars.conversionFuncs[j](asgns[i].val) { return i }
	}
	return -1
}

// article returns the indefinite article that precedes typeName in an
// error message.
func article(typeName string) string {
	if typeName[0] == 'i' { return "an" }
	return "a"
}
