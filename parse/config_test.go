package parse

import (
	"fmt"
	"slices"
	"testing"
)

func TestIntConv(t *testing.T) {
	table := []struct {
		in   string
		ok   bool
		want int64
	}{
		{"41891", true, 41891},
		{"-3", true, -3},
		{"meow", false, 0},
		{"1.5", false, 0},
	}

	for i := range table {
		var x int64
		ok := intConv(&x)(table[i].in)
		if ok != table[i].ok {
			t.Errorf("%d) Expected ok = %v for '%s', got %v",
				i+1, table[i].ok, table[i].in, ok)
		} else if ok && x != table[i].want {
			t.Errorf("%d) Expected x = %d, got %d", i+1, table[i].want, x)
		}
	}
}

func TestFloatConv(t *testing.T) {
	table := []struct {
		in   string
		ok   bool
		want float64
	}{
		{"41891.0", true, 41891},
		{"-1.2e4", true, -1.2e4},
		{"meow", false, 0},
	}

	for i := range table {
		var x float64
		ok := floatConv(&x)(table[i].in)
		if ok != table[i].ok {
			t.Errorf("%d) Expected ok = %v for '%s', got %v",
				i+1, table[i].ok, table[i].in, ok)
		} else if ok && x != table[i].want {
			t.Errorf("%d) Expected x = %g, got %g", i+1, table[i].want, x)
		}
	}
}

func TestStringConv(t *testing.T) {
	var x string
	if !stringConv(&x)("  41891") {
		t.Fatalf("stringConv failed on valid input.")
	}
	if x != "41891" {
		t.Errorf("Expected x = '41891', got '%s'", x)
	}
}

func TestBoolConv(t *testing.T) {
	table := []struct {
		in   string
		ok   bool
		want bool
	}{
		{"true", true, true},
		{"false", true, false},
		{"meow", false, false},
	}

	for i := range table {
		var x bool
		ok := boolConv(&x)(table[i].in)
		if ok != table[i].ok {
			t.Errorf("%d) Expected ok = %v for '%s', got %v",
				i+1, table[i].ok, table[i].in, ok)
		} else if ok && x != table[i].want {
			t.Errorf("%d) Expected x = %v, got %v", i+1, table[i].want, x)
		}
	}
}

func TestIntsConv(t *testing.T) {
	var xs []int64
	conv := intsConv(&xs)

	if !conv("1, 2 , 3") {
		t.Fatalf("intsConv failed on valid input.")
	}
	if !slices.Equal(xs, []int64{1, 2, 3}) {
		t.Errorf("Expected xs = [1 2 3], got %v", xs)
	}

	if !conv("8") {
		t.Fatalf("intsConv failed on valid input.")
	}
	if !slices.Equal(xs, []int64{8}) {
		t.Errorf("Expected the second conversion to replace the first, "+
			"got %v", xs)
	}

	if conv("1,meow,3") {
		t.Errorf("intsConv succeeded on invalid input.")
	}
}

func TestFloatsConv(t *testing.T) {
	var xs []float64
	conv := floatsConv(&xs)

	if !conv("1, 2.5 , 3") {
		t.Fatalf("floatsConv failed on valid input.")
	}
	if !slices.Equal(xs, []float64{1, 2.5, 3}) {
		t.Errorf("Expected xs = [1 2.5 3], got %v", xs)
	}

	if conv("1,meow,3") {
		t.Errorf("floatsConv succeeded on invalid input.")
	}
}

func TestStringsConv(t *testing.T) {
	var xs []string
	conv := stringsConv(&xs)

	if !conv("dorothy, maddy , sahil") {
		t.Fatalf("stringsConv failed on valid input.")
	}
	if !slices.Equal(xs, []string{"dorothy", "maddy", "sahil"}) {
		t.Errorf("Expected xs = [dorothy maddy sahil], got %v", xs)
	}

	if !conv("gwen") {
		t.Fatalf("stringsConv failed on valid input.")
	}
	if !slices.Equal(xs, []string{"gwen"}) {
		t.Errorf("Expected the second conversion to replace the first, "+
			"got %v", xs)
	}
}

func TestBoolsConv(t *testing.T) {
	var xs []bool
	conv := boolsConv(&xs)

	if !conv("true, false,    true") {
		t.Fatalf("boolsConv failed on valid input.")
	}
	if !slices.Equal(xs, []bool{true, false, true}) {
		t.Errorf("Expected xs = [true false true], got %v", xs)
	}

	if conv("true,meow,false") {
		t.Errorf("boolsConv succeeded on invalid input.")
	}
}

func TestCleanLines(t *testing.T) {
	table := []struct {
		text  string
		lines []string
		nums  []int
	}{
		{"", nil, nil},
		{"meow", []string{"meow"}, []int{1}},
		{"#meow", nil, nil},
		{"meow\n # comment\n\n   mew ", []string{"meow", "mew"}, []int{1, 4}},
		{"a = 1 # one", []string{"a = 1"}, []int{1}},
	}

	for i := range table {
		lines, nums := cleanLines(table[i].text)
		if !slices.Equal(lines, table[i].lines) {
			t.Errorf("%d) Expected lines = %v, got %v",
				i+1, table[i].lines, lines)
		}
		if !slices.Equal(nums, table[i].nums) {
			t.Errorf("%d) Expected line numbers = %v, got %v",
				i+1, table[i].nums, nums)
		}
	}
}

func TestParseAssignments(t *testing.T) {
	table := []struct {
		lines   []string
		asgns   []assignment
		badLine int
	}{
		{[]string{"a=b"}, []assignment{{"a", "b", 1}}, 0},
		{[]string{"a"}, nil, 1},
		{[]string{"=b"}, nil, 1},
		{[]string{"a=b", "not an assignment"}, nil, 2},
		{[]string{"A = b", "c=", "d = x = y"},
			[]assignment{{"a", "b", 1}, {"c", "", 2}, {"d", "x = y", 3}}, 0},
	}

	for i := range table {
		nums := make([]int, len(table[i].lines))
		for j := range nums {
			nums[j] = j + 1
		}

		asgns, badLine := parseAssignments(table[i].lines, nums)
		if badLine != table[i].badLine {
			t.Errorf("%d) Expected bad line %d, got %d",
				i+1, table[i].badLine, badLine)
		}
		if badLine != 0 { continue }
		if !slices.Equal(asgns, table[i].asgns) {
			t.Errorf("%d) Expected assignments %v, got %v",
				i+1, table[i].asgns, asgns)
		}
	}
}

func asgnNames(names ...string) []assignment {
	asgns := make([]assignment, len(names))
	for i := range names {
		asgns[i] = assignment{name: names[i], line: i + 1}
	}
	return asgns
}

func TestFindUnknown(t *testing.T) {
	vars := &ConfigVars{varNames: []string{"a", "b", "c", "d"}}
	table := []struct {
		names []string
		i     int
	}{
		{[]string{"a", "b", "c"}, -1},
		{[]string{"a", "b", "x"}, 2},
		{[]string{"a", "a", "a"}, -1},
	}

	for j := range table {
		i := findUnknown(asgnNames(table[j].names...), vars)
		if i != table[j].i {
			t.Errorf("%d) Expected index %d, got %d", j+1, table[j].i, i)
		}
	}
}

func TestFindDuplicate(t *testing.T) {
	table := []struct {
		names []string
		i, j  int
	}{
		{[]string{"a", "b", "c"}, -1, -1},
		{[]string{"a", "b", "b", "c", "c"}, 1, 2},
	}

	for k := range table {
		i, j := findDuplicate(asgnNames(table[k].names...))
		if i != table[k].i || j != table[k].j {
			t.Errorf("%d) Expected indices (%d, %d), got (%d, %d)",
				k+1, table[k].i, table[k].j, i, j)
		}
	}
}

func TestApplyAssignments(t *testing.T) {
	var x int64
	vars := NewConfigVars("demo")
	vars.Int(&x, "a", 0)

	if i := applyAssignments([]assignment{{"a", "3", 1}}, vars); i != -1 {
		t.Errorf("Expected index -1 for a valid assignment, got %d", i)
	}
	if x != 3 {
		t.Errorf("Expected x = 3, got %d", x)
	}

	asgns := []assignment{{"a", "4", 1}, {"a", "meow", 2}}
	if i := applyAssignments(asgns, vars); i != 1 {
		t.Errorf("Expected index 1 for an invalid assignment, got %d", i)
	}
}

type demoConfig struct {
	count   int64
	steps   []int64
	scale   float64
	weights []float64
	verbose bool
	toggles []bool
	label   string
	tags    []string
}

func makeDemoVars() (*demoConfig, *ConfigVars) {
	config := &demoConfig{}
	vars := NewConfigVars("demo")
	vars.Int(&config.count, "Count", 0)
	vars.Ints(&config.steps, "Steps", []int64{})
	vars.Float(&config.scale, "Scale", 0)
	vars.Floats(&config.weights, "Weights", []float64{})
	vars.Bool(&config.verbose, "Verbose", false)
	vars.Bools(&config.toggles, "Toggles", []bool{})
	vars.String(&config.label, "Label", "")
	vars.Strings(&config.tags, "Tags", []string{})

	return config, vars
}

func TestValidConfig(t *testing.T) {
	config, vars := makeDemoVars()
	err := ReadConfig("config_test_files/success.config", vars)
	if err != nil {
		t.Fatalf("Expected a clean read of success.config, but got the "+
			"error:\n%s", err.Error())
	}

	if config.count != 7 {
		t.Errorf("Expected count = 7, got %d", config.count)
	}
	if !slices.Equal(config.steps, []int64{1, 2, 4, 8}) {
		t.Errorf("Expected steps = [1 2 4 8], got %v", config.steps)
	}
	if config.scale != -1.2e4 {
		t.Errorf("Expected scale = -12000, got %g", config.scale)
	}
	if !slices.Equal(config.weights, []float64{0.5, 1.5, 2.5}) {
		t.Errorf("Expected weights = [0.5 1.5 2.5], got %v", config.weights)
	}
	if !config.verbose {
		t.Errorf("Expected verbose = true, got false")
	}
	if !slices.Equal(config.toggles, []bool{true, false, true}) {
		t.Errorf("Expected toggles = [true false true], got %v",
			config.toggles)
	}
	if config.label != "quiet" {
		t.Errorf("Expected label = 'quiet', got '%s'", config.label)
	}
	if !slices.Equal(config.tags, []string{"red", "green", "blue"}) {
		t.Errorf("Expected tags = [red green blue], got %v", config.tags)
	}
}

func TestInvalidConfig(t *testing.T) {
	fnames := []string{
		"config_test_files/empty.config",
		"config_test_files/wrong_header.config",
		"config_test_files/non_assignment.config",
		"config_test_files/no_variable.config",
		"config_test_files/duplicates.config",
		"config_test_files/invalid_var.config",
		"config_test_files/invalid_type.config",
	}

	for i := range fnames {
		_, vars := makeDemoVars()
		err := ReadConfig(fnames[i], vars)
		if err == nil {
			t.Errorf("%d) Expected an error from %s, got none.",
				i+1, fnames[i])
		} else if testing.Verbose() {
			fmt.Printf("%s:\n%s\n", fnames[i], err.Error())
		}
	}
}

func TestValidFlags(t *testing.T) {
	config, vars := makeDemoVars()
	flags := []string{
		"--Count", "16",
		"--Steps", "1, 2, 3",
		"--Scale", "16",
		"--Weights", "1", "2", "3",
		"--verbose", "true",
		"---Toggles", "true, true", "false",
	}

	err := ReadFlags(flags, vars)
	if err != nil {
		t.Fatalf("Expected clean flag parsing, but got the error '%s'",
			err.Error())
	}
	switch {
	case config.count != 16:
		t.Errorf("Flag Count not set.")
	case !slices.Equal(config.steps, []int64{1, 2, 3}):
		t.Errorf("Flag Steps not set.")
	case config.scale != 16:
		t.Errorf("Flag Scale not set.")
	case !slices.Equal(config.weights, []float64{1, 2, 3}):
		t.Errorf("Flag Weights not set.")
	case !config.verbose:
		t.Errorf("Flag Verbose not set.")
	case !slices.Equal(config.toggles, []bool{true, true, false}):
		t.Errorf("Flag Toggles not set.")
	}
}

func TestInvalidFlags(t *testing.T) {
	table := [][]string{
		{"16", "--Count"},
		{"--Count"},
		{"--Count", "16", "--Mystery", "5"},
		{"--Count", "meow"},
		{"--", "3"},
	}

	for i := range table {
		_, vars := makeDemoVars()
		err := ReadFlags(table[i], vars)
		if err == nil {
			t.Errorf("%d) No error was reported for the flags %v",
				i+1, table[i])
		} else if testing.Verbose() {
			fmt.Println(err.Error())
		}
	}
}

func TestBareBoolFlag(t *testing.T) {
	config, vars := makeDemoVars()
	err := ReadFlags([]string{"--Verbose", "--Count", "3"}, vars)
	if err != nil {
		t.Fatalf("Could not parse a bare bool flag: got the error '%s'",
			err.Error())
	}
	if !config.verbose {
		t.Errorf("Bare flag Verbose not set.")
	}
	if config.count != 3 {
		t.Errorf("Flag Count not set.")
	}
}

func TestFlagsReplaceConfigValues(t *testing.T) {
	config, vars := makeDemoVars()
	err := ReadConfig("config_test_files/success.config", vars)
	if err != nil {
		t.Fatalf("Could not read success.config: %s", err.Error())
	}
	err = ReadFlags([]string{"--Steps", "8", "--Tags", "gray"}, vars)
	if err != nil {
		t.Fatalf("Could not parse valid flags: got the error '%s'",
			err.Error())
	}

	if !slices.Equal(config.steps, []int64{8}) {
		t.Errorf("Expected steps = [8], got %v", config.steps)
	}
	if !slices.Equal(config.tags, []string{"gray"}) {
		t.Errorf("Expected tags = [gray], got %v", config.tags)
	}
}
