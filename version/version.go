// Package version pins the release number that config files are checked
// against.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the semantic version of this copy of the source. The
// Version variable of every config file must match it before a mode is
// allowed to run.
const SourceVersion = "1.2.0"

// Parse splits a semantic version string into its major, minor, and
// patch numbers.
func Parse(s string) (major, minor, patch int, err error) {
	badForm := fmt.Errorf(
		"A version string takes the form of three period-separated "+
			"non-negative numbers, and '%s' doesn't.", s,
	)

	toks := strings.Split(s, ".")
	if len(toks) != 3 { return -1, -1, -1, badForm }

	var nums [3]int
	for i := range toks {
		n, err := strconv.Atoi(toks[i])
		if err != nil || n < 0 { return -1, -1, -1, badForm }
		nums[i] = n
	}

	return nums[0], nums[1], nums[2], nil
}
