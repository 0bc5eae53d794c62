/*package indexer converts the raw string values of command line flags into
either array indices or measured values. Most of the quantities a user can
ask for, times and locations and energies, may be named both ways: "--Time 5"
means the sixth time step, while "--Time 10.5 hour" means the output time
closest to 10.5 hours.*/
package indexer

import (
	"fmt"
	"strconv"
)

// An Argument is the resolved form of a command line selector. It is either
// an Indices value or a Measurement value.
type Argument interface {
	// Len returns the number of selected values.
	Len() int
}

// Indices selects elements of an array axis by position.
type Indices []int

func (idx Indices) Len() int { return len(idx) }

// A Measurement selects elements of an array axis by physical value. The
// unit is not interpreted here.
type Measurement struct {
	Values []float64
	Unit   string
}

func (m Measurement) Len() int { return len(m.Values) }

// Resolve converts flag values into an Argument. An empty or missing flag
// selects index 0. If every token parses as an integer, the tokens are
// indices. Otherwise the last token is taken to be a unit and the tokens
// before it must parse as numbers.
func Resolve(args []string) (Argument, error) {
	if len(args) == 0 { return Indices{0}, nil }

	if len(args) == 1 {
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf(
				"I couldn't convert '%s' to an array index.", args[0],
			)
		}
		return Indices{i}, nil
	}

	idx := make(Indices, len(args))
	allInts := true
	for j := range args {
		i, err := strconv.Atoi(args[j])
		if err != nil {
			allInts = false
			break
		}
		idx[j] = i
	}
	if allInts { return idx, nil }

	unit := args[len(args)-1]
	values := make([]float64, len(args)-1)
	for j := range values {
		f, err := strconv.ParseFloat(args[j], 64)
		if err != nil {
			return nil, fmt.Errorf(
				"I couldn't convert '%s' to a number.", args[j],
			)
		}
		values[j] = f
	}
	return Measurement{Values: values, Unit: unit}, nil
}
