package indexer

import (
	"testing"
)

func argumentsEq(x, y Argument) bool {
	switch xx := x.(type) {
	case Indices:
		yy, ok := y.(Indices)
		if !ok || len(xx) != len(yy) { return false }
		for i := range xx {
			if xx[i] != yy[i] { return false }
		}
		return true
	case Measurement:
		yy, ok := y.(Measurement)
		if !ok || xx.Unit != yy.Unit { return false }
		if len(xx.Values) != len(yy.Values) { return false }
		for i := range xx.Values {
			if xx.Values[i] != yy.Values[i] { return false }
		}
		return true
	}
	return false
}

func TestResolve(t *testing.T) {
	table := []struct {
		args  []string
		out   Argument
		valid bool
	}{
		{nil, Indices{0}, true},
		{[]string{}, Indices{0}, true},
		{[]string{"3"}, Indices{3}, true},
		{[]string{"0"}, Indices{0}, true},
		{[]string{"-1"}, Indices{-1}, true},
		{[]string{"1", "2", "3"}, Indices{1, 2, 3}, true},
		{[]string{"1.5", "au"}, Measurement{[]float64{1.5}, "au"}, true},
		{[]string{"10", "50", "100", "MeV"},
			Measurement{[]float64{10, 50, 100}, "MeV"}, true},
		{[]string{"10.5", "hour"}, Measurement{[]float64{10.5}, "hour"}, true},
		{[]string{"abc"}, nil, false},
		{[]string{"1.5"}, nil, false},
		{[]string{"abc", "au"}, nil, false},
		{[]string{"1.5", "abc", "au"}, nil, false},
	}

	for i := range table {
		out, err := Resolve(table[i].args)
		if table[i].valid && err != nil {
			t.Errorf("%d) Expected Resolve(%v) to succeed, but got the "+
				"error '%s'", i+1, table[i].args, err.Error())
		} else if !table[i].valid && err == nil {
			t.Errorf("%d) Expected Resolve(%v) to fail, but got %v",
				i+1, table[i].args, out)
		} else if table[i].valid && !argumentsEq(out, table[i].out) {
			t.Errorf("%d) Expected Resolve(%v) = %v, but got %v",
				i+1, table[i].args, table[i].out, out)
		}
	}
}

func TestArgumentLen(t *testing.T) {
	table := []struct {
		arg Argument
		n   int
	}{
		{Indices{0}, 1},
		{Indices{1, 2, 3}, 3},
		{Measurement{[]float64{1.5}, "au"}, 1},
		{Measurement{[]float64{10, 50, 100}, "MeV"}, 3},
	}

	for i := range table {
		if n := table[i].arg.Len(); n != table[i].n {
			t.Errorf("%d) Expected Len() = %d, but got %d",
				i+1, table[i].n, n)
		}
	}
}
