package version

import (
	"testing"
)

func TestSourceVersionParses(t *testing.T) {
	major, minor, patch, err := Parse(SourceVersion)
	if err != nil {
		t.Fatalf("Parse(SourceVersion) failed: %s", err.Error())
	}
	if major != 1 || minor != 2 || patch != 0 {
		t.Errorf("Expected SourceVersion to parse to (1, 2, 0), got "+
			"(%d, %d, %d)", major, minor, patch)
	}
}

func TestParse(t *testing.T) {
	table := []struct {
		s                   string
		major, minor, patch int
		valid               bool
	}{
		{"0.0.0", 0, 0, 0, true},
		{"1.02.3", 1, 2, 3, true},
		{"10.20.30", 10, 20, 30, true},
		{"", 0, 0, 0, false},
		{"0", 0, 0, 0, false},
		{"0.0", 0, 0, 0, false},
		{"0.0.0.0", 0, 0, 0, false},
		{"0.-1.0", 0, 0, 0, false},
		{"a.b.c", 0, 0, 0, false},
		{"1.5.0 ", 0, 0, 0, false},
	}

	for i := range table {
		major, minor, patch, err := Parse(table[i].s)
		if table[i].valid && err != nil {
			t.Errorf("%d) Expected Parse('%s') to succeed, but got the "+
				"error '%s'", i+1, table[i].s, err.Error())
		} else if !table[i].valid && err == nil {
			t.Errorf("%d) Expected Parse('%s') to fail, but it didn't.",
				i+1, table[i].s)
		} else if table[i].valid && (major != table[i].major ||
			minor != table[i].minor || patch != table[i].patch) {
			t.Errorf("%d) Expected Parse('%s') = (%d, %d, %d), got "+
				"(%d, %d, %d)", i+1, table[i].s, table[i].major,
				table[i].minor, table[i].patch, major, minor, patch)
		}
	}
}
