package render

import (
	"fmt"
	"math"
	"time"

	"github.com/myoung-space-science/emmrem-analysis/units"
)

// DateLayout is the reference layout for absolute time stamps, both in
// the simulation start dates users hand us and in the labels this
// package produces.
const DateLayout = "2006-01-02 15:04:05"

// Stamp formats a simulation time as a label. day is a time in days
// since the first output. When start is non-empty it must be a date in
// the DateLayout form and the label is the absolute date stamp lying
// day + offset days after it. When start is empty the label is an
// elapsed clock and offset is ignored.
func Stamp(day float64, start string, offset float64) (string, error) {
	if start == "" {
		return ElapsedStamp(day), nil
	}
	t0, err := time.Parse(DateLayout, start)
	if err != nil {
		return "", fmt.Errorf("I couldn't parse the start date '%s'. I "+
			"expect something like '2021-01-01 00:00:00'.", start)
	}
	secs := math.Round((day + offset) * units.SecondsPerDay)
	return t0.Add(time.Duration(secs) * time.Second).Format(DateLayout), nil
}

// Stamps formats one label per time value.
func Stamps(days []float64, start string, offset float64) ([]string, error) {
	out := make([]string, len(days))
	for i, day := range days {
		s, err := Stamp(day, start, offset)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// ElapsedStamp formats a time in days as an H:MM:SS clock. The hour
// field counts total elapsed hours, so it keeps growing past 24.
func ElapsedStamp(day float64) string {
	secs := int64(math.Round(day * units.SecondsPerDay))
	sign := ""
	if secs < 0 {
		sign, secs = "-", -secs
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}

// FileStamp formats a wall clock time for use in a default output file
// name.
func FileStamp(t time.Time) string {
	return t.Format("2006-01-02-150405")
}
