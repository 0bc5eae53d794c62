// Package logging holds the process-wide verbosity level.
package logging

import (
	"fmt"
	"runtime"
)

// A Flag is a verbosity level. The levels are ordered and each one
// includes the output of the levels below it, so callers can compare
// against Mode with >=.
type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// Mode is written once, while the global config is validated, and only
// read after that.
var Mode = Nil

// MemString reports the current memory use of the process.
func MemString() string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Heap - %d MB; Total allocated - %d MB; From OS - %d MB; "+
			"GC cycles - %d",
		ms.HeapAlloc>>20, ms.TotalAlloc>>20, ms.Sys>>20, ms.NumGC,
	)
}
