/*package eprem reads the NetCDF output of the EPREM energetic particle
model. A simulation writes one file per observer: "stream" observers follow
a node stream as it advects outward with the solar wind, and "point"
observers interpolate to a fixed location. Both carry 2-D (time, shell) MHD
quantities and a 4-D (time, shell, species, energy) particle flux.*/
package eprem

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
)

var observerFile = regexp.MustCompile(`^(p_obs|obs|flux)([0-9]{6})\.nc$`)

// A Dataset is a directory of EPREM output. Stream and point observers are
// discovered by file name.
type Dataset struct {
	Dir     string
	Streams []int
	Points  []int

	streamFiles map[int]string
	pointFiles  map[int]string
}

// OpenDataset scans dir for EPREM observer files.
func OpenDataset(dir string) (*Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil { return nil, err }

	d := &Dataset{
		Dir:         dir,
		streamFiles: make(map[int]string),
		pointFiles:  make(map[int]string),
	}
	for _, entry := range entries {
		if entry.IsDir() { continue }
		m := observerFile.FindStringSubmatch(entry.Name())
		if m == nil { continue }
		n, _ := strconv.Atoi(m[2])
		path := dir + "/" + entry.Name()
		switch m[1] {
		case "p_obs":
			d.pointFiles[n] = path
		case "obs":
			// Full observer files win over flux-only files.
			d.streamFiles[n] = path
		case "flux":
			if _, ok := d.streamFiles[n]; !ok {
				d.streamFiles[n] = path
			}
		}
	}

	for n := range d.streamFiles { d.Streams = append(d.Streams, n) }
	for n := range d.pointFiles { d.Points = append(d.Points, n) }
	sort.Ints(d.Streams)
	sort.Ints(d.Points)

	if len(d.Streams) == 0 && len(d.Points) == 0 {
		return nil, fmt.Errorf(
			"I couldn't find any EPREM observer files in %s.", dir,
		)
	}
	return d, nil
}

// StreamPath returns the file backing stream observer n.
func (d *Dataset) StreamPath(n int) (string, error) {
	path, ok := d.streamFiles[n]
	if !ok {
		return "", fmt.Errorf(
			"The dataset in %s has no stream observer %d.", d.Dir, n,
		)
	}
	return path, nil
}

// PointPath returns the file backing point observer n.
func (d *Dataset) PointPath(n int) (string, error) {
	path, ok := d.pointFiles[n]
	if !ok {
		return "", fmt.Errorf(
			"The dataset in %s has no point observer %d.", d.Dir, n,
		)
	}
	return path, nil
}

// Stream opens stream observer n.
func (d *Dataset) Stream(n int) (*Observer, error) {
	path, err := d.StreamPath(n)
	if err != nil { return nil, err }
	return OpenObserver(path)
}

// Point opens point observer n.
func (d *Dataset) Point(n int) (*Observer, error) {
	path, err := d.PointPath(n)
	if err != nil { return nil, err }
	return OpenObserver(path)
}
