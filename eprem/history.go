package eprem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// A History is a time series for a single simulation node, the contents of
// one of the plain text files the write-history mode produces. The header
// metadata is kept verbatim so a round trip through a file is lossless.
type History struct {
	Meta   map[string]string
	Times  []float64
	Values []float64
}

// Header keys are written in this order. Anything else in Meta follows
// alphabetically.
var metaOrder = []string{
	"data name", "time unit", "data unit", "species", "energy",
}

// Name returns the "data name" metadata entry.
func (h *History) Name() string { return h.Meta["data name"] }

// TimeUnit returns the "time unit" metadata entry.
func (h *History) TimeUnit() string { return h.Meta["time unit"] }

// DataUnit returns the "data unit" metadata entry.
func (h *History) DataUnit() string { return h.Meta["data unit"] }

// Write writes the history as a single '#' header line of "key: value;"
// pairs followed by one "time value" row per step.
func (h *History) Write(w io.Writer) error {
	parts := []string{"#"}
	seen := make(map[string]bool)
	for _, key := range metaOrder {
		if val, ok := h.Meta[key]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s;", key, val))
			seen[key] = true
		}
	}
	rest := []string{}
	for key := range h.Meta {
		if !seen[key] { rest = append(rest, key) }
	}
	sort.Strings(rest)
	for _, key := range rest {
		parts = append(parts, fmt.Sprintf("%s: %s;", key, h.Meta[key]))
	}

	if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
		return err
	}
	for i := range h.Times {
		_, err := fmt.Fprintf(w, "%s %s\n",
			strconv.FormatFloat(h.Times[i], 'g', -1, 64),
			strconv.FormatFloat(h.Values[i], 'g', -1, 64),
		)
		if err != nil { return err }
	}
	return nil
}

// WriteFile writes the history to the named file.
func (h *History) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil { return err }
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := h.Write(w); err != nil { return err }
	return w.Flush()
}

// ReadHistory parses a node history. The first non-blank line must be a
// '#' header; later comment lines are ignored. A trailing header pair may
// omit its semicolon.
func ReadHistory(r io.Reader) (*History, error) {
	h := &History{Meta: make(map[string]string)}
	sawHeader := false

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 { continue }

		if strings.HasPrefix(line, "#") {
			if !sawHeader {
				parseHistoryHeader(line, h.Meta)
				sawHeader = true
			}
			continue
		}
		if !sawHeader {
			return nil, fmt.Errorf(
				"I expected a '#' header before the data rows, but line "+
					"%d is '%s'.", lineNum, line,
			)
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf(
				"Line %d has %d columns instead of 2.", lineNum, len(fields),
			)
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf(
				"I couldn't parse the time '%s' on line %d.",
				fields[0], lineNum,
			)
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf(
				"I couldn't parse the value '%s' on line %d.",
				fields[1], lineNum,
			)
		}
		h.Times = append(h.Times, t)
		h.Values = append(h.Values, v)
	}
	if err := scanner.Err(); err != nil { return nil, err }
	if !sawHeader {
		return nil, fmt.Errorf("The history has no header line.")
	}
	return h, nil
}

// ReadHistoryFile reads a node history from the named file.
func ReadHistoryFile(path string) (*History, error) {
	f, err := os.Open(path)
	if err != nil { return nil, err }
	defer f.Close()
	h, err := ReadHistory(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", path, err.Error())
	}
	return h, nil
}

func parseHistoryHeader(line string, meta map[string]string) {
	line = strings.TrimLeft(line, "# ")
	for _, part := range strings.Split(line, ";") {
		part = strings.TrimSpace(part)
		if len(part) == 0 { continue }
		colon := strings.Index(part, ":")
		if colon == -1 { continue }
		key := strings.TrimSpace(part[:colon])
		val := strings.TrimSpace(part[colon+1:])
		if len(key) == 0 { continue }
		meta[key] = val
	}
}
