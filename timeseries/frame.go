package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrColumnNotFound is returned when a requested series name is absent
	// from a frame.
	ErrColumnNotFound = errors.New("column not found in frame")

	// ErrInteriorGap is returned when a column has missing values between
	// its first and last observed cells.
	ErrInteriorGap = errors.New("column has missing values inside its observed range")
)

// frameTimeFormats are the date layouts accepted in a frame's first column.
// Housing price exports commonly use year-month strings.
var frameTimeFormats = []string{
	"2006-01",
	"2006-01-02",
	"2006/01/02",
	"01/2006",
	"1/2/2006",
	"Jan 2006",
}

// Frame is a wide table of aligned series: one shared time index, one column
// per geographic key. Cells may be missing (recorded as NaN) where a key has
// no observation for a period.
type Frame struct {
	times   []time.Time
	names   []string
	columns map[string][]float64
}

// LoadFrame reads a wide CSV file. The first column holds dates; every other
// column is a named series.
func LoadFrame(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer file.Close()

	f, err := ReadFrame(file)
	if err != nil {
		return nil, fmt.Errorf("read frame %s: %w", path, err)
	}
	return f, nil
}

// ReadFrame parses wide CSV data from r. The header row names the columns;
// blank, NA, NaN, and null cells are recorded as missing.
func ReadFrame(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, errors.New("frame needs a date column and at least one series column")
	}

	names := make([]string, 0, len(header)-1)
	for _, h := range header[1:] {
		names = append(names, strings.TrimSpace(strings.Trim(h, "\"")))
	}

	f := &Frame{
		names:   names,
		columns: make(map[string][]float64, len(names)),
	}
	for _, name := range names {
		f.columns[name] = nil
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(record))
		}

		ts, err := parseFrameTime(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		f.times = append(f.times, ts)

		for i, name := range names {
			f.columns[name] = append(f.columns[name], parseFrameCell(record[i+1]))
		}
	}

	if len(f.times) == 0 {
		return nil, errors.New("frame has no data rows")
	}
	for i := 1; i < len(f.times); i++ {
		if !f.times[i].After(f.times[i-1]) {
			return nil, fmt.Errorf("%w: row %d", ErrNotMonotonic, i+2)
		}
	}
	return f, nil
}

func parseFrameTime(cell string) (time.Time, error) {
	cell = strings.TrimSpace(strings.Trim(cell, "\""))
	for _, layout := range frameTimeFormats {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", cell)
}

func parseFrameCell(cell string) float64 {
	cell = strings.TrimSpace(strings.Trim(cell, "\""))
	switch cell {
	case "", "NA", "NaN", "null":
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Len returns the number of rows in the shared time index.
func (f *Frame) Len() int {
	return len(f.times)
}

// Columns returns the series names in sorted order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	sort.Strings(out)
	return out
}

// HasColumn reports whether the frame carries the named series.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.columns[name]
	return ok
}

// Column extracts one named series. Missing cells at the head and tail are
// dropped, matching keys that enter or leave the panel; a gap between
// observed cells is an error.
func (f *Frame) Column(name string) (*Series, error) {
	values, ok := f.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}

	first, last := -1, -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if first == -1 {
			first = i
		}
		last = i
	}
	if first == -1 {
		return nil, fmt.Errorf("column %q: %w", name, ErrEmptySeries)
	}

	out := make([]float64, 0, last-first+1)
	timestamps := make([]time.Time, 0, last-first+1)
	for i := first; i <= last; i++ {
		if math.IsNaN(values[i]) {
			return nil, fmt.Errorf("column %q: %w at row %d", name, ErrInteriorGap, i)
		}
		out = append(out, values[i])
		timestamps = append(timestamps, f.times[i])
	}

	return &Series{Name: name, Timestamps: timestamps, Values: out}, nil
}
