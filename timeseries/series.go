// Package timeseries provides the core price series container, train/test
// splitting, and wide-frame CSV loading for zipcode-level housing data.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptySeries is returned when an operation requires at least one
	// observation.
	ErrEmptySeries = errors.New("series has no observations")

	// ErrNotMonotonic is returned when timestamps are not strictly
	// increasing.
	ErrNotMonotonic = errors.New("timestamps must be strictly increasing")
)

// Series is an ordered sequence of (timestamp, value) observations for one
// named geographic key, typically a zipcode. Timestamps are strictly
// increasing with no duplicates; values are real-valued prices.
type Series struct {
	Name       string
	Timestamps []time.Time
	Values     []float64
}

// New creates a series from explicit timestamps and values. It validates the
// ordering invariant.
func New(name string, timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, fmt.Errorf("timestamps (%d) and values (%d) must have the same length",
			len(timestamps), len(values))
	}
	s := &Series{Name: name, Timestamps: timestamps, Values: values}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMonthly creates a series with generated calendar-month timestamps
// starting at start. Housing price data is published monthly, so this is the
// usual constructor for synthetic and test data.
func NewMonthly(name string, start time.Time, values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = start.AddDate(0, i, 0)
	}
	return &Series{Name: name, Timestamps: timestamps, Values: values}
}

// Validate checks the series invariants: equal lengths, strictly increasing
// timestamps, finite values.
func (s *Series) Validate() error {
	if len(s.Timestamps) != len(s.Values) {
		return fmt.Errorf("timestamps (%d) and values (%d) must have the same length",
			len(s.Timestamps), len(s.Values))
	}
	for i := 1; i < len(s.Timestamps); i++ {
		if !s.Timestamps[i].After(s.Timestamps[i-1]) {
			return fmt.Errorf("%w: index %d", ErrNotMonotonic, i)
		}
	}
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value at index %d", i)
		}
	}
	return nil
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.Values)
}

// First returns the first value.
func (s *Series) First() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return s.Values[0]
}

// Last returns the final value.
func (s *Series) Last() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return s.Values[len(s.Values)-1]
}

// StartTime returns the first timestamp.
func (s *Series) StartTime() time.Time {
	if len(s.Timestamps) == 0 {
		return time.Time{}
	}
	return s.Timestamps[0]
}

// EndTime returns the final timestamp.
func (s *Series) EndTime() time.Time {
	if len(s.Timestamps) == 0 {
		return time.Time{}
	}
	return s.Timestamps[len(s.Timestamps)-1]
}

// Mean returns the arithmetic mean of the values.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance returns the sample variance of the values.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std returns the sample standard deviation of the values.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the smallest value.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the largest value.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// Slice returns a copy of the sub-series [start, end). Out-of-range bounds
// are clipped.
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])
	timestamps := make([]time.Time, end-start)
	copy(timestamps, s.Timestamps[start:end])

	return &Series{Name: s.Name, Timestamps: timestamps, Values: values}
}

// Copy returns a deep copy.
func (s *Series) Copy() *Series {
	return s.Slice(0, len(s.Values))
}

// LastYears returns the trailing window covering the given number of years at
// the given observation frequency. Series shorter than the window are
// returned whole.
func (s *Series) LastYears(years, periodsPerYear int) *Series {
	n := years * periodsPerYear
	if n <= 0 || n >= len(s.Values) {
		return s.Copy()
	}
	return s.Slice(len(s.Values)-n, len(s.Values))
}

// Diff returns the first difference of the values, losing the first
// observation.
func (s *Series) Diff() *Series {
	return s.diffByLag(1, "_diff")
}

// SeasonalDiff returns the lag-m seasonal difference, losing the first m
// observations.
func (s *Series) SeasonalDiff(m int) *Series {
	return s.diffByLag(m, "_sdiff")
}

func (s *Series) diffByLag(lag int, suffix string) *Series {
	if lag <= 0 || len(s.Values) <= lag {
		return &Series{Name: s.Name + suffix}
	}
	values := make([]float64, len(s.Values)-lag)
	for i := lag; i < len(s.Values); i++ {
		values[i-lag] = s.Values[i] - s.Values[i-lag]
	}
	timestamps := make([]time.Time, len(values))
	copy(timestamps, s.Timestamps[lag:])
	return &Series{Name: s.Name + suffix, Timestamps: timestamps, Values: values}
}

// FutureTimestamps generates n timestamps continuing directly after the final
// observation. Monthly cadence continues along calendar months; any other
// cadence continues at the spacing of the last two observations.
func (s *Series) FutureTimestamps(n int) []time.Time {
	if n <= 0 || len(s.Timestamps) == 0 {
		return nil
	}
	last := s.Timestamps[len(s.Timestamps)-1]
	out := make([]time.Time, n)

	if monthlyCadence(s.Timestamps) {
		for i := range out {
			out[i] = last.AddDate(0, i+1, 0)
		}
		return out
	}

	step := time.Duration(30*24) * time.Hour
	if len(s.Timestamps) >= 2 {
		step = last.Sub(s.Timestamps[len(s.Timestamps)-2])
	}
	for i := range out {
		out[i] = last.Add(time.Duration(i+1) * step)
	}
	return out
}

func monthlyCadence(timestamps []time.Time) bool {
	if len(timestamps) < 2 {
		return true
	}
	n := len(timestamps)
	gap := timestamps[n-1].Sub(timestamps[n-2])
	return gap >= 28*24*time.Hour && gap <= 31*24*time.Hour
}
