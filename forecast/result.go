package forecast

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrHorizon is returned for a non-positive forecast horizon.
	ErrHorizon = errors.New("forecast horizon must be positive")

	// ErrLengthMismatch is returned when forecast columns or a comparison
	// series disagree on length.
	ErrLengthMismatch = errors.New("sequence lengths do not match")
)

// Result is a typed forecast frame: point forecasts with confidence interval
// bounds at future timestamps contiguous with the source series. All three
// columns are aligned with Timestamps.
type Result struct {
	Timestamps []time.Time `json:"timestamps"`
	Forecast   []float64   `json:"forecast"`
	Lower      []float64   `json:"lower_ci"`
	Upper      []float64   `json:"upper_ci"`
	Confidence float64     `json:"confidence"`
}

// NewResult builds a validated forecast frame. It errors on an empty
// horizon, misaligned columns, or timestamps that are not strictly
// increasing.
func NewResult(timestamps []time.Time, forecast, lower, upper []float64, confidence float64) (*Result, error) {
	n := len(forecast)
	if n == 0 {
		return nil, ErrHorizon
	}
	if len(timestamps) != n || len(lower) != n || len(upper) != n {
		return nil, fmt.Errorf("%w: timestamps=%d forecast=%d lower=%d upper=%d",
			ErrLengthMismatch, len(timestamps), n, len(lower), len(upper))
	}
	for i := 1; i < n; i++ {
		if !timestamps[i].After(timestamps[i-1]) {
			return nil, fmt.Errorf("forecast timestamps must be strictly increasing at index %d", i)
		}
	}
	return &Result{
		Timestamps: timestamps,
		Forecast:   forecast,
		Lower:      lower,
		Upper:      upper,
		Confidence: confidence,
	}, nil
}

// Horizon returns the number of forecasted steps.
func (r *Result) Horizon() int {
	return len(r.Forecast)
}

// Start returns the first forecasted timestamp.
func (r *Result) Start() time.Time {
	if len(r.Timestamps) == 0 {
		return time.Time{}
	}
	return r.Timestamps[0]
}

// End returns the final forecasted timestamp.
func (r *Result) End() time.Time {
	if len(r.Timestamps) == 0 {
		return time.Time{}
	}
	return r.Timestamps[len(r.Timestamps)-1]
}
