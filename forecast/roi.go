package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrDegenerateBase is returned when the ROI reference value is zero or
// non-finite.
var ErrDegenerateBase = errors.New("roi base value is degenerate")

// ROI expresses a forecast frame as percentage return against an initial
// investment: every column is normalized by the first point-forecast value,
// the purchase price an investor would pay at the start of the horizon.
type ROI struct {
	Timestamps []time.Time `json:"timestamps"`
	Forecast   []float64   `json:"forecast"`
	Lower      []float64   `json:"lower_ci"`
	Upper      []float64   `json:"upper_ci"`

	// Base is the investment cost the returns are measured against.
	Base float64 `json:"base"`
}

// ROIRow is one row of an ROI frame, used for the end-of-horizon return.
type ROIRow struct {
	Timestamp time.Time `json:"timestamp"`
	Forecast  float64   `json:"forecast"`
	Lower     float64   `json:"lower_ci"`
	Upper     float64   `json:"upper_ci"`
}

// ComputeROI derives the return-on-investment frame from a forecast. The
// base is the first point-forecast value; every cell becomes
// (value-base)/base*100. The first point-forecast return is therefore
// exactly zero.
func ComputeROI(r *Result) (*ROI, error) {
	if r == nil || r.Horizon() == 0 {
		return nil, ErrHorizon
	}

	base := r.Forecast[0]
	if base == 0 || math.IsNaN(base) || math.IsInf(base, 0) {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateBase, base)
	}

	pct := func(values []float64) []float64 {
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = (v - base) / base * 100
		}
		return out
	}

	timestamps := make([]time.Time, len(r.Timestamps))
	copy(timestamps, r.Timestamps)

	return &ROI{
		Timestamps: timestamps,
		Forecast:   pct(r.Forecast),
		Lower:      pct(r.Lower),
		Upper:      pct(r.Upper),
		Base:       base,
	}, nil
}

// Final returns the end-of-horizon row, the figure a result bundle retains.
func (r *ROI) Final() ROIRow {
	last := len(r.Forecast) - 1
	return ROIRow{
		Timestamp: r.Timestamps[last],
		Forecast:  r.Forecast[last],
		Lower:     r.Lower[last],
		Upper:     r.Upper[last],
	}
}
