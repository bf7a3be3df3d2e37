package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyTimestamps(n int) []time.Time {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, i, 0)
	}
	return out
}

func testResult(t *testing.T, forecast, lower, upper []float64) *Result {
	t.Helper()
	r, err := NewResult(monthlyTimestamps(len(forecast)), forecast, lower, upper, 0.95)
	require.NoError(t, err)
	return r
}

func TestNewResult(t *testing.T) {
	r := testResult(t,
		[]float64{100, 102, 104},
		[]float64{95, 96, 97},
		[]float64{105, 108, 111})

	assert.Equal(t, 3, r.Horizon())
	assert.Equal(t, 0.95, r.Confidence)
	assert.True(t, r.End().After(r.Start()))
}

func TestNewResultEmpty(t *testing.T) {
	_, err := NewResult(nil, nil, nil, nil, 0.95)
	assert.ErrorIs(t, err, ErrHorizon)
}

func TestNewResultMisaligned(t *testing.T) {
	_, err := NewResult(monthlyTimestamps(3),
		[]float64{1, 2, 3}, []float64{0, 1}, []float64{2, 3, 4}, 0.95)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestNewResultNonIncreasingTimestamps(t *testing.T) {
	ts := monthlyTimestamps(3)
	ts[2] = ts[1]
	_, err := NewResult(ts, []float64{1, 2, 3}, []float64{0, 1, 2}, []float64{2, 3, 4}, 0.95)
	assert.Error(t, err)
}

func TestComputeROI(t *testing.T) {
	r := testResult(t,
		[]float64{200000, 210000, 220000},
		[]float64{190000, 195000, 198000},
		[]float64{210000, 225000, 242000})

	roi, err := ComputeROI(r)
	require.NoError(t, err)

	assert.Equal(t, 200000.0, roi.Base)
	// The base period has zero return by construction.
	assert.Zero(t, roi.Forecast[0])
	assert.InDelta(t, 5.0, roi.Forecast[1], 1e-9)
	assert.InDelta(t, 10.0, roi.Forecast[2], 1e-9)
	assert.InDelta(t, -5.0, roi.Lower[0], 1e-9)
	assert.InDelta(t, 21.0, roi.Upper[2], 1e-9)
}

func TestComputeROIFinal(t *testing.T) {
	r := testResult(t,
		[]float64{100, 110, 125},
		[]float64{90, 95, 100},
		[]float64{110, 125, 150})

	roi, err := ComputeROI(r)
	require.NoError(t, err)

	final := roi.Final()
	assert.Equal(t, r.Timestamps[2], final.Timestamp)
	assert.InDelta(t, 25.0, final.Forecast, 1e-9)
	assert.InDelta(t, 0.0, final.Lower, 1e-9)
	assert.InDelta(t, 50.0, final.Upper, 1e-9)
}

func TestComputeROIDegenerateBase(t *testing.T) {
	r := testResult(t,
		[]float64{0, 10, 20},
		[]float64{-5, 5, 15},
		[]float64{5, 15, 25})

	_, err := ComputeROI(r)
	assert.ErrorIs(t, err, ErrDegenerateBase)
}

func TestComputeROINil(t *testing.T) {
	_, err := ComputeROI(nil)
	assert.ErrorIs(t, err, ErrHorizon)
}

func TestRegistryUnknownBackend(t *testing.T) {
	_, err := New("prophet", Config{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "prophet")
}

func TestRegistryShippedBackend(t *testing.T) {
	assert.Contains(t, Backends(), SARIMABackend)

	est, err := New(SARIMABackend, Config{SeasonalPeriod: 12})
	require.NoError(t, err)
	assert.Equal(t, SARIMABackend, est.Name())
	assert.Nil(t, est.Summary(), "summary must be nil before fitting")
	assert.Nil(t, est.Diagnostics(), "diagnostics must be nil before fitting")

	var unknown error
	_, unknown = est.Forecast(12, 0.95)
	assert.Error(t, unknown, "forecast before fit must error")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(SARIMABackend, newSARIMAEstimator)
	})
}
