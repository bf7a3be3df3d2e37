package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calderaproj/housecast/timeseries"
)

func testSeries(values []float64) *timeseries.Series {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	return timeseries.NewMonthly("30331", start, values)
}

func TestAccuracyPerfectForecast(t *testing.T) {
	actual := []float64{100, 105, 110, 115}
	r := testResult(t, actual,
		[]float64{95, 100, 105, 110},
		[]float64{105, 110, 115, 120})

	report, err := Accuracy(r, testSeries(actual))
	require.NoError(t, err)

	assert.Zero(t, report.RMSE)
	assert.Zero(t, report.MAE)
	assert.Zero(t, report.MAPE)
	assert.Equal(t, 4, report.N)
}

func TestAccuracyKnownErrors(t *testing.T) {
	r := testResult(t,
		[]float64{110, 90},
		[]float64{100, 80},
		[]float64{120, 100})

	// Errors are +10 and -10 against actuals 100 and 100.
	report, err := Accuracy(r, testSeries([]float64{100, 100}))
	require.NoError(t, err)

	assert.InDelta(t, 10.0, report.RMSE, 1e-9)
	assert.InDelta(t, 10.0, report.MAE, 1e-9)
	assert.InDelta(t, 10.0, report.MAPE, 1e-9)
}

func TestAccuracyLengthMismatch(t *testing.T) {
	r := testResult(t,
		[]float64{1, 2, 3},
		[]float64{0, 1, 2},
		[]float64{2, 3, 4})

	_, err := Accuracy(r, testSeries([]float64{1, 2}))
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestAccuracyEmptyTest(t *testing.T) {
	r := testResult(t, []float64{1}, []float64{0}, []float64{2})
	_, err := Accuracy(r, &timeseries.Series{})
	assert.ErrorIs(t, err, timeseries.ErrEmptySeries)
}

func TestAccuracyZeroActual(t *testing.T) {
	r := testResult(t,
		[]float64{1, 2},
		[]float64{0, 1},
		[]float64{2, 3})

	report, err := Accuracy(r, testSeries([]float64{0, 2}))
	require.NoError(t, err)

	// MAPE is undefined when an actual value is zero; RMSE/MAE still hold.
	assert.True(t, math.IsNaN(report.MAPE))
	assert.False(t, math.IsNaN(report.RMSE))
}
