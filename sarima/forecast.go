package sarima

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultConfidence is the interval coverage used when a caller passes a
// value outside (0, 1).
const DefaultConfidence = 0.95

// Prediction holds an out-of-sample forecast: aligned point forecasts and
// interval bounds at timestamps continuing directly after the training
// series.
type Prediction struct {
	Timestamps []time.Time
	Forecast   []float64
	Lower      []float64
	Upper      []float64
	Confidence float64
}

// Horizon returns the number of forecasted steps.
func (p *Prediction) Horizon() int {
	return len(p.Forecast)
}

// Forecast produces point forecasts and symmetric confidence intervals for
// the given number of steps ahead. Forecasts run the fitted recursion
// forward on the differenced scale with future shocks at zero, then undo
// seasonal and non-seasonal differencing. Interval width grows with the
// horizon for integrated models.
func (m *Model) Forecast(steps int, confidence float64) (*Prediction, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if steps < 1 {
		return nil, fmt.Errorf("forecast steps must be positive, got %d", steps)
	}
	if confidence <= 0 || confidence >= 1 {
		confidence = DefaultConfidence
	}

	o := m.Order
	y := m.diffData.Values
	n := len(y)

	extY := make([]float64, n+steps)
	copy(extY, y)
	extResiduals := make([]float64, n+steps)
	copy(extResiduals, m.residuals)

	for h := 0; h < steps; h++ {
		t := n + h
		extY[t] = m.predictOne(extY, extResiduals, t, n)
	}

	forecasts := make([]float64, steps)
	copy(forecasts, extY[n:])
	forecasts = m.integrate(forecasts)

	z := distuv.UnitNormal.Quantile((1 + confidence) / 2)
	lower := make([]float64, steps)
	upper := make([]float64, steps)
	baseSE := math.Sqrt(m.Variance)

	for h := 0; h < steps; h++ {
		growth := 1.0
		if o.D > 0 {
			growth *= math.Sqrt(float64(h + 1))
		}
		if o.SD > 0 && o.M > 0 {
			growth *= math.Sqrt(float64(h/o.M + 1))
		}
		se := baseSE * growth
		lower[h] = forecasts[h] - z*se
		upper[h] = forecasts[h] + z*se
	}

	return &Prediction{
		Timestamps: m.data.FutureTimestamps(steps),
		Forecast:   forecasts,
		Lower:      lower,
		Upper:      upper,
		Confidence: confidence,
	}, nil
}

// integrate undoes the differencing applied during Fit, seasonal first, then
// non-seasonal, anchoring on the tail of the training series.
func (m *Model) integrate(forecasts []float64) []float64 {
	o := m.Order
	original := m.data.Values
	n := len(original)

	result := make([]float64, len(forecasts))
	copy(result, forecasts)

	// Seasonal integration needs the non-seasonally differenced training
	// values, since that was the scale seasonal differencing was applied on.
	nonSeasonal := original
	for i := 0; i < o.D; i++ {
		if len(nonSeasonal) <= 1 {
			break
		}
		next := make([]float64, len(nonSeasonal)-1)
		for j := 1; j < len(nonSeasonal); j++ {
			next[j-1] = nonSeasonal[j] - nonSeasonal[j-1]
		}
		nonSeasonal = next
	}

	if o.SD > 0 && o.M > 0 {
		nDiff := len(nonSeasonal)
		for i := 0; i < o.SD; i++ {
			for j := range result {
				if j < o.M {
					if idx := nDiff - o.M + j; idx >= 0 && idx < nDiff {
						result[j] += nonSeasonal[idx]
					}
				} else {
					result[j] += result[j-o.M]
				}
			}
		}
	}

	for i := 0; i < o.D; i++ {
		last := original[n-1]
		for j := range result {
			if j == 0 {
				result[j] += last
			} else {
				result[j] += result[j-1]
			}
		}
	}

	return result
}
