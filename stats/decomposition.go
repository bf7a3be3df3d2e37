package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/calderaproj/housecast/timeseries"
)

// Decomposition holds the additive classical decomposition of a series,
// Y = Trend + Seasonal + Residual. Trend and Residual carry NaN at the edges
// where the centered moving average is undefined.
type Decomposition struct {
	Trend    []float64
	Seasonal []float64
	Residual []float64
	Period   int
}

// Decompose performs additive classical decomposition with a centered moving
// average trend. The series must cover at least two full periods.
func Decompose(s *timeseries.Series, period int) (*Decomposition, error) {
	n := s.Len()
	if period < 2 {
		return nil, fmt.Errorf("decompose: period must be at least 2, got %d", period)
	}
	if n < 2*period {
		return nil, fmt.Errorf("decompose: %w: have %d, need %d", ErrTooFewObservations, n, 2*period)
	}

	trend := centeredMovingAverage(s.Values, period)

	detrended := make([]float64, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(trend[i]) {
			detrended[i] = math.NaN()
		} else {
			detrended[i] = s.Values[i] - trend[i]
		}
	}

	// Average the detrended values within each seasonal position, then
	// center the pattern so it sums to zero.
	pattern := make([]float64, period)
	counts := make([]int, period)
	for i, v := range detrended {
		if math.IsNaN(v) {
			continue
		}
		pattern[i%period] += v
		counts[i%period]++
	}
	patternMean := 0.0
	for i := range pattern {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
		}
		patternMean += pattern[i]
	}
	patternMean /= float64(period)
	for i := range pattern {
		pattern[i] -= patternMean
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = pattern[i%period]
		if math.IsNaN(trend[i]) {
			residual[i] = math.NaN()
		} else {
			residual[i] = s.Values[i] - trend[i] - seasonal[i]
		}
	}

	return &Decomposition{
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
		Period:   period,
	}, nil
}

// SeasonalStrength measures how much of the detrended variation the seasonal
// component explains: max(0, 1 - Var(R)/Var(S+R)). Values near 1 indicate
// strong seasonality; below nsdiffsStrengthThreshold no seasonal difference
// is suggested.
func (d *Decomposition) SeasonalStrength() float64 {
	varR := varianceSkipNaN(d.Residual)

	combined := make([]float64, 0, len(d.Residual))
	for i := range d.Residual {
		if math.IsNaN(d.Residual[i]) {
			continue
		}
		combined = append(combined, d.Seasonal[i]+d.Residual[i])
	}
	varSR := varianceSkipNaN(combined)
	if varSR == 0 {
		return 0
	}

	strength := 1 - varR/varSR
	if strength < 0 {
		return 0
	}
	return strength
}

// centeredMovingAverage computes the classical trend estimate. Even periods
// use a 2×m average with half weights at the ends; edges where the window
// does not fit are NaN.
func centeredMovingAverage(values []float64, period int) []float64 {
	n := len(values)
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}

	half := period / 2
	if period%2 == 0 {
		for i := half; i < n-half; i++ {
			sum := 0.5*values[i-half] + 0.5*values[i+half]
			for j := i - half + 1; j < i+half; j++ {
				sum += values[j]
			}
			trend[i] = sum / float64(period)
		}
	} else {
		for i := half; i < n-half; i++ {
			sum := 0.0
			for j := i - half; j <= i+half; j++ {
				sum += values[j]
			}
			trend[i] = sum / float64(period)
		}
	}
	return trend
}

func varianceSkipNaN(data []float64) float64 {
	valid := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) < 2 {
		return 0
	}
	return stat.Variance(valid, nil)
}
