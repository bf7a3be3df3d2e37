// Package stats provides the statistical machinery behind model order
// selection: stationarity tests, differencing policy, autocorrelation, and
// residual diagnostics.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ACF returns the autocorrelation function for lags 0..maxLag. A constant
// series has no defined autocorrelation and yields nil.
func ACF(values []float64, maxLag int) []float64 {
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - mean) * (values[i-k] - mean)
		}
		acf[k] = sum / variance
	}
	return acf
}

// PACF returns the partial autocorrelation function for lags 0..maxLag via
// the Durbin-Levinson recursion. Lag 0 is 1 by convention.
func PACF(values []float64, maxLag int) []float64 {
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 1 {
		return nil
	}

	acf := ACF(values, maxLag)
	if acf == nil {
		return nil
	}

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1

	phi := make([][]float64, maxLag+1)
	for i := range phi {
		phi[i] = make([]float64, maxLag+1)
	}
	phi[1][1] = acf[1]
	pacf[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-j]
			den -= phi[k-1][j] * acf[j]
		}
		if den == 0 {
			pacf[k] = 0
			continue
		}
		phi[k][k] = num / den
		pacf[k] = phi[k][k]
		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
	}
	return pacf
}

// ConfidenceBound returns the two-sided white-noise band for sample
// autocorrelations, z_{(1+confidence)/2} / sqrt(n).
func ConfidenceBound(n int, confidence float64) float64 {
	if n <= 0 || confidence <= 0 || confidence >= 1 {
		return math.NaN()
	}
	z := distuv.UnitNormal.Quantile((1 + confidence) / 2)
	return z / math.Sqrt(float64(n))
}

// SignificantLags returns the lags (skipping lag 0) whose values exceed the
// band in absolute value.
func SignificantLags(values []float64, bound float64) []int {
	var significant []int
	for i := 1; i < len(values); i++ {
		if math.Abs(values[i]) > bound {
			significant = append(significant, i)
		}
	}
	return significant
}
