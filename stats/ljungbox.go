package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LjungBoxResult holds the portmanteau test outcome on a residual series.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// LjungBox tests residuals for remaining autocorrelation up to the given
// lag. The null hypothesis is white noise; a p-value below 0.05 indicates
// the model left structure behind. fitdf is the number of parameters the
// model estimated, subtracted from the degrees of freedom.
func LjungBox(residuals []float64, lags, fitdf int) (*LjungBoxResult, error) {
	n := len(residuals)
	if n < minTestObservations {
		return nil, fmt.Errorf("ljung-box: %w: have %d, need %d", ErrTooFewObservations, n, minTestObservations)
	}
	if lags < 1 {
		return nil, fmt.Errorf("ljung-box: lags must be positive, got %d", lags)
	}
	if lags >= n {
		lags = n - 1
	}

	acf := ACF(residuals, lags)
	if acf == nil {
		return nil, fmt.Errorf("ljung-box: residuals have zero variance")
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}

	chi2 := distuv.ChiSquared{K: float64(dof)}
	return &LjungBoxResult{
		Statistic: q,
		PValue:    chi2.Survival(q),
		Lags:      lags,
		DOF:       dof,
	}, nil
}

// JarqueBeraResult holds the normality test outcome on a residual series.
type JarqueBeraResult struct {
	Statistic float64
	PValue    float64
	Skewness  float64
	Kurtosis  float64
}

// JarqueBera tests residuals for normality from their skewness and kurtosis.
// The null hypothesis is normality.
func JarqueBera(residuals []float64) (*JarqueBeraResult, error) {
	n := len(residuals)
	if n < minTestObservations {
		return nil, fmt.Errorf("jarque-bera: %w: have %d, need %d", ErrTooFewObservations, n, minTestObservations)
	}

	skew := stat.Skew(residuals, nil)
	exKurt := stat.ExKurtosis(residuals, nil)

	jb := float64(n) / 6 * (skew*skew + exKurt*exKurt/4)
	chi2 := distuv.ChiSquared{K: 2}

	return &JarqueBeraResult{
		Statistic: jb,
		PValue:    chi2.Survival(jb),
		Skewness:  skew,
		Kurtosis:  exKurt + 3,
	}, nil
}

// HeteroskedasticityResult holds the variance-ratio test outcome comparing
// the last third of the residuals against the first third.
type HeteroskedasticityResult struct {
	Statistic float64
	PValue    float64
}

// Heteroskedasticity computes the H statistic: the ratio of summed squared
// residuals in the final third to the initial third, with a two-sided
// p-value from the F distribution. H near 1 indicates stable variance.
func Heteroskedasticity(residuals []float64) (*HeteroskedasticityResult, error) {
	n := len(residuals)
	third := n / 3
	if third < 2 {
		return nil, fmt.Errorf("heteroskedasticity: %w: have %d", ErrTooFewObservations, n)
	}

	head := 0.0
	for _, r := range residuals[:third] {
		head += r * r
	}
	tail := 0.0
	for _, r := range residuals[n-third:] {
		tail += r * r
	}
	if head == 0 {
		return nil, fmt.Errorf("heteroskedasticity: zero variance in leading residuals")
	}

	h := tail / head
	f := distuv.F{D1: float64(third), D2: float64(third)}
	p := 2 * f.Survival(h)
	if cdf := 2 * f.CDF(h); cdf < p {
		p = cdf
	}
	if p > 1 {
		p = 1
	}

	return &HeteroskedasticityResult{Statistic: h, PValue: p}, nil
}

// DurbinWatson returns the first-order autocorrelation statistic for a
// residual series. Values near 2 indicate no autocorrelation; below 2,
// positive autocorrelation.
func DurbinWatson(residuals []float64) (float64, error) {
	n := len(residuals)
	if n < 2 {
		return 0, fmt.Errorf("durbin-watson: %w: have %d, need 2", ErrTooFewObservations, n)
	}

	num := 0.0
	for i := 1; i < n; i++ {
		d := residuals[i] - residuals[i-1]
		num += d * d
	}
	den := 0.0
	for _, r := range residuals {
		den += r * r
	}
	if den == 0 {
		return 0, fmt.Errorf("durbin-watson: residuals are all zero")
	}
	return num / den, nil
}
