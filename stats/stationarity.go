package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/calderaproj/housecast/timeseries"
)

// ErrTooFewObservations is returned when a series is too short for a test.
var ErrTooFewObservations = errors.New("too few observations")

const minTestObservations = 10

// TestResult holds the outcome of a stationarity test. Stationary reports
// the decision at the 5% level under the test's own null hypothesis.
type TestResult struct {
	Test       string
	Statistic  float64
	PValue     float64
	Lags       int
	NObs       int
	Critical   map[string]float64
	Stationary bool
}

// ADF performs the Augmented Dickey-Fuller unit-root test with a constant
// term. The null hypothesis is a unit root; a p-value below 0.05 rejects it
// in favor of stationarity.
func ADF(s *timeseries.Series, maxLag int) (*TestResult, error) {
	n := s.Len()
	if n < minTestObservations {
		return nil, fmt.Errorf("adf: %w: have %d, need %d", ErrTooFewObservations, n, minTestObservations)
	}

	// Schwert's rule of thumb when no lag order is given.
	if maxLag <= 0 {
		maxLag = int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	}
	if maxLag >= n-1 {
		maxLag = n - 2
	}

	diff := s.Diff()

	// Regress delta_y_t on [1, y_{t-1}, delta_y_{t-1..maxLag}] and test the
	// lagged-level coefficient against zero.
	nObs := n - maxLag - 1
	if nObs < minTestObservations {
		return nil, fmt.Errorf("adf: %w after lagging: have %d", ErrTooFewObservations, nObs)
	}

	k := 2 + maxLag
	x := mat.NewDense(nObs, k, nil)
	y := make([]float64, nObs)
	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y[i] = diff.Values[t]
		x.Set(i, 0, 1)
		x.Set(i, 1, s.Values[t])
		for j := 1; j <= maxLag; j++ {
			x.Set(i, 1+j, diff.Values[t-j])
		}
	}

	coefs, stderrs, err := olsRegression(x, y)
	if err != nil {
		return nil, fmt.Errorf("adf regression: %w", err)
	}

	tStat := coefs[1] / stderrs[1]
	pValue := adfPValue(tStat)

	return &TestResult{
		Test:      "adf",
		Statistic: tStat,
		PValue:    pValue,
		Lags:      maxLag,
		NObs:      nObs,
		Critical: map[string]float64{
			"1%":  -3.43,
			"5%":  -2.86,
			"10%": -2.57,
		},
		Stationary: pValue < 0.05,
	}, nil
}

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test for level
// stationarity. The null hypothesis is stationarity; a p-value below 0.05
// rejects it.
func KPSS(s *timeseries.Series, nlags int) (*TestResult, error) {
	n := s.Len()
	if n < minTestObservations {
		return nil, fmt.Errorf("kpss: %w: have %d, need %d", ErrTooFewObservations, n, minTestObservations)
	}

	if nlags <= 0 {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if nlags >= n {
		nlags = n - 1
	}

	mean := s.Mean()
	residuals := make([]float64, n)
	for i, v := range s.Values {
		residuals[i] = v - mean
	}

	cumSum := make([]float64, n)
	cumSum[0] = residuals[0]
	for i := 1; i < n; i++ {
		cumSum[i] = cumSum[i-1] + residuals[i]
	}

	// Newey-West long-run variance with Bartlett weights.
	s2 := 0.0
	for _, r := range residuals {
		s2 += r * r
	}
	s2 /= float64(n)
	for l := 1; l <= nlags; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += residuals[i] * residuals[i-l]
		}
		cov /= float64(n)
		weight := 1.0 - float64(l)/float64(nlags+1)
		s2 += 2 * weight * cov
	}
	if s2 <= 0 {
		s2 = 1e-10
	}

	etaSq := 0.0
	for _, cs := range cumSum {
		etaSq += cs * cs
	}
	stat := etaSq / (float64(n) * float64(n) * s2)
	pValue := kpssPValue(stat)

	return &TestResult{
		Test:      "kpss",
		Statistic: stat,
		PValue:    pValue,
		Lags:      nlags,
		NObs:      n,
		Critical: map[string]float64{
			"10%":  0.347,
			"5%":   0.463,
			"2.5%": 0.574,
			"1%":   0.739,
		},
		Stationary: pValue >= 0.05,
	}, nil
}

// olsRegression fits y = X*beta by least squares and returns the
// coefficients with their standard errors.
func olsRegression(x *mat.Dense, y []float64) (coefs, stderrs []float64, err error) {
	n, k := x.Dims()
	if n != len(y) {
		return nil, nil, fmt.Errorf("design matrix has %d rows for %d responses", n, len(y))
	}
	if n <= k {
		return nil, nil, fmt.Errorf("%w: %d observations for %d regressors", ErrTooFewObservations, n, k)
	}

	var qr mat.QR
	qr.Factorize(x)

	beta := mat.NewVecDense(k, nil)
	if err := qr.SolveVecTo(beta, false, mat.NewVecDense(n, y)); err != nil {
		return nil, nil, err
	}

	fitted := mat.NewVecDense(n, nil)
	fitted.MulVec(x, beta)
	sse := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.AtVec(i)
		sse += r * r
	}

	var xtx, xtxInv mat.Dense
	xtx.Mul(x.T(), x)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, nil, fmt.Errorf("singular design: %w", err)
	}

	s2 := sse / float64(n-k)
	coefs = make([]float64, k)
	stderrs = make([]float64, k)
	for j := 0; j < k; j++ {
		coefs[j] = beta.AtVec(j)
		stderrs[j] = math.Sqrt(s2 * xtxInv.At(j, j))
	}
	return coefs, stderrs, nil
}

// adfTable maps ADF t-statistics to p-values for the constant-only
// regression, after MacKinnon (1994).
var adfTable = []struct{ stat, p float64 }{
	{-3.96, 0.001},
	{-3.43, 0.01},
	{-2.86, 0.05},
	{-2.57, 0.10},
	{-1.94, 0.25},
	{-1.62, 0.50},
	{-0.50, 0.90},
}

func adfPValue(stat float64) float64 {
	return interpolatePValue(stat, adfTable)
}

// kpssTable maps negated KPSS statistics to p-values for level stationarity.
// KPSS rejects for large statistics, so the axis is flipped to keep the
// table ascending; p-values are bracketed to [0.01, 0.10] as in the original
// publication.
var kpssTable = []struct{ stat, p float64 }{
	{-0.739, 0.01},
	{-0.574, 0.025},
	{-0.463, 0.05},
	{-0.347, 0.10},
}

func kpssPValue(stat float64) float64 {
	return interpolatePValue(-stat, kpssTable)
}

// interpolatePValue linearly interpolates a p-value from an ascending
// (statistic, p) table, clamping to the table's end points outside its
// range.
func interpolatePValue(stat float64, table []struct{ stat, p float64 }) float64 {
	if stat <= table[0].stat {
		return table[0].p
	}
	last := table[len(table)-1]
	if stat >= last.stat {
		return last.p
	}
	for i := 1; i < len(table); i++ {
		if stat <= table[i].stat {
			prev := table[i-1]
			frac := (stat - prev.stat) / (table[i].stat - prev.stat)
			return prev.p + frac*(table[i].p-prev.p)
		}
	}
	return last.p
}
