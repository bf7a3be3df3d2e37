package sarima

import (
	"errors"
	"fmt"
	"math"

	"github.com/calderaproj/housecast/stats"
	"github.com/calderaproj/housecast/timeseries"
)

var (
	// ErrSeriesTooShort is returned when a series cannot support the
	// requested order and seasonal period.
	ErrSeriesTooShort = errors.New("series too short for the requested order")

	// ErrDivergence is returned when estimation produces a non-finite loss
	// or fails to settle on finite coefficients.
	ErrDivergence = errors.New("model estimation diverged")

	// ErrNotFitted is returned when a prediction is requested before Fit.
	ErrNotFitted = errors.New("model must be fitted first")
)

// Order is a seasonal ARIMA model order: non-seasonal (p, d, q) plus
// seasonal (P, D, Q) at period M.
type Order struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`

	SP int `json:"sp"`
	SD int `json:"sd"`
	SQ int `json:"sq"`
	M  int `json:"m"`
}

// Validate checks that all components are non-negative and that seasonal
// terms come with a usable period.
func (o Order) Validate() error {
	if o.P < 0 || o.D < 0 || o.Q < 0 || o.SP < 0 || o.SD < 0 || o.SQ < 0 {
		return fmt.Errorf("order components must be non-negative: %s", o)
	}
	if o.M < 0 {
		return fmt.Errorf("seasonal period must be non-negative, got %d", o.M)
	}
	if (o.SP > 0 || o.SD > 0 || o.SQ > 0) && o.M < 2 {
		return fmt.Errorf("seasonal terms require a period of at least 2, got %d", o.M)
	}
	return nil
}

// IsSeasonal reports whether any seasonal component is present.
func (o Order) IsSeasonal() bool {
	return o.SP > 0 || o.SD > 0 || o.SQ > 0
}

// NumParams returns the number of estimated parameters, including the trend
// constant.
func (o Order) NumParams() int {
	return o.P + o.Q + o.SP + o.SQ + 1
}

// String renders the order in the conventional SARIMA(p,d,q)(P,D,Q)[m]
// notation, degrading to ARIMA(p,d,q) when no seasonal terms are present.
func (o Order) String() string {
	if !o.IsSeasonal() {
		return fmt.Sprintf("ARIMA(%d,%d,%d)", o.P, o.D, o.Q)
	}
	return fmt.Sprintf("SARIMA(%d,%d,%d)(%d,%d,%d)[%d]", o.P, o.D, o.Q, o.SP, o.SD, o.SQ, o.M)
}

// Model is a seasonal ARIMA estimator bound to one (series, order) pair.
// It is created unfitted, fitted once, and never mutated afterwards.
// Estimation is deterministic: fitting the same series at the same order
// twice yields identical coefficients and forecasts.
type Model struct {
	Order Order

	ARCoeffs  []float64
	MACoeffs  []float64
	SARCoeffs []float64
	SMACoeffs []float64
	Intercept float64
	Variance  float64

	IC *stats.InformationCriteria

	fitted     bool
	data       *timeseries.Series
	diffData   *timeseries.Series
	residuals  []float64
	fittedVals []float64
}

// New creates an unfitted model for the given order.
func New(order Order) (*Model, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return &Model{
		Order:     order,
		ARCoeffs:  make([]float64, order.P),
		MACoeffs:  make([]float64, order.Q),
		SARCoeffs: make([]float64, order.SP),
		SMACoeffs: make([]float64, order.SQ),
	}, nil
}

// Fit estimates the model on s by conditional sum of squares. The series is
// differenced per the order, coefficients are initialized from the sample
// autocorrelations, and a gradient descent with momentum minimizes the
// one-step squared prediction error. A non-finite loss surfaces as
// ErrDivergence.
func (m *Model) Fit(s *timeseries.Series) error {
	if s == nil || s.Len() == 0 {
		return timeseries.ErrEmptySeries
	}

	o := m.Order
	minLen := o.P + o.Q + o.D + (o.SP+o.SD+o.SQ)*o.M + 20
	if s.Len() < minLen {
		return fmt.Errorf("%w: %s needs %d observations, have %d",
			ErrSeriesTooShort, o, minLen, s.Len())
	}

	m.data = s

	diff := s
	for i := 0; i < o.D; i++ {
		diff = diff.Diff()
	}
	for i := 0; i < o.SD; i++ {
		diff = diff.SeasonalDiff(o.M)
	}
	if diff.Len() < o.NumParams()+2 {
		return fmt.Errorf("%w: differencing left %d observations for %d parameters",
			ErrSeriesTooShort, diff.Len(), o.NumParams())
	}
	m.diffData = diff

	if err := m.estimate(); err != nil {
		return err
	}

	logLik := m.logLikelihood()
	m.IC = stats.CalculateIC(logLik, len(m.residuals), o.NumParams())

	m.fitted = true
	return nil
}

// Fitted reports whether the model has been estimated.
func (m *Model) Fitted() bool {
	return m.fitted
}

// estimate initializes coefficients and runs the CSS optimizer on the
// differenced series.
func (m *Model) estimate() error {
	y := m.diffData.Values
	o := m.Order

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	m.Intercept = mean

	// Damped autocorrelations make a stable deterministic starting point.
	if o.P > 0 {
		if acf := stats.ACF(y, o.P); acf != nil {
			for i := 0; i < o.P && i+1 < len(acf); i++ {
				m.ARCoeffs[i] = acf[i+1] * 0.5
			}
		}
	}
	if o.SP > 0 {
		if acf := stats.ACF(y, o.SP*o.M); acf != nil {
			for i := 0; i < o.SP; i++ {
				if idx := (i + 1) * o.M; idx < len(acf) {
					m.SARCoeffs[i] = acf[idx] * 0.5
				}
			}
		}
	}
	for i := range m.MACoeffs {
		m.MACoeffs[i] = 0.1
	}
	for i := range m.SMACoeffs {
		m.SMACoeffs[i] = 0.1
	}

	return m.optimizeCSS(y)
}

// optimizeCSS minimizes the conditional sum of squares with momentum and a
// decaying learning rate. AR, seasonal AR, and non-seasonal MA coefficients
// are clamped inside the unit interval for stationarity and invertibility;
// seasonal MA coefficients are deliberately left unconstrained, which keeps
// short noisy housing series from failing the fit outright.
func (m *Model) optimizeCSS(y []float64) error {
	n := len(y)
	o := m.Order
	p, q, sp, sq, period := o.P, o.Q, o.SP, o.SQ, o.M

	const (
		maxIter   = 200
		tolerance = 1e-8
		momentum  = 0.9
		decay     = 0.99
	)
	learningRate := 0.005

	arMomentum := make([]float64, p)
	maMomentum := make([]float64, q)
	sarMomentum := make([]float64, sp)
	smaMomentum := make([]float64, sq)

	startIdx := max(max(p, q), max(sp*period, sq*period))
	if startIdx >= n-10 {
		startIdx = 0
	}

	bestSSE := math.Inf(1)
	bestAR := make([]float64, p)
	bestMA := make([]float64, q)
	bestSAR := make([]float64, sp)
	bestSMA := make([]float64, sq)
	noImprove := 0

	for iter := 0; iter < maxIter; iter++ {
		residuals := make([]float64, n)
		sse := 0.0

		for t := startIdx; t < n; t++ {
			pred := m.predictOne(y, residuals, t, n)
			residuals[t] = y[t] - pred
			sse += residuals[t] * residuals[t]
		}

		if math.IsNaN(sse) || math.IsInf(sse, 0) {
			return fmt.Errorf("%w: non-finite loss at iteration %d for %s", ErrDivergence, iter, o)
		}

		if sse < bestSSE {
			bestSSE = sse
			copy(bestAR, m.ARCoeffs)
			copy(bestMA, m.MACoeffs)
			copy(bestSAR, m.SARCoeffs)
			copy(bestSMA, m.SMACoeffs)
			noImprove = 0
		} else {
			noImprove++
		}
		if noImprove > 20 {
			break
		}

		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		sarGrad := make([]float64, sp)
		smaGrad := make([]float64, sq)

		for t := startIdx; t < n; t++ {
			for i := 0; i < p && t-i-1 >= 0; i++ {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - m.Intercept)
			}
			for i := 0; i < sp; i++ {
				if lag := (i + 1) * period; t-lag >= 0 {
					sarGrad[i] -= 2 * residuals[t] * (y[t-lag] - m.Intercept)
				}
			}
			for i := 0; i < q && t-i-1 >= 0; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
			for i := 0; i < sq; i++ {
				if lag := (i + 1) * period; t-lag >= 0 {
					smaGrad[i] -= 2 * residuals[t] * residuals[t-lag]
				}
			}
		}

		for i := 0; i < p; i++ {
			arMomentum[i] = momentum*arMomentum[i] + learningRate*arGrad[i]/float64(n)
			m.ARCoeffs[i] = clamp(m.ARCoeffs[i]-arMomentum[i], -0.99, 0.99)
		}
		for i := 0; i < sp; i++ {
			sarMomentum[i] = momentum*sarMomentum[i] + learningRate*sarGrad[i]/float64(n)
			m.SARCoeffs[i] = clamp(m.SARCoeffs[i]-sarMomentum[i], -0.99, 0.99)
		}
		for i := 0; i < q; i++ {
			maMomentum[i] = momentum*maMomentum[i] + learningRate*maGrad[i]/float64(n)
			m.MACoeffs[i] = clamp(m.MACoeffs[i]-maMomentum[i], -0.99, 0.99)
		}
		for i := 0; i < sq; i++ {
			smaMomentum[i] = momentum*smaMomentum[i] + learningRate*smaGrad[i]/float64(n)
			// No clamp: the invertibility constraint on the seasonal MA
			// polynomial is relaxed on purpose.
			m.SMACoeffs[i] -= smaMomentum[i]
		}

		learningRate *= decay

		if iter > 0 && math.Abs(sse-bestSSE) < tolerance {
			break
		}
	}

	copy(m.ARCoeffs, bestAR)
	copy(m.MACoeffs, bestMA)
	copy(m.SARCoeffs, bestSAR)
	copy(m.SMACoeffs, bestSMA)

	for _, c := range m.SMACoeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: non-finite seasonal MA coefficient for %s", ErrDivergence, o)
		}
	}

	m.residuals = make([]float64, n)
	m.fittedVals = make([]float64, n)
	for t := 0; t < n; t++ {
		pred := m.predictOne(y, m.residuals, t, n)
		m.fittedVals[t] = pred
		m.residuals[t] = y[t] - pred
	}

	sse := 0.0
	count := 0
	for t := startIdx; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}
	if count > o.NumParams() {
		m.Variance = sse / float64(count-o.NumParams())
	} else {
		m.Variance = sse / float64(count)
	}
	if math.IsNaN(m.Variance) || math.IsInf(m.Variance, 0) {
		return fmt.Errorf("%w: non-finite residual variance for %s", ErrDivergence, o)
	}

	return nil
}

// predictOne computes the one-step prediction at time t from values and
// residuals. Residuals past index n (the fitted range) are treated as zero,
// which is what forecasting over extended arrays relies on.
func (m *Model) predictOne(y, residuals []float64, t, n int) float64 {
	o := m.Order
	pred := m.Intercept

	for i := 0; i < o.P && t-i-1 >= 0; i++ {
		pred += m.ARCoeffs[i] * (y[t-i-1] - m.Intercept)
	}
	for i := 0; i < o.SP; i++ {
		if lag := (i + 1) * o.M; t-lag >= 0 {
			pred += m.SARCoeffs[i] * (y[t-lag] - m.Intercept)
		}
	}
	for i := 0; i < o.Q && t-i-1 >= 0; i++ {
		if t-i-1 < n {
			pred += m.MACoeffs[i] * residuals[t-i-1]
		}
	}
	for i := 0; i < o.SQ; i++ {
		if lag := (i + 1) * o.M; t-lag >= 0 && t-lag < n {
			pred += m.SMACoeffs[i] * residuals[t-lag]
		}
	}
	return pred
}

func (m *Model) logLikelihood() float64 {
	n := float64(len(m.residuals))
	if m.Variance <= 0 {
		return math.Inf(-1)
	}
	sse := 0.0
	for _, r := range m.residuals {
		sse += r * r
	}
	return -n/2*math.Log(2*math.Pi) - n/2*math.Log(m.Variance) - sse/(2*m.Variance)
}

// Residuals returns a copy of the in-sample residuals on the differenced
// scale, or nil before fitting.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.residuals))
	copy(out, m.residuals)
	return out
}

// FittedValues returns a copy of the in-sample one-step predictions on the
// differenced scale, or nil before fitting.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.fittedVals))
	copy(out, m.fittedVals)
	return out
}

func clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}
