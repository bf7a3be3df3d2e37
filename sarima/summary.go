package sarima

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/calderaproj/housecast/stats"
)

// Summary is a pure-data fit report: the order, estimated coefficients, and
// likelihood-based scores. External renderers decide how to display it.
type Summary struct {
	Order     Order     `json:"order"`
	Notation  string    `json:"notation"`
	ARCoeffs  []float64 `json:"ar_coeffs,omitempty"`
	MACoeffs  []float64 `json:"ma_coeffs,omitempty"`
	SARCoeffs []float64 `json:"sar_coeffs,omitempty"`
	SMACoeffs []float64 `json:"sma_coeffs,omitempty"`
	Intercept float64   `json:"intercept"`
	Variance  float64   `json:"variance"`
	LogLik    float64   `json:"log_lik"`
	AIC       float64   `json:"aic"`
	AICc      float64   `json:"aicc"`
	BIC       float64   `json:"bic"`
	NObs      int       `json:"n_obs"`
}

// Summary returns the fit report, or nil before fitting.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}
	return &Summary{
		Order:     m.Order,
		Notation:  m.Order.String(),
		ARCoeffs:  append([]float64(nil), m.ARCoeffs...),
		MACoeffs:  append([]float64(nil), m.MACoeffs...),
		SARCoeffs: append([]float64(nil), m.SARCoeffs...),
		SMACoeffs: append([]float64(nil), m.SMACoeffs...),
		Intercept: m.Intercept,
		Variance:  m.Variance,
		LogLik:    m.IC.LogLik,
		AIC:       m.IC.AIC,
		AICc:      m.IC.AICc,
		BIC:       m.IC.BIC,
		NObs:      m.data.Len(),
	}
}

// Diagnostics is the residual analysis a diagnostics panel is built from:
// moments, portmanteau and normality tests, variance stability, and the
// residual autocorrelations with their white-noise band.
type Diagnostics struct {
	ResidualMean float64 `json:"residual_mean"`
	ResidualStd  float64 `json:"residual_std"`

	LjungBoxStat   float64 `json:"ljung_box_stat"`
	LjungBoxPValue float64 `json:"ljung_box_p_value"`

	JarqueBeraStat   float64 `json:"jarque_bera_stat"`
	JarqueBeraPValue float64 `json:"jarque_bera_p_value"`
	Skewness         float64 `json:"skewness"`
	Kurtosis         float64 `json:"kurtosis"`

	HeteroskedasticityStat   float64 `json:"heteroskedasticity_stat"`
	HeteroskedasticityPValue float64 `json:"heteroskedasticity_p_value"`

	DurbinWatson float64 `json:"durbin_watson"`

	ResidualACF []float64 `json:"residual_acf,omitempty"`
	ACFBound    float64   `json:"acf_bound"`
}

// Diagnostics computes the residual analysis for a fitted model, or nil
// before fitting. Tests that cannot run on the residuals at hand report NaN
// rather than failing the whole panel.
func (m *Model) Diagnostics() *Diagnostics {
	if !m.fitted {
		return nil
	}

	res := m.residuals
	d := &Diagnostics{
		ResidualMean:             stat.Mean(res, nil),
		LjungBoxStat:             math.NaN(),
		LjungBoxPValue:           math.NaN(),
		JarqueBeraStat:           math.NaN(),
		JarqueBeraPValue:         math.NaN(),
		Skewness:                 math.NaN(),
		Kurtosis:                 math.NaN(),
		HeteroskedasticityStat:   math.NaN(),
		HeteroskedasticityPValue: math.NaN(),
		DurbinWatson:             math.NaN(),
	}
	if len(res) > 1 {
		d.ResidualStd = stat.StdDev(res, nil)
	}

	lbLags := 10
	if lbLags >= len(res) {
		lbLags = len(res) - 1
	}
	fitdf := m.Order.P + m.Order.Q + m.Order.SP + m.Order.SQ
	if lb, err := stats.LjungBox(res, lbLags, fitdf); err == nil {
		d.LjungBoxStat = lb.Statistic
		d.LjungBoxPValue = lb.PValue
	}

	if jb, err := stats.JarqueBera(res); err == nil {
		d.JarqueBeraStat = jb.Statistic
		d.JarqueBeraPValue = jb.PValue
		d.Skewness = jb.Skewness
		d.Kurtosis = jb.Kurtosis
	}

	if h, err := stats.Heteroskedasticity(res); err == nil {
		d.HeteroskedasticityStat = h.Statistic
		d.HeteroskedasticityPValue = h.PValue
	}

	if dw, err := stats.DurbinWatson(res); err == nil {
		d.DurbinWatson = dw
	}

	acfLags := 24
	if acfLags >= len(res) {
		acfLags = len(res) - 1
	}
	d.ResidualACF = stats.ACF(res, acfLags)
	d.ACFBound = stats.ConfidenceBound(len(res), 0.95)

	return d
}
