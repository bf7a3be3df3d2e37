package forecast

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/calderaproj/housecast/timeseries"
)

// Config carries the settings an estimator backend needs. Backends ignore
// fields that do not apply to them.
type Config struct {
	// SeasonalPeriod is the number of observations per season, 12 for
	// monthly housing data. Zero disables seasonal terms.
	SeasonalPeriod int

	// MaxOrder bounds each searched order dimension for backends that
	// perform order selection. Zero means the backend's default.
	MaxOrder int

	// Criterion ranks candidate orders: "aic" (default), "aicc", or "bic".
	Criterion string

	// Stepwise selects neighborhood search over the exhaustive grid for
	// backends that support both. Defaults to true.
	Stepwise *bool

	// Logger receives backend progress and skip events. Defaults to a
	// no-op logger.
	Logger zerolog.Logger
}

// StepwiseEnabled resolves the Stepwise tri-state, defaulting to true.
func (c Config) StepwiseEnabled() bool {
	if c.Stepwise == nil {
		return true
	}
	return *c.Stepwise
}

// Summary is a backend-neutral fit report.
type Summary struct {
	Backend      string               `json:"backend"`
	Spec         string               `json:"spec"`
	Coefficients map[string][]float64 `json:"coefficients,omitempty"`
	Intercept    float64              `json:"intercept"`
	Variance     float64              `json:"variance"`
	LogLik       float64              `json:"log_lik"`
	AIC          float64              `json:"aic"`
	AICc         float64              `json:"aicc"`
	BIC          float64              `json:"bic"`
	NObs         int                  `json:"n_obs"`
}

// Diagnostics is backend-neutral residual analysis, the data a diagnostics
// panel renders.
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

// Estimator is the time-series estimation capability the orchestrator works
// against: select and fit a model, forecast a horizon, and report on the
// fit. Implementations are single-use: one Fit, then any number of
// Forecast/Summary/Diagnostics calls.
type Estimator interface {
	// Name identifies the backend, matching its registry key.
	Name() string

	// Fit binds the estimator to a series, performing any internal order
	// selection and parameter estimation.
	Fit(s *timeseries.Series) error

	// Refit returns a fresh estimator fitted on s that reuses the
	// specification selected during Fit (the chosen model order) instead
	// of selecting again. The receiver is left untouched.
	Refit(s *timeseries.Series) (Estimator, error)

	// Forecast produces the typed forecast frame for a horizon at the
	// given interval coverage.
	Forecast(horizon int, confidence float64) (*Result, error)

	// Summary returns the fit report, nil before Fit.
	Summary() *Summary

	// Diagnostics returns residual analysis, nil before Fit.
	Diagnostics() *Diagnostics
}

// Factory builds an unfitted estimator from a config.
type Factory func(cfg Config) Estimator

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a backend available under name. Registering the same name
// twice panics, as with database/sql drivers.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("forecast: Register with nil factory")
	}
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("forecast: Register called twice for backend %q", name))
	}
	registry[name] = factory
}

// New builds an unfitted estimator for the named backend.
func New(name string, cfg Config) (Estimator, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown estimator backend %q (have %v)", name, Backends())
	}
	return factory(cfg), nil
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
