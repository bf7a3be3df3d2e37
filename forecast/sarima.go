package forecast

import (
	"github.com/calderaproj/housecast/autoarima"
	"github.com/calderaproj/housecast/sarima"
	"github.com/calderaproj/housecast/timeseries"
)

// SARIMABackend is the registry name of the shipped seasonal ARIMA
// estimator.
const SARIMABackend = "sarima"

func init() {
	Register(SARIMABackend, newSARIMAEstimator)
}

// sarimaEstimator couples autoarima order selection with sarima estimation
// behind the Estimator interface.
type sarimaEstimator struct {
	cfg   Config
	model *sarima.Model
}

func newSARIMAEstimator(cfg Config) Estimator {
	return &sarimaEstimator{cfg: cfg}
}

func (e *sarimaEstimator) Name() string {
	return SARIMABackend
}

// Fit runs the bounded order search on s and keeps the winning fitted model.
// Candidate failures during the search are recovered internally; only a
// search that finds no model at all, or a series that cannot be modeled,
// surfaces an error.
func (e *sarimaEstimator) Fit(s *timeseries.Series) error {
	searchCfg := autoarima.DefaultConfig(e.cfg.SeasonalPeriod)
	if e.cfg.MaxOrder > 0 {
		searchCfg.MaxP = e.cfg.MaxOrder
		searchCfg.MaxQ = e.cfg.MaxOrder
		searchCfg.MaxSP = e.cfg.MaxOrder
		searchCfg.MaxSQ = e.cfg.MaxOrder
	}
	if e.cfg.Criterion != "" {
		searchCfg.Criterion = e.cfg.Criterion
	}
	searchCfg.Stepwise = e.cfg.StepwiseEnabled()
	searchCfg.Logger = e.cfg.Logger

	result, err := autoarima.Search(s, searchCfg)
	if err != nil {
		return err
	}
	e.model = result.Model
	return nil
}

// FitOrder bypasses the search and fits a specific order, used when refitting
// the full series at the order selected on the training prefix.
func (e *sarimaEstimator) FitOrder(s *timeseries.Series, order sarima.Order) error {
	model, err := sarima.New(order)
	if err != nil {
		return err
	}
	if err := model.Fit(s); err != nil {
		return err
	}
	e.model = model
	return nil
}

// Refit fits a fresh estimator on s at the order already selected on the
// training data, skipping a second search.
func (e *sarimaEstimator) Refit(s *timeseries.Series) (Estimator, error) {
	if e.model == nil {
		return nil, sarima.ErrNotFitted
	}
	out := &sarimaEstimator{cfg: e.cfg}
	if err := out.FitOrder(s, e.model.Order); err != nil {
		return nil, err
	}
	return out, nil
}

// Order returns the selected model order; zero value before Fit.
func (e *sarimaEstimator) Order() sarima.Order {
	if e.model == nil {
		return sarima.Order{}
	}
	return e.model.Order
}

func (e *sarimaEstimator) Forecast(horizon int, confidence float64) (*Result, error) {
	if e.model == nil {
		return nil, sarima.ErrNotFitted
	}
	pred, err := e.model.Forecast(horizon, confidence)
	if err != nil {
		return nil, err
	}
	return NewResult(pred.Timestamps, pred.Forecast, pred.Lower, pred.Upper, pred.Confidence)
}

func (e *sarimaEstimator) Summary() *Summary {
	if e.model == nil {
		return nil
	}
	s := e.model.Summary()
	if s == nil {
		return nil
	}

	coeffs := make(map[string][]float64)
	if len(s.ARCoeffs) > 0 {
		coeffs["ar"] = s.ARCoeffs
	}
	if len(s.MACoeffs) > 0 {
		coeffs["ma"] = s.MACoeffs
	}
	if len(s.SARCoeffs) > 0 {
		coeffs["sar"] = s.SARCoeffs
	}
	if len(s.SMACoeffs) > 0 {
		coeffs["sma"] = s.SMACoeffs
	}

	return &Summary{
		Backend:      SARIMABackend,
		Spec:         s.Notation,
		Coefficients: coeffs,
		Intercept:    s.Intercept,
		Variance:     s.Variance,
		LogLik:       s.LogLik,
		AIC:          s.AIC,
		AICc:         s.AICc,
		BIC:          s.BIC,
		NObs:         s.NObs,
	}
}

func (e *sarimaEstimator) Diagnostics() *Diagnostics {
	if e.model == nil {
		return nil
	}
	d := e.model.Diagnostics()
	if d == nil {
		return nil
	}
	return &Diagnostics{
		ResidualMean:             d.ResidualMean,
		ResidualStd:              d.ResidualStd,
		LjungBoxStat:             d.LjungBoxStat,
		LjungBoxPValue:           d.LjungBoxPValue,
		JarqueBeraStat:           d.JarqueBeraStat,
		JarqueBeraPValue:         d.JarqueBeraPValue,
		Skewness:                 d.Skewness,
		Kurtosis:                 d.Kurtosis,
		HeteroskedasticityStat:   d.HeteroskedasticityStat,
		HeteroskedasticityPValue: d.HeteroskedasticityPValue,
		DurbinWatson:             d.DurbinWatson,
		ResidualACF:              d.ResidualACF,
		ACFBound:                 d.ACFBound,
	}
}
