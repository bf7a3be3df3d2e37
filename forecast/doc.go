// Package forecast defines the estimator-facing surface of the pipeline:
// the Estimator capability interface with its backend registry, the typed
// forecast frame (Result), return-on-investment derivation (ROI), and
// validation accuracy metrics.
//
// The orchestrator never touches a concrete model type. It asks the registry
// for a backend by name, fits it, and consumes pure data:
//
//	est, err := forecast.New("sarima", forecast.Config{SeasonalPeriod: 12})
//	if err := est.Fit(train); err != nil { ... }
//	result, err := est.Forecast(24, 0.95)
//	roi, err := forecast.ComputeROI(result)
//
// The seasonal ARIMA backend (order selection via autoarima, estimation via
// sarima) is the one shipped variant, registered under "sarima" in this
// package's init. Alternate estimation backends register themselves the same
// way and plug in without orchestrator changes.
package forecast
