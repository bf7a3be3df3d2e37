// Package housecast forecasts zipcode-level housing prices with seasonal
// ARIMA models.
//
// The module implements a sequential pipeline: split a monthly price series
// into a training prefix and a held-out suffix, select a seasonal model
// order automatically, fit, validate against the suffix, refit on the whole
// series, project into the future, and derive return on investment — all
// packaged into one typed result bundle.
//
// # Quick Start
//
//	frame, _ := timeseries.LoadFrame("prices.csv")
//	series, _ := frame.Column("30331")
//
//	bundle, err := workflow.Run(series, workflow.Options{YearsFuture: 2})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s: ROI %.1f%% by %s\n", bundle.Series,
//	    bundle.ROI.Forecast, bundle.ROI.Timestamp.Format("2006-01"))
//
// # Packages
//
//   - timeseries: price series container, train/test split, wide CSV frames
//   - stats: stationarity tests, differencing policy, residual diagnostics
//   - sarima: seasonal ARIMA estimation and forecasting
//   - autoarima: automatic order selection
//   - forecast: estimator interface and registry, forecast frames, ROI,
//     validation accuracy
//   - workflow: the end-to-end orchestrator and its result bundle
//   - config, logging: CLI configuration and logger construction
//   - cmd/housecast: the command-line front end
//
// The library returns pure data everywhere; rendering and persistence are
// left to callers.
package housecast
