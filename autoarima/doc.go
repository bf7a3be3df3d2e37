// Package autoarima selects a seasonal ARIMA model order for a price series.
//
// Differencing orders d and D are decided deterministically up front: d from
// repeated stationarity testing (stats.NDiffs) and D from the
// seasonal-strength rule (stats.NSDiffs). The remaining four dimensions
// (p, q, P, Q) are searched within configured maxima, ranking candidates by
// an information criterion.
//
//	cfg := autoarima.DefaultConfig(12) // monthly data
//	result, err := autoarima.Search(series, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Order)   // e.g. SARIMA(1,1,1)(0,1,1)[12]
//	pred, _ := result.Model.Forecast(24, 0.95)
//
// # Search Methods
//
//   - Stepwise (default): starts from a handful of standard simple orders and
//     walks to the best improving neighbor, after Hyndman & Khandakar.
//   - Exhaustive: the full grid over (p, q, P, Q), set Stepwise to false.
//
// # Error Tolerance
//
// Individual candidate fits are allowed to fail: a failed candidate is
// counted, logged at debug level on the configured zerolog logger, and
// skipped. The search itself only fails (ErrNoModel) when not a single
// candidate converged.
//
// All four searched dimensions share one configurable bound, DefaultMaxOrder;
// per-dimension maxima can still be set individually on Config.
package autoarima
