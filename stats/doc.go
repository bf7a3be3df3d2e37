// Package stats provides the statistical tests behind order selection and
// residual diagnostics.
//
// # Stationarity Tests
//
// Decide whether a price series needs differencing:
//
//	// Augmented Dickey-Fuller test
//	// H0: series has a unit root (non-stationary)
//	adf, err := stats.ADF(series, 0)
//
//	// KPSS test (the default for the differencing policy)
//	// H0: series is stationary
//	kpss, err := stats.KPSS(series, 0)
//
// # Differencing Policy
//
// Determine differencing orders for model selection:
//
//	d := stats.NDiffs(series, 2, "kpss")    // non-seasonal order
//	sd := stats.NSDiffs(series, 12, 1)      // seasonal order, monthly data
//
// NSDiffs uses the seasonal-strength measure from classical decomposition
// (Decompose) rather than a second unit-root test, following the heuristic in
// Hyndman & Athanasopoulos.
//
// # Autocorrelation
//
//	acf := stats.ACF(values, 20)
//	pacf := stats.PACF(values, 20)
//	bound := stats.ConfidenceBound(len(values), 0.95)
//	lags := stats.SignificantLags(acf, bound)
//
// # Residual Diagnostics
//
// Checks a fitted model's residuals are usually held to:
//
//	lb, err := stats.LjungBox(residuals, 10, p+q)   // leftover autocorrelation
//	jb, err := stats.JarqueBera(residuals)           // normality
//	h, err := stats.Heteroskedasticity(residuals)    // variance stability
//	dw, err := stats.DurbinWatson(residuals)         // first-order correlation
//
// # Information Criteria
//
// CalculateIC turns a log-likelihood into AIC, AICc, and BIC; Score picks the
// criterion the order search is minimizing.
//
// All functions return pure data; nothing in this package renders or logs.
package stats
