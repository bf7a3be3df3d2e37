// Package sarima implements seasonal ARIMA estimation and forecasting for
// housing price series.
//
// A Model is bound to one (series, order) pair. Fit applies non-seasonal and
// seasonal differencing per the order, then estimates AR, MA, seasonal, and
// trend parameters by minimizing the conditional sum of squares with a
// momentum gradient descent. Estimation is deterministic; fitting the same
// inputs twice yields identical coefficients and forecasts.
//
//	order := sarima.Order{P: 1, D: 1, Q: 1, SP: 1, SD: 1, SQ: 1, M: 12}
//	model, err := sarima.New(order)
//	if err := model.Fit(series); err != nil { ... }
//	pred, err := model.Forecast(24, 0.95)
//
// The invertibility constraint on the seasonal moving-average polynomial is
// relaxed: seasonal MA coefficients are not clamped during optimization.
// Short noisy price series frequently violate strict invertibility, and
// enforcing it makes otherwise reasonable orders fail to fit.
//
// Non-convergence is never silent: a non-finite loss or variance surfaces as
// ErrDivergence.
//
// An order with zero seasonal components is a plain ARIMA model; there is no
// separate non-seasonal type.
package sarima
