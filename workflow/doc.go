// Package workflow orchestrates the end-to-end forecasting pipeline for one
// price series.
//
// Run walks a fixed sequence of stages with no branching:
//
//	SPLIT -> SELECT_AND_FIT(train) -> FORECAST(validate against test)
//	      -> REFIT(full series)    -> FORECAST(future)
//	      -> ROI                   -> PACKAGE
//
// Each stage consumes the previous stage's output; any failure aborts the
// whole run for that series with no partial result and no retry. The
// pipeline is synchronous and single-threaded; callers wanting many series
// (many zipcodes) invoke Run repeatedly.
//
// The terminal state is a ResultBundle with typed, JSON-tagged fields: the
// future forecast frame, the end-of-horizon ROI row, validation accuracy
// against the held-out suffix, and a summary/diagnostics report for both the
// train-only fit and the full-series refit. Rendering is someone else's job.
package workflow
