package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/calderaproj/housecast/forecast"
	"github.com/calderaproj/housecast/timeseries"
)

// Defaults for a workflow run on monthly housing data.
const (
	DefaultThreshold      = timeseries.DefaultSplitThreshold
	DefaultSeasonalPeriod = 12
	DefaultYearsFuture    = 2
	DefaultConfidence     = 0.95
)

// Options configures one workflow run. The zero value is usable: every
// field falls back to its default.
type Options struct {
	// Threshold is the leading fraction of the series used for training.
	Threshold float64

	// SeasonalPeriod is the observations per season, 12 for monthly data.
	SeasonalPeriod int

	// YearsFuture sets the future projection horizon to 12*YearsFuture
	// steps.
	YearsFuture int

	// MaxOrder bounds each searched order dimension. Zero means the
	// backend default.
	MaxOrder int

	// Criterion ranks candidate orders: "aic" (default), "aicc", "bic".
	Criterion string

	// Confidence is the forecast interval coverage.
	Confidence float64

	// Backend names the estimator backend; default "sarima".
	Backend string

	// Logger receives stage transitions at info level and search detail at
	// debug. Defaults to a no-op logger.
	Logger zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.SeasonalPeriod == 0 {
		o.SeasonalPeriod = DefaultSeasonalPeriod
	}
	if o.YearsFuture == 0 {
		o.YearsFuture = DefaultYearsFuture
	}
	if o.Confidence == 0 {
		o.Confidence = DefaultConfidence
	}
	if o.Backend == "" {
		o.Backend = forecast.SARIMABackend
	}
	return o
}

// ModelReport pairs a fit summary with its residual diagnostics, one per
// fitted model.
type ModelReport struct {
	Summary     *forecast.Summary     `json:"summary"`
	Diagnostics *forecast.Diagnostics `json:"diagnostics"`
}

// ResultBundle is the terminal state of a workflow run: the future forecast,
// end-of-horizon ROI, validation accuracy, and the reports from both fits.
type ResultBundle struct {
	RunID  string `json:"run_id"`
	Series string `json:"series"`

	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`

	Backend string `json:"backend"`

	// Forecast is the future projection over 12*YearsFuture steps.
	Forecast *forecast.Result `json:"forecast"`

	// ROI is the end-of-horizon return against the first forecasted value.
	ROI forecast.ROIRow `json:"roi"`

	// Validation scores the train-only model against the held-out suffix.
	// Informational: a weak validation does not fail the run.
	Validation         *forecast.Report `json:"validation"`
	ValidationForecast *forecast.Result `json:"validation_forecast"`

	// Train reports on the model fitted to the training prefix, Full on
	// the refit over the whole series.
	Train ModelReport `json:"train"`
	Full  ModelReport `json:"full"`
}

// Run executes the pipeline on one series:
// split, select-and-fit on the training prefix, forecast against the
// held-out suffix, refit the full series at the selected order, forecast the
// future horizon, derive ROI, and package the bundle. Any stage failure
// aborts the run with no partial output; there is no retry.
func Run(s *timeseries.Series, opts Options) (*ResultBundle, error) {
	opts = opts.withDefaults()

	if s == nil || s.Len() == 0 {
		return nil, timeseries.ErrEmptySeries
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("series %q: %w", s.Name, err)
	}

	started := time.Now()
	runID := uuid.NewString()
	log := opts.Logger.With().
		Str("run_id", runID).
		Str("series", s.Name).
		Logger()

	log.Info().
		Int("observations", s.Len()).
		Float64("threshold", opts.Threshold).
		Int("years_future", opts.YearsFuture).
		Str("backend", opts.Backend).
		Msg("workflow started")

	split, err := timeseries.TrainTestSplit(s, opts.Threshold)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	log.Info().
		Int("train", split.Train.Len()).
		Int("test", split.Test.Len()).
		Msg("series split")

	cfg := forecast.Config{
		SeasonalPeriod: opts.SeasonalPeriod,
		MaxOrder:       opts.MaxOrder,
		Criterion:      opts.Criterion,
		Logger:         log,
	}
	trainEst, err := forecast.New(opts.Backend, cfg)
	if err != nil {
		return nil, err
	}
	if err := trainEst.Fit(split.Train); err != nil {
		return nil, fmt.Errorf("fit training model: %w", err)
	}
	trainSummary := trainEst.Summary()
	log.Info().Str("spec", trainSummary.Spec).Msg("training model fitted")

	validationForecast, err := trainEst.Forecast(split.Test.Len(), opts.Confidence)
	if err != nil {
		return nil, fmt.Errorf("validation forecast: %w", err)
	}
	validation, err := forecast.Accuracy(validationForecast, split.Test)
	if err != nil {
		return nil, fmt.Errorf("validation accuracy: %w", err)
	}
	log.Info().
		Float64("rmse", validation.RMSE).
		Float64("mape", validation.MAPE).
		Msg("validation forecast scored")

	fullEst, err := trainEst.Refit(s)
	if err != nil {
		return nil, fmt.Errorf("refit full series: %w", err)
	}
	log.Info().Str("spec", fullEst.Summary().Spec).Msg("full-series model fitted")

	horizon := 12 * opts.YearsFuture
	future, err := fullEst.Forecast(horizon, opts.Confidence)
	if err != nil {
		return nil, fmt.Errorf("future forecast: %w", err)
	}

	roi, err := forecast.ComputeROI(future)
	if err != nil {
		return nil, fmt.Errorf("roi: %w", err)
	}

	bundle := &ResultBundle{
		RunID:              runID,
		Series:             s.Name,
		StartedAt:          started,
		Elapsed:            time.Since(started),
		Backend:            opts.Backend,
		Forecast:           future,
		ROI:                roi.Final(),
		Validation:         validation,
		ValidationForecast: validationForecast,
		Train: ModelReport{
			Summary:     trainSummary,
			Diagnostics: trainEst.Diagnostics(),
		},
		Full: ModelReport{
			Summary:     fullEst.Summary(),
			Diagnostics: fullEst.Diagnostics(),
		},
	}

	log.Info().
		Dur("elapsed", bundle.Elapsed).
		Int("horizon", future.Horizon()).
		Float64("roi_final", bundle.ROI.Forecast).
		Msg("workflow finished")

	return bundle, nil
}
