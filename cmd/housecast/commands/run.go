package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/calderaproj/housecast/timeseries"
	"github.com/calderaproj/housecast/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full forecasting workflow for one zipcode",
	Long: `Load the price frame, select the zipcode's series, and run the whole
pipeline: split, order selection and fit on the training prefix,
validation against the held-out suffix, refit on the full series, future
forecast, and ROI.

Example:
  housecast run --data prices.csv --zipcode 30331 --years-future 2 --out bundle.json`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("data", "", "wide CSV of price series")
	runCmd.Flags().String("zipcode", "", "series column to model")
	runCmd.Flags().Int("years-future", 2, "years of future forecast")
	runCmd.Flags().Int("years-past", 5, "years of history shown in the report")
	runCmd.Flags().Float64("confidence", 0.95, "forecast interval coverage")
	runCmd.Flags().String("out", "", "write the result bundle as JSON to this file")
	addModelFlags(runCmd)
	_ = runCmd.MarkFlagRequired("zipcode")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	zipcode, _ := cmd.Flags().GetString("zipcode")
	outPath, _ := cmd.Flags().GetString("out")
	log := newLogger(cfg)

	series, err := loadSeries(cfg.Data.Path, zipcode)
	if err != nil {
		return err
	}

	bundle, err := workflow.Run(series, workflow.Options{
		Threshold:      cfg.Model.Threshold,
		SeasonalPeriod: cfg.Model.SeasonalPeriod,
		YearsFuture:    cfg.Forecast.YearsFuture,
		MaxOrder:       cfg.Model.MaxOrder,
		Criterion:      cfg.Model.Criterion,
		Confidence:     cfg.Forecast.Confidence,
		Backend:        cfg.Model.Backend,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("workflow for zipcode %s: %w", zipcode, err)
	}

	printBundle(cmd.OutOrStdout(), series, bundle, cfg.Forecast.YearsPast)

	if outPath != "" {
		data, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal bundle: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write bundle: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nBundle written to %s\n", outPath)
	}
	return nil
}

func loadSeries(path, zipcode string) (*timeseries.Series, error) {
	if path == "" {
		return nil, fmt.Errorf("no data file: set --data, data.path, or HOUSECAST_DATA_PATH")
	}
	frame, err := timeseries.LoadFrame(path)
	if err != nil {
		return nil, err
	}
	return frame.Column(zipcode)
}

func printBundle(w io.Writer, series *timeseries.Series, b *workflow.ResultBundle, yearsPast int) {
	fmt.Fprintf(w, "Zipcode %s — %s\n", b.Series, b.Full.Summary.Spec)
	fmt.Fprintf(w, "Run %s, %d observations, elapsed %s\n\n", b.RunID, series.Len(), b.Elapsed.Round(time.Millisecond))

	recent := series.LastYears(yearsPast, 12)
	fmt.Fprintf(w, "History (last %d years): %s %.0f -> %s %.0f\n",
		yearsPast,
		recent.StartTime().Format("2006-01"), recent.First(),
		recent.EndTime().Format("2006-01"), recent.Last())

	fmt.Fprintf(w, "Validation (%d held-out months): RMSE %.2f  MAE %.2f  MAPE %.2f%%\n\n",
		b.Validation.N, b.Validation.RMSE, b.Validation.MAE, b.Validation.MAPE)

	printReport(w, "Training fit", b.Train)
	printReport(w, "Full-series fit", b.Full)

	f := b.Forecast
	fmt.Fprintf(w, "Forecast horizon: %d months (%s to %s), %.0f%% intervals\n",
		f.Horizon(), f.Start().Format("2006-01"), f.End().Format("2006-01"), f.Confidence*100)
	last := f.Horizon() - 1
	fmt.Fprintf(w, "  End of horizon: %.0f  [%.0f, %.0f]\n",
		f.Forecast[last], f.Lower[last], f.Upper[last])
	fmt.Fprintf(w, "ROI at %s: %.2f%%  [%.2f%%, %.2f%%]\n",
		b.ROI.Timestamp.Format("2006-01"), b.ROI.Forecast, b.ROI.Lower, b.ROI.Upper)
}

func printReport(w io.Writer, title string, r workflow.ModelReport) {
	s := r.Summary
	d := r.Diagnostics
	fmt.Fprintf(w, "%s: %s  n=%d  AIC=%.2f  AICc=%.2f  BIC=%.2f\n",
		title, s.Spec, s.NObs, s.AIC, s.AICc, s.BIC)
	fmt.Fprintf(w, "  residuals: mean=%.4f std=%.4f  Ljung-Box p=%.3f  JB p=%.3f  DW=%.2f\n\n",
		d.ResidualMean, d.ResidualStd, d.LjungBoxPValue, d.JarqueBeraPValue, d.DurbinWatson)
}
