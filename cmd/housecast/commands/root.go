// Package commands implements the housecast CLI. All rendering lives here;
// the library packages return pure data.
package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/calderaproj/housecast/config"
	"github.com/calderaproj/housecast/logging"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "housecast",
	Short: "Seasonal ARIMA forecasting for zipcode-level housing prices",
	Long: `housecast models monthly housing price series and projects them into
the future: train/test split, automatic seasonal ARIMA order selection,
fitting, validation against the held-out suffix, a refit on the full
series, and a forecast with confidence intervals and return on
investment.

Input is a wide CSV: a date column followed by one column per zipcode.

Examples:
  housecast zipcodes --data prices.csv
  housecast orders --data prices.csv --zipcode 30331
  housecast run --data prices.csv --zipcode 30331 --years-future 2 --out bundle.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI, printing any error itself.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: housecast.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadConfig resolves file, environment, and flag settings for a command.
// Flags explicitly set on cmd win over everything.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data.Path, _ = flags.GetString("data")
	}
	if flags.Changed("threshold") {
		cfg.Model.Threshold, _ = flags.GetFloat64("threshold")
	}
	if flags.Changed("max-order") {
		cfg.Model.MaxOrder, _ = flags.GetInt("max-order")
	}
	if flags.Changed("criterion") {
		cfg.Model.Criterion, _ = flags.GetString("criterion")
	}
	if flags.Changed("seasonal-period") {
		cfg.Model.SeasonalPeriod, _ = flags.GetInt("seasonal-period")
	}
	if flags.Changed("backend") {
		cfg.Model.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("years-future") {
		cfg.Forecast.YearsFuture, _ = flags.GetInt("years-future")
	}
	if flags.Changed("years-past") {
		cfg.Forecast.YearsPast, _ = flags.GetInt("years-past")
	}
	if flags.Changed("confidence") {
		cfg.Forecast.Confidence, _ = flags.GetFloat64("confidence")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logging.New(os.Stderr, level, cfg.Logging.Console)
}

// addModelFlags registers the flags shared by commands that fit models.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("threshold", 0.85, "train/test split threshold")
	cmd.Flags().Int("max-order", 5, "maximum searched order for p, q, P, Q")
	cmd.Flags().String("criterion", "aic", "information criterion (aic|aicc|bic)")
	cmd.Flags().Int("seasonal-period", 12, "observations per season")
	cmd.Flags().String("backend", "sarima", "estimator backend")
}
