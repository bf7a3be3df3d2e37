package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calderaproj/housecast/timeseries"
)

var zipcodesCmd = &cobra.Command{
	Use:   "zipcodes",
	Short: "List the series available in a price frame",
	Long: `Print every zipcode column in the wide CSV, with its observed range.

Example:
  housecast zipcodes --data prices.csv`,
	RunE: runZipcodes,
}

func init() {
	rootCmd.AddCommand(zipcodesCmd)
	zipcodesCmd.Flags().String("data", "", "wide CSV of price series")
}

func runZipcodes(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Data.Path == "" {
		return fmt.Errorf("no data file: set --data, data.path, or HOUSECAST_DATA_PATH")
	}

	frame, err := timeseries.LoadFrame(cfg.Data.Path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d series, %d rows\n", len(frame.Columns()), frame.Len())
	for _, name := range frame.Columns() {
		s, err := frame.Column(name)
		if err != nil {
			fmt.Fprintf(out, "  %-10s unusable: %v\n", name, err)
			continue
		}
		fmt.Fprintf(out, "  %-10s %3d obs  %s to %s\n",
			name, s.Len(),
			s.StartTime().Format("2006-01"), s.EndTime().Format("2006-01"))
	}
	return nil
}
