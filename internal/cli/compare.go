package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gbcompare/internal/measurements"
	"gbcompare/internal/report"
)

var (
	compareMeasurements string
	compareOutput       string
	compareFormat       string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare decoded workouts with manual measurements",
	Long: `Decode every workout of the configured device and join the results with the
manual measurement file by calendar day.

Each row holds the manual and decoded average, minimum and maximum workout
heart rate, plus manual resting heart rate against average sleep heart rate
of the night before. Days present on only one side have empty cells.

Examples:
  gbcompare compare
  gbcompare compare --measurements notes.csv -o comparison.csv
  gbcompare compare --format table`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareMeasurements, "measurements", "", "Measurement CSV (overrides config)")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "Output file (default stdout)")
	compareCmd.Flags().StringVar(&compareFormat, "format", "csv", "Output format: csv or table")
}

func runCompare(cmd *cobra.Command, args []string) error {
	if compareFormat != "csv" && compareFormat != "table" {
		return fmt.Errorf("unknown format %q, want csv or table", compareFormat)
	}

	path := cfg.Measurements.Path
	if compareMeasurements != "" {
		path = compareMeasurements
	}
	if path == "" {
		return errors.New("no measurement file - pass --measurements or set measurements.path")
	}

	db, svc, err := openService()
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	manual, err := measurements.Load(path, cfg.Measurements.Columns, loc)
	if err != nil {
		return err
	}

	rows, err := svc.Compare(cmd.Context(), manual)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if compareOutput != "" {
		f, err := os.Create(compareOutput)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if compareFormat == "table" {
		_, err = fmt.Fprintln(out, report.ComparisonTable(rows))
		return err
	}
	return report.WriteComparison(out, rows)
}
