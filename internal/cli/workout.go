package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"gbcompare/internal/report"
)

var (
	workoutOutput string
	workoutChart  bool
)

var workoutCmd = &cobra.Command{
	Use:   "workout-hr <session-id>",
	Short: "Export the heart rate series of a workout",
	Long: `Export the per-sample heart rate of one workout session as CSV
(timestamp_iso,heart_rate). Samples without a reading are skipped.

Examples:
  gbcompare workout-hr 42
  gbcompare workout-hr 42 -o run.csv --chart`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkout,
}

func init() {
	rootCmd.AddCommand(workoutCmd)
	workoutCmd.Flags().StringVarP(&workoutOutput, "output", "o", "", "Output file (default stdout)")
	workoutCmd.Flags().BoolVar(&workoutChart, "chart", false, "Plot the series in the terminal")
}

func runWorkout(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}

	db, svc, err := openService()
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	sess, err := svc.Session(cmd.Context(), id)
	if err != nil {
		return err
	}
	points, err := svc.WorkoutHeartRate(cmd.Context(), *sess)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No heart rate samples for session %d.\n", id)
		return nil
	}

	if workoutChart {
		if chart := report.HeartRateChart(points); chart != "" {
			fmt.Fprintln(cmd.OutOrStdout(), chart)
		}
		if workoutOutput == "" {
			return nil
		}
	}

	var out io.Writer = cmd.OutOrStdout()
	if workoutOutput != "" {
		f, err := os.Create(workoutOutput)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return report.WriteHeartRate(out, points)
}
