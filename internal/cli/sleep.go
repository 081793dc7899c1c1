package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gbcompare/internal/report"
)

var sleepCmd = &cobra.Command{
	Use:   "sleep <YYYY-MM-DD>",
	Short: "Show sleep sessions of the night before a day",
	Long: `Segment the noon-to-noon window ending at noon of the given day into sleep
sessions and report the average sleep heart rate.

Examples:
  gbcompare sleep 2024-03-01 --device-id 1`,
	Args: cobra.ExactArgs(1),
	RunE: runSleep,
}

func init() {
	rootCmd.AddCommand(sleepCmd)
}

func runSleep(cmd *cobra.Command, args []string) error {
	if cfg.Database.DeviceID == 0 {
		return errors.New("sleep needs a device - pass --device-id or set database.device_id")
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
	day, err := parseDay(args[0], loc)
	if err != nil {
		return err
	}

	night, err := svc.Sleep(cmd.Context(), cfg.Database.DeviceID, day)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.SleepSummary(night))
	return nil
}
