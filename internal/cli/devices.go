package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gbcompare/internal/report"
	"gbcompare/internal/store"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices in the export",
	Args:  cobra.NoArgs,
	RunE:  runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	if cfg.Database.Path == "" {
		return fmt.Errorf("no database configured - pass --db")
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	devices, err := db.ListDevices(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}
	if len(devices) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No devices found.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.DevicesTable(devices))
	return nil
}
