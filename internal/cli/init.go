package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gbcompare/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example config file",
	Long: `Write an example config file to ~/.gbcompare/config.toml (or --config).

An existing file is left untouched.`,
	Args: cobra.NoArgs,
	// The config may not exist yet
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	if err := config.CreateExample(path); err != nil {
		return fmt.Errorf("creating example config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Please edit the config file at:\n  %s\n\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), "Set database.path to your Gadgetbridge export and measurements.path to your measurement file.")
	return nil
}
