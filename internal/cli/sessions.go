package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gbcompare/internal/report"
)

var (
	sessionsFrom  string
	sessionsTo    string
	sessionsLimit int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List workout sessions",
	Long: `List workout sessions of the configured device with their decoded summary.

Examples:
  gbcompare sessions
  gbcompare sessions --device-id 2 --from 2024-03-01 --to 2024-04-01`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().StringVar(&sessionsFrom, "from", "", "First day to include (YYYY-MM-DD)")
	sessionsCmd.Flags().StringVar(&sessionsTo, "to", "", "Day to stop before (YYYY-MM-DD)")
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 0, "Show only the most recent sessions (0 for all)")
}

func runSessions(cmd *cobra.Command, args []string) error {
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
	from, err := parseDay(sessionsFrom, loc)
	if err != nil {
		return err
	}
	to, err := parseDay(sessionsTo, loc)
	if err != nil {
		return err
	}

	sessions, err := svc.Sessions(cmd.Context(), from, to)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
		return nil
	}
	if sessionsLimit > 0 && len(sessions) > sessionsLimit {
		sessions = sessions[len(sessions)-sessionsLimit:]
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.SessionsTable(sessions, loc, time.Now()))
	return nil
}

// parseDay parses a YYYY-MM-DD flag; empty is the zero time
func parseDay(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: want YYYY-MM-DD", value)
	}
	return t, nil
}
