package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"gbcompare/internal/huami"
	"gbcompare/internal/store"
)

var decodeFile bool

var decodeCmd = &cobra.Command{
	Use:   "decode <session-id | file>",
	Short: "Decode a raw activity summary",
	Long: `Decode the Huami summary blob of one workout session and print its fields.

With --file the argument is a file holding a raw blob instead of a session id.

Examples:
  gbcompare decode 42
  gbcompare decode --file summary.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().BoolVar(&decodeFile, "file", false, "Read the blob from a file")
}

func runDecode(cmd *cobra.Command, args []string) error {
	var blob []byte
	if decodeFile {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading blob: %w", err)
		}
		blob = data
	} else {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id %q", args[0])
		}
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

		sess, err := db.GetSession(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("getting session %d: %w", id, err)
		}
		blob = sess.RawSummary
	}

	printSummary(cmd.OutOrStdout(), len(blob), huami.Decode(blob))
	return nil
}

func printSummary(w io.Writer, size int, s *huami.Summary) {
	if s == nil {
		fmt.Fprintf(w, "No summary data (%d bytes)\n", size)
		return
	}

	fmt.Fprintf(w, "Version:    %d (%s, %d bytes)\n", s.Version, s.Format, size)
	fmt.Fprintf(w, "Raw kind:   %#04x\n", s.RawKind)
	fmt.Fprintf(w, "Active:     %s\n", optionalInt(s.ActiveSeconds, "s"))
	fmt.Fprintf(w, "Duration:   %s\n", optionalInt(s.DurationMinutes(), " min"))
	fmt.Fprintf(w, "Distance:   %s\n", optionalFloat(s.Distance, " m"))
	fmt.Fprintf(w, "Calories:   %s\n", optionalFloat(s.Calories, " kcal"))
	fmt.Fprintf(w, "Avg HR:     %s\n", optionalInt(s.AvgHeartRate, " bpm"))
	fmt.Fprintf(w, "Min HR:     %s\n", optionalInt(s.MinHeartRate, " bpm"))
	fmt.Fprintf(w, "Max HR:     %s\n", optionalInt(s.MaxHeartRate, " bpm"))
}

func optionalInt(v *int, unit string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d%s", *v, unit)
}

func optionalFloat(v *float32, unit string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%s", *v, unit)
}
