// Package cli implements the gbcompare command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"gbcompare/internal/config"
	"gbcompare/internal/service"
	"gbcompare/internal/store"
)

var (
	configPath  string
	dbPath      string
	deviceID    int64
	logLevel    string
	versionInfo string

	cfg       *config.Config
	cfgExists bool
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gbcompare",
	Short: "Compare Gadgetbridge workout data with manual measurements",
	Long: `gbcompare - decode a Gadgetbridge export and check it against your notes

Reads workout summaries and band samples from a Gadgetbridge SQLite export,
derives per-day workout and sleep heart rate, and joins them with a
manually kept measurement file.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.gbcompare/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Gadgetbridge database path (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&deviceID, "device-id", 0, "Device id (overrides config, 0 for all devices)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig merges the config file with command line overrides and sets
// up logging
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	switch {
	case errors.Is(err, config.ErrNoConfig) && configPath == "":
		defaults := config.DefaultConfig()
		loaded = &defaults
	case err != nil:
		return fmt.Errorf("loading config: %w", err)
	default:
		cfgExists = true
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		loaded.Database.Path = dbPath
	}
	if flags.Changed("device-id") {
		loaded.Database.DeviceID = deviceID
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	cfg = loaded

	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel))
	return nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// openService validates the config and opens the export
func openService() (*store.DB, *service.CompareService, error) {
	if cfg.Database.Path == "" && !cfgExists {
		return nil, nil, errors.New("no database configured - pass --db or run 'gbcompare init' and edit the config file")
	}
	if err := cfg.Validate(); err != nil {
		path := configPath
		if path == "" {
			path, _ = config.DefaultPath()
		}
		return nil, nil, fmt.Errorf("invalid config (%s): %w", path, err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	svc := service.NewCompareService(db, service.Options{
		DeviceID: cfg.Database.DeviceID,
		Location: loc,
		Workers:  cfg.Analysis.Workers,
		Logger:   slog.Default(),
	})
	return db, svc, nil
}
