package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"gbcompare/internal/measurements"
)

// Config represents the application configuration
type Config struct {
	LogLevel     string             `toml:"log_level"`
	Database     DatabaseConfig     `toml:"database"`
	Measurements MeasurementsConfig `toml:"measurements"`
	Analysis     AnalysisConfig     `toml:"analysis"`
}

// DatabaseConfig locates the Gadgetbridge export
type DatabaseConfig struct {
	Path     string `toml:"path"`
	DeviceID int64  `toml:"device_id"` // 0 for every device
}

// MeasurementsConfig locates the manual measurement file
type MeasurementsConfig struct {
	Path    string               `toml:"path"`
	Columns measurements.Columns `toml:"columns"`
}

// AnalysisConfig holds analysis settings
type AnalysisConfig struct {
	Timezone string `toml:"timezone"` // IANA name; empty for the system zone
	Workers  int    `toml:"workers"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

const placeholderDatabase = "/path/to/Gadgetbridge.db"

var logLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Measurements: MeasurementsConfig{
			Columns: measurements.DefaultColumns(),
		},
		Analysis: AnalysisConfig{
			Workers: 4,
		},
	}
}

// Load reads the configuration from path, or ~/.gbcompare/config.toml when
// path is empty. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	// Apply defaults for values set to zero explicitly
	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = DefaultConfig().Analysis.Workers
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultConfig().LogLevel
	}

	return &cfg, nil
}

// Save writes the configuration to path, or the default location when
// path is empty
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing config file: %w", err)
	}
	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample(path string) error {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Database.Path = placeholderDatabase
	example.Database.DeviceID = 1
	example.Measurements.Path = "/path/to/measurements.csv"

	return Save(&example, path)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Database.Path == "" || c.Database.Path == placeholderDatabase {
		return errors.New("database.path is required - point it at a Gadgetbridge export")
	}
	if c.Database.DeviceID < 0 {
		return fmt.Errorf("database.device_id must not be negative, got %d", c.Database.DeviceID)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must not be negative, got %d", c.Analysis.Workers)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.LogLevel != "" && !isLogLevel(c.LogLevel) {
		return fmt.Errorf("log_level must be one of %s, got %q", strings.Join(logLevels, ", "), c.LogLevel)
	}
	if c.Measurements.Columns.Date == "" {
		return errors.New("measurements.columns.date is required")
	}

	return nil
}

// Location returns the time zone calendar days are computed in
func (c *Config) Location() (*time.Location, error) {
	if c.Analysis.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Analysis.Timezone)
	if err != nil {
		return nil, fmt.Errorf("analysis.timezone %q: %w", c.Analysis.Timezone, err)
	}
	return loc, nil
}

func isLogLevel(level string) bool {
	return slices.Contains(logLevels, strings.ToLower(level))
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".gbcompare"), nil
}
