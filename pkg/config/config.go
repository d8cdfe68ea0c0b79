// Package config holds the on-disk configuration, its defaults and
// validation, plus the injectable dependencies the entrypoint runs on.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ptykit/pkg/resize"
)

// CurrentVersion is the config schema version this build understands.
const CurrentVersion = 1

// Config is the persisted configuration. Field tags serve both the
// viper unmarshal and plain YAML writes.
type Config struct {
	ConfigVersion int    `mapstructure:"config_version" yaml:"config_version"`
	Shell         string `mapstructure:"shell" yaml:"shell"`
	WorkDir       string `mapstructure:"workdir" yaml:"workdir"`

	Terminal Terminal `mapstructure:"terminal" yaml:"terminal"`
	Sessions Sessions `mapstructure:"sessions" yaml:"sessions"`
	Logging  Logging  `mapstructure:"logging" yaml:"logging"`
}

// Terminal groups the per-terminal knobs. Cols and Rows of zero mean
// the size is probed from the controlling terminal at startup.
type Terminal struct {
	Cols             int `mapstructure:"cols" yaml:"cols"`
	Rows             int `mapstructure:"rows" yaml:"rows"`
	HistoryLines     int `mapstructure:"history_lines" yaml:"history_lines"`
	RenderDebounceMs int `mapstructure:"render_debounce_ms" yaml:"render_debounce_ms"`
	ResizeDebounceMs int `mapstructure:"resize_debounce_ms" yaml:"resize_debounce_ms"`
	ScrollLines      int `mapstructure:"scroll_lines" yaml:"scroll_lines"`
}

// Sessions ...
type Sessions struct {
	Max           int `mapstructure:"max" yaml:"max"`
	OpenTimeoutMs int `mapstructure:"open_timeout_ms" yaml:"open_timeout_ms"`
}

// Logging ...
type Logging struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		ConfigVersion: CurrentVersion,
		Terminal: Terminal{
			HistoryLines:     10000,
			RenderDebounceMs: 8,
			ResizeDebounceMs: 50,
			ScrollLines:      3,
		},
		Sessions: Sessions{
			Max:           8,
			OpenTimeoutMs: 5000,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("os.UserConfigDir(): %s", err)
	}
	return filepath.Join(dir, "ptykit", "config.yaml"), nil
}

// RenderInterval returns the render debounce as a duration.
func (c *Config) RenderInterval() time.Duration {
	return time.Duration(c.Terminal.RenderDebounceMs) * time.Millisecond
}

// ResizeDelay returns the resize debounce as a duration.
func (c *Config) ResizeDelay() time.Duration {
	return time.Duration(c.Terminal.ResizeDebounceMs) * time.Millisecond
}

// OpenTimeout returns how long to wait for a free session slot.
func (c *Config) OpenTimeout() time.Duration {
	return time.Duration(c.Sessions.OpenTimeoutMs) * time.Millisecond
}

// Validate checks the configuration and returns all problems found.
func (c *Config) Validate() []error {
	var errors []error

	if c.ConfigVersion != CurrentVersion {
		errors = append(errors, fmt.Errorf("'config_version' must be %d, found %d", CurrentVersion, c.ConfigVersion))
	}

	if c.Terminal.Cols != 0 && c.Terminal.Cols < resize.MinCols {
		errors = append(errors, fmt.Errorf("'terminal.cols' must be 0 (probe) or at least %d", resize.MinCols))
	}
	if c.Terminal.Rows != 0 && c.Terminal.Rows < resize.MinRows {
		errors = append(errors, fmt.Errorf("'terminal.rows' must be 0 (probe) or at least %d", resize.MinRows))
	}
	if c.Terminal.HistoryLines < 0 {
		errors = append(errors, fmt.Errorf("'terminal.history_lines' must not be negative"))
	}
	if c.Terminal.RenderDebounceMs < 1 || c.Terminal.RenderDebounceMs > 1000 {
		errors = append(errors, fmt.Errorf("'terminal.render_debounce_ms' must be in [1, 1000]"))
	}
	if c.Terminal.ResizeDebounceMs < 1 || c.Terminal.ResizeDebounceMs > 5000 {
		errors = append(errors, fmt.Errorf("'terminal.resize_debounce_ms' must be in [1, 5000]"))
	}
	if c.Terminal.ScrollLines < 1 || c.Terminal.ScrollLines > 100 {
		errors = append(errors, fmt.Errorf("'terminal.scroll_lines' must be in [1, 100]"))
	}

	if c.Sessions.Max < 0 {
		errors = append(errors, fmt.Errorf("'sessions.max' must not be negative"))
	}
	if c.Sessions.OpenTimeoutMs < 1 {
		errors = append(errors, fmt.Errorf("'sessions.open_timeout_ms' must be at least 1"))
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Errorf("'logging.level' must be one of trace, debug, info, warn, error"))
	}

	return errors
}
