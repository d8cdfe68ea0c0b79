package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads the config file at path layered over the defaults. An
// empty path means the per-user location. A missing file just yields
// the defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	def := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("config_version", def.ConfigVersion)
	v.SetDefault("shell", def.Shell)
	v.SetDefault("workdir", def.WorkDir)
	v.SetDefault("terminal.cols", def.Terminal.Cols)
	v.SetDefault("terminal.rows", def.Terminal.Rows)
	v.SetDefault("terminal.history_lines", def.Terminal.HistoryLines)
	v.SetDefault("terminal.render_debounce_ms", def.Terminal.RenderDebounceMs)
	v.SetDefault("terminal.resize_debounce_ms", def.Terminal.ResizeDebounceMs)
	v.SetDefault("terminal.scroll_lines", def.Terminal.ScrollLines)
	v.SetDefault("sessions.max", def.Sessions.Max)
	v.SetDefault("sessions.open_timeout_ms", def.Sessions.OpenTimeoutMs)
	v.SetDefault("logging.level", def.Logging.Level)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %s", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling %s: %s", path, err)
	}

	return &cfg, nil
}

// WriteDefault writes the default configuration to path, or to the
// per-user location when path is empty. It refuses to overwrite an
// existing file unless force is set. The resolved path is returned.
func WriteDefault(path string, force bool) (string, error) {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = p
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}

	cfg := DefaultConfig()
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return "", fmt.Errorf("yaml.Marshal(): %s", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %s", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %s", path, err)
	}

	return path, nil
}
