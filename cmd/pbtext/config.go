package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const configFilename = "config.yml"

// Config holds defaults that flags can override.
type Config struct {
	StripANSI      bool   `yaml:"strip_ansi"`
	TrimNewline    bool   `yaml:"trim_newline"`
	LogLevel       string `yaml:"log_level"`
	SoakIterations int    `yaml:"soak_iterations"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:       "warn",
		SoakIterations: 10000,
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/pbtext/config.yml, falling back
// to the platform's user config directory.
func defaultConfigPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "pbtext", configFilename), nil
}

// loadConfig reads the config file at path. An empty path selects the
// default location, where a missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			slog.Debug("no user config dir", "error", err)
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.SoakIterations <= 0 {
		cfg.SoakIterations = defaultConfig().SoakIterations
	}

	slog.Debug("loaded config", "path", path)
	return cfg, nil
}

func (c Config) level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
}
