package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk defaults file.
type FileConfig struct {
	Color      string `yaml:"color"`
	LineNumber bool   `yaml:"line_number"`
	IgnoreCase bool   `yaml:"ignore_case"`
	Hidden     bool   `yaml:"hidden"`
	NoIgnore   bool   `yaml:"no_ignore"`
	LogLevel   string `yaml:"log_level"`
}

// LoadDefaults returns the default config with the defaults file and
// environment applied. Command-line flags are layered on top by the caller.
// A missing defaults file is not an error.
func LoadDefaults() (Config, error) {
	cfg := DefaultConfig()

	if path := configPath(); path != "" {
		if err := loadFromFile(&cfg, path); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadFromEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("load environment: %w", err)
	}
	return cfg, nil
}

// configPath returns the defaults file location.
func configPath() string {
	if path := os.Getenv("GOGREP_CONFIG_PATH"); path != "" {
		return path
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gogrep", "config.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "gogrep", "config.yaml")
	}
	return ""
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) error {
	if fc.Color != "" {
		mode, err := ParseColorMode(fc.Color)
		if err != nil {
			return err
		}
		cfg.Color = mode
	}
	if fc.LogLevel != "" {
		lvl, err := log.ParseLevel(fc.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = lvl
	}
	cfg.LineNumbers = cfg.LineNumbers || fc.LineNumber
	cfg.IgnoreCase = cfg.IgnoreCase || fc.IgnoreCase
	cfg.Hidden = cfg.Hidden || fc.Hidden
	cfg.NoIgnore = cfg.NoIgnore || fc.NoIgnore
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("GOGREP_COLOR"); v != "" {
		mode, err := ParseColorMode(strings.ToLower(v))
		if err != nil {
			return err
		}
		cfg.Color = mode
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = ColorNever
	}
	if v := os.Getenv("GOGREP_LOG_LEVEL"); v != "" {
		lvl, err := log.ParseLevel(v)
		if err != nil {
			return err
		}
		cfg.LogLevel = lvl
	}
	return nil
}
