// Package config loads tinte settings from a config file, TINTE_* environment
// variables and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/Railly/tinte-sub002/internal/history"
	"github.com/Railly/tinte-sub002/internal/logging"
	"github.com/Railly/tinte-sub002/internal/models"
)

// EnvPrefix prefixes every environment override, e.g. TINTE_DEFAULT_MODE.
const EnvPrefix = "TINTE"

// Config is the full tinte configuration.
type Config struct {
	// Identity is the editing identity. Empty means the anonymous local editor.
	Identity string `mapstructure:"identity"`

	DataDir      string `mapstructure:"data_dir"`
	DatabasePath string `mapstructure:"database_path"`

	DefaultTheme string `mapstructure:"default_theme"`
	DefaultMode  string `mapstructure:"default_mode"`
	HistoryLimit int    `mapstructure:"history_limit"`

	Logging logging.Config `mapstructure:"logging"`
	Export  ExportConfig   `mapstructure:"export"`
}

// ExportConfig controls `tinte export`.
type ExportConfig struct {
	OutputDir string   `mapstructure:"output_dir"`
	Providers []string `mapstructure:"providers"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	dataDir := filepath.Join(xdg.DataHome, "tinte")
	return &Config{
		DataDir:      dataDir,
		DatabasePath: filepath.Join(dataDir, "tinte.db"),
		DefaultTheme: "tinte",
		DefaultMode:  string(models.ModeDark),
		HistoryLimit: history.DefaultLimit,
		Logging: logging.Config{
			Level:  "info",
			Format: "text",
		},
		Export: ExportConfig{
			OutputDir: ".",
		},
	}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/tinte/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "tinte", "config.yaml")
}

// Mode returns the configured default mode.
func (c *Config) Mode() models.Mode {
	mode, err := models.ParseMode(c.DefaultMode)
	if err != nil {
		return models.ModeDark
	}
	return mode
}

// Validate checks values that would otherwise fail much later.
func (c *Config) Validate() error {
	var errs []error
	if _, err := models.ParseMode(c.DefaultMode); err != nil {
		errs = append(errs, fmt.Errorf("default_mode: %w", err))
	}
	if c.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("history_limit: must not be negative, got %d", c.HistoryLimit))
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		errs = append(errs, errors.New("database_path: database_path is required"))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Load reads configuration. An explicit path must exist; otherwise the
// default path is read when present. Environment variables override file
// values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "tinte"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("identity", cfg.Identity)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("database_path", cfg.DatabasePath)
	v.SetDefault("default_theme", cfg.DefaultTheme)
	v.SetDefault("default_mode", cfg.DefaultMode)
	v.SetDefault("history_limit", cfg.HistoryLimit)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("export.output_dir", cfg.Export.OutputDir)
	v.SetDefault("export.providers", cfg.Export.Providers)
}
