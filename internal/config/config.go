// Package config loads and saves the burnrate TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvOwner = "BURNRATE_OWNER"
	EnvDB    = "BURNRATE_DB"
)

// DefaultOwner is used until the user sets one.
const DefaultOwner = "local"

// Config holds all burnrate configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
	TUI        TUIConfig        `toml:"tui"`
}

// GeneralConfig holds data location and dashboard preferences.
type GeneralConfig struct {
	Owner       string `toml:"owner"`
	DBPath      string `toml:"db_path,omitempty"`
	DefaultSort string `toml:"default_sort"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds the background service settings.
type DaemonConfig struct {
	Addr        string `toml:"addr"`
	IntervalSec int    `toml:"interval_sec"`
}

// TUIConfig holds dashboard refresh settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Owner:       DefaultOwner,
			DefaultSort: "margin",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:        "127.0.0.1:8787",
			IntervalSec: 60,
		},
		TUI: TUIConfig{
			AutoRefresh:        true,
			RefreshIntervalSec: 30,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "burnrate")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "burnrate")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "burnrate")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "burnrate")
}

// DBPath returns the database path from cfg, or the default under DataDir.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), "burnrate.db")
}

// LoadEnv reads a .env file from the working directory into the process
// environment, if there is one. Variables already set are kept.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied on top.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(&cfg)
	normalize(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvOwner); v != "" {
		cfg.General.Owner = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		cfg.General.DBPath = v
	}
}

func normalize(cfg *Config) {
	def := DefaultConfig()
	if cfg.General.Owner == "" {
		cfg.General.Owner = def.General.Owner
	}
	if cfg.General.DefaultSort == "" {
		cfg.General.DefaultSort = def.General.DefaultSort
	}
	if cfg.Daemon.Addr == "" {
		cfg.Daemon.Addr = def.Daemon.Addr
	}
	if cfg.Daemon.IntervalSec <= 0 {
		cfg.Daemon.IntervalSec = def.Daemon.IntervalSec
	}
	if cfg.TUI.RefreshIntervalSec <= 0 {
		cfg.TUI.RefreshIntervalSec = def.TUI.RefreshIntervalSec
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
