package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
)

// Environment overrides, applied after the config file.
const (
	EnvLogLevel = "MOOLAH_LOG_LEVEL"
	EnvDB       = "MOOLAH_DB"
	EnvScenario = "MOOLAH_SCENARIO"
	EnvHorizon  = "MOOLAH_HORIZON_DAYS"
	EnvLogOut   = "MOOLAH_LOG_OUTPUT"
)

// Config holds all moolah configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Store      StoreConfig      `toml:"store"`
	Log        LogConfig        `toml:"log"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds forecast preferences.
type GeneralConfig struct {
	HorizonDays int    `toml:"horizon_days" default:"365"`
	Scenario    string `toml:"scenario,omitempty"`
}

// StoreConfig locates the scenario database. An empty path means the default
// under DataDir.
type StoreConfig struct {
	Path string `toml:"path,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level" default:"warn"`
	Format string `toml:"format" default:"console"`
	// Output is stderr, stdout, or a file path to append to.
	Output string `toml:"output" default:"stderr"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" default:"flexoki-dark"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	var cfg Config
	defaults.MustSet(&cfg)
	return cfg
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "moolah")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "moolah")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "moolah")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "moolah")
}

// DBPath returns the configured database path or the default one.
func (c Config) DBPath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(DataDir(), "moolah.db")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides. A .env file in the working directory is
// read first when present.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if err := LoadDotEnv(".env"); err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(ConfigPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
		// Keys present but empty fall back to defaults.
		if err := defaults.Set(&cfg); err != nil {
			return cfg, fmt.Errorf("applying defaults: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogOut); v != "" {
		cfg.Log.Output = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv(EnvScenario); v != "" {
		cfg.General.Scenario = v
	}
	if v := os.Getenv(EnvHorizon); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return fmt.Errorf("%s: want a non-negative number of days, got %q", EnvHorizon, v)
		}
		cfg.General.HorizonDays = days
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
