// Package config handles moneytrack's on-disk configuration and the paths
// for its persisted client state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all moneytrack configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// APIConfig holds server connection settings.
type APIConfig struct {
	BaseURL            string `toml:"base_url"`
	RequestTimeoutSecs int    `toml:"request_timeout_secs"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	PageSize int `toml:"page_size"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:            "http://localhost:8000",
			RequestTimeoutSecs: 10,
		},
		General: GeneralConfig{
			PageSize: 10,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "moneytrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "moneytrack")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// TokensPath returns the path of the persisted token pair.
func TokensPath() string {
	return filepath.Join(ConfigDir(), "tokens.json")
}

// SnapshotPath returns the path of the offline snapshot cache.
func SnapshotPath() string {
	return filepath.Join(ConfigDir(), "snapshot.db")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides. A local .env file is honored the same way
// real environment variables are.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	_ = godotenv.Load()
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets MONEYTRACK_* variables override file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("MONEYTRACK_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("MONEYTRACK_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.RequestTimeoutSecs = n
		}
	}
	if v := os.Getenv("MONEYTRACK_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.General.PageSize = n
		}
	}
	if v := os.Getenv("MONEYTRACK_THEME"); v != "" {
		cfg.Appearance.Theme = v
	}
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
