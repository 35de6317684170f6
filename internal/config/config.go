// Package config handles configuration loading from files, defaults, and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"daygrid/internal/timegrid"
)

// Config holds the application configuration.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// WindowConfig holds the display window and grid settings. EndHour may
// exceed 24 so the window can run past midnight (25 means 01:00 next day).
type WindowConfig struct {
	StartHour   int `toml:"start_hour"`   // e.g., 7
	EndHour     int `toml:"end_hour"`     // e.g., 25 (01:00 next day)
	GridMinutes int `toml:"grid_minutes"` // 5, 10, 15, or 30
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha" or "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			StartHour:   7,
			EndHour:     25,
			GridMinutes: 30,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "daygrid.db"
	}
	return filepath.Join(home, ".local", "share", "daygrid", "daygrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "daygrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and
// env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies
// env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DAYGRID_START_HOUR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window.StartHour = n
		}
	}
	if v := os.Getenv("DAYGRID_END_HOUR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window.EndHour = n
		}
	}
	if v := os.Getenv("DAYGRID_GRID_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window.GridMinutes = n
		}
	}
	if v := os.Getenv("DAYGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("DAYGRID_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	w := c.Window
	if w.StartHour < 0 || w.StartHour > 23 {
		return fmt.Errorf("start_hour must be between 0 and 23, got %d", w.StartHour)
	}
	if w.EndHour <= w.StartHour {
		return errors.New("end_hour must be after start_hour")
	}
	if w.EndHour > w.StartHour+24 {
		return errors.New("window cannot span more than 24 hours")
	}
	if !validGrid(w.GridMinutes) {
		return fmt.Errorf("grid_minutes must be one of %v, got %d", timegrid.ValidGridMinutes, w.GridMinutes)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

func validGrid(m int) bool {
	for _, g := range timegrid.ValidGridMinutes {
		if m == g {
			return true
		}
	}
	return false
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
