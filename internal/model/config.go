package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Clock24 switches list and detail times to 24-hour display.
	Clock24 bool `mapstructure:"clock_24" yaml:"clock_24"`

	// Theme selects the color theme, "default" or "mono".
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// ReminderConfig holds settings for the background reminder scheduler.
type ReminderConfig struct {
	// Enabled controls whether desktop notifications are delivered.
	// When false the app still tracks medications and doses.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// TickSec is how often (in seconds) the scheduler checks for due doses.
	TickSec int `mapstructure:"tick_sec" yaml:"tick_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DatabasePath is the location of the SQLite database file.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	Display   DisplayConfig  `mapstructure:"display" yaml:"display"`
	Reminders ReminderConfig `mapstructure:"reminders" yaml:"reminders"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/mediremind/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "mediremind", "config.yaml")
}

// DefaultDatabasePath returns the default SQLite database location,
// ~/.local/share/mediremind/mediremind.db.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "mediremind.db")
	}
	return filepath.Join(home, ".local", "share", "mediremind", "mediremind.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DatabasePath: DefaultDatabasePath(),
		Display: DisplayConfig{
			Clock24: false,
			Theme:   "default",
		},
		Reminders: ReminderConfig{
			Enabled: true,
			TickSec: 30,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database_path", DefaultDatabasePath())
	v.SetDefault("display.clock_24", false)
	v.SetDefault("display.theme", "default")
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.tick_sec", 30)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Reminders.TickSec <= 0 {
		cfg.Reminders.TickSec = 30
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database_path", cfg.DatabasePath)
	v.Set("display", cfg.Display)
	v.Set("reminders", cfg.Reminders)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
