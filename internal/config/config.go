package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Backend       BackendConfig
	Log           LogConfig
	Settings      SettingsConfig
	Accessibility AccessibilityConfig
}

// BackendConfig holds the backend service endpoint.
type BackendConfig struct {
	URL            string
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string
	Level string
}

// SettingsConfig seeds the settings view on startup.
type SettingsConfig struct {
	LANOnly            bool   `mapstructure:"lan_only"`
	RelayEnabled       bool   `mapstructure:"relay_enabled"`
	DiagnosticsEnabled bool   `mapstructure:"diagnostics_enabled"`
	UpdateChannel      string `mapstructure:"update_channel"`
}

// AccessibilityConfig seeds the presentation flags on startup.
type AccessibilityConfig struct {
	ReducedMotion bool `mapstructure:"reduced_motion"`
	HighContrast  bool `mapstructure:"high_contrast"`
	LargeText     bool `mapstructure:"large_text"`
}

// Load reads configuration from file and env. Env var overrides use prefix LANBEAM_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("backend.url", "http://127.0.0.1:53317")
	v.SetDefault("backend.timeout_seconds", 10)
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "lanbeam", "lanbeam.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("settings.lan_only", true)
	v.SetDefault("settings.relay_enabled", false)
	v.SetDefault("settings.diagnostics_enabled", false)
	v.SetDefault("settings.update_channel", "stable")
	v.SetDefault("accessibility.reduced_motion", false)
	v.SetDefault("accessibility.high_contrast", false)
	v.SetDefault("accessibility.large_text", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("LANBEAM_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "lanbeam"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LANBEAM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings view so toggles survive a restart.
func Save(cfg Config) error {
	path := os.Getenv("LANBEAM_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "lanbeam", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("backend.url", cfg.Backend.URL)
	v.Set("backend.timeout_seconds", cfg.Backend.TimeoutSeconds)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("settings.lan_only", cfg.Settings.LANOnly)
	v.Set("settings.relay_enabled", cfg.Settings.RelayEnabled)
	v.Set("settings.diagnostics_enabled", cfg.Settings.DiagnosticsEnabled)
	v.Set("settings.update_channel", cfg.Settings.UpdateChannel)
	v.Set("accessibility.reduced_motion", cfg.Accessibility.ReducedMotion)
	v.Set("accessibility.high_contrast", cfg.Accessibility.HighContrast)
	v.Set("accessibility.large_text", cfg.Accessibility.LargeText)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
