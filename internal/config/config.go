// Package config loads and saves the application configuration via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  string        `mapstructure:"server"` // active auction house server (population)
	Cache   CacheConfig   `mapstructure:"cache"`
	Ffxiah  FfxiahConfig  `mapstructure:"ffxiah"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CacheConfig controls the durable price cache
type CacheConfig struct {
	Dir        string `mapstructure:"dir"`         // price database directory
	TTLEnabled bool   `mapstructure:"ttl_enabled"` // enforce the 24h reuse window
}

// FfxiahConfig controls the outbound page fetcher
type FfxiahConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: "",
		Cache: CacheConfig{
			Dir:        defaultCachePath(),
			TTLEnabled: true,
		},
		Ffxiah: FfxiahConfig{
			BaseURL:        "https://www.ffxiah.com",
			TimeoutSeconds: 30,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("AHSYNC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the current configuration to file
func Save(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("server", cfg.Server)
	viper.Set("cache.dir", cfg.Cache.Dir)
	viper.Set("cache.ttl_enabled", cfg.Cache.TTLEnabled)
	viper.Set("ffxiah.base_url", cfg.Ffxiah.BaseURL)
	viper.Set("ffxiah.timeout_seconds", cfg.Ffxiah.TimeoutSeconds)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ahsync")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "ahsync")
	}
}

// defaultCachePath returns the default cache directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "ahsync", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "ahsync", "cache")
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ahsync", "ahsync.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "ahsync", "ahsync.log")
	}
}
