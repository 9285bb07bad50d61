// Package config handles expman configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// Database settings
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// GlobalConfig contains global settings.
type GlobalConfig struct {
	// DataDir is where expman stores its data (default: ~/.local/share/expman).
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// ExperimentsRoot is where experiment directories live
	// (default: ~/experiments).
	ExperimentsRoot string `yaml:"experiments_root" mapstructure:"experiments_root"`

	// ProfilesDir holds reusable profile files
	// (default: ~/.config/expman/profiles).
	ProfilesDir string `yaml:"profiles_dir" mapstructure:"profiles_dir"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	// Path is the SQLite database file path.
	Path string `yaml:"path" mapstructure:"path"`

	// MaxConnections is the maximum number of database connections.
	MaxConnections int `yaml:"max_connections" mapstructure:"max_connections"`

	// BusyTimeoutMs is how long to wait for a locked database (milliseconds).
	BusyTimeoutMs int `yaml:"busy_timeout_ms" mapstructure:"busy_timeout_ms"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".local", "share", "expman")

	return &Config{
		Global: GlobalConfig{
			DataDir:         dataDir,
			ExperimentsRoot: filepath.Join(home, "experiments"),
			ProfilesDir:     filepath.Join(home, ".config", "expman", "profiles"),
		},
		Database: DatabaseConfig{
			Path:           filepath.Join(dataDir, "expman.db"),
			MaxConnections: 5,
			BusyTimeoutMs:  5000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be one of console, json")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	return nil
}

// EnsureDirectories creates the directories expman needs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Global.DataDir,
		c.Global.ExperimentsRoot,
		c.Global.ProfilesDir,
		filepath.Dir(c.Database.Path),
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
