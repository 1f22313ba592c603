package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/tasklist/internal/storage"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
	// Warnings lists keys in config files that no field accepts.
	Warnings []string
}

// Default values.
const (
	DefaultStateDir  = "~/.tasklist"
	DefaultBackend   = string(storage.KindFile)
	DefaultKey       = storage.DefaultKey
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Storage
	StateDir   string `toml:"state_dir"`
	Backend    string `toml:"backend"`
	StorageKey string `toml:"storage_key"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`

	// StateDirErr records why StateDir could not be resolved (computed).
	StateDirErr error `toml:"-"`
}

// BackendKind returns the parsed backend kind.
func (c *Config) BackendKind() (storage.Kind, error) {
	return storage.ParseKind(c.Backend)
}

// HasStateDir reports whether StateDir resolved to a usable path. It is
// false when StateDir is empty or needed a home directory the process
// does not have.
func (c *Config) HasStateDir() bool {
	return c.StateDir != "" && c.StateDirErr == nil
}

// Validate checks values that would otherwise fail later at open time.
func (c *Config) Validate() error {
	if _, err := c.BackendKind(); err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	if err := storage.ValidateKey(c.StorageKey); err != nil {
		return fmt.Errorf("storage_key: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format: unknown format %q, must be one of: text, json, logfmt", c.LogFormat)
	}
	return nil
}
