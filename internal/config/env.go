package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvStateDir      = "TASKLIST_STATE_DIR"
	EnvBackend       = "TASKLIST_BACKEND"
	EnvKey           = "TASKLIST_KEY"
	EnvLogLevel      = "TASKLIST_LOG_LEVEL"
	EnvLogFormat     = "TASKLIST_LOG_FORMAT"
	EnvLogTimestamps = "TASKLIST_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKLIST_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(EnvStateDir); v != "" {
		cfg.StateDir = v
		set("state_dir")
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Backend = v
		set("backend")
	}
	if v := os.Getenv(EnvKey); v != "" {
		cfg.StorageKey = v
		set("storage_key")
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
