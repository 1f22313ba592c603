package config

import (
	"flag"
)

// flagToSource maps flag names to source field names.
var flagToSource = map[string]string{
	"state-dir":      "state_dir",
	"backend":        "backend",
	"key":            "storage_key",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines and parses CLI flags. Only flags that were set on the
// command line override cfg; if sources is non-nil they are recorded there.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}

	// Bind to copies so unset flags never clobber earlier layers.
	stateDir := cfg.StateDir
	backend := cfg.Backend
	key := cfg.StorageKey
	logLevel := cfg.LogLevel
	logFormat := cfg.LogFormat
	logTimestamps := cfg.LogTimestamps
	logCaller := cfg.LogCaller

	fs.StringVar(&stateDir, "state-dir", stateDir, "Directory holding the task list")
	fs.StringVar(&backend, "backend", backend, "Storage backend (file, memory, none)")
	fs.StringVar(&key, "key", key, "Storage key the task list is saved under")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", logFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", logTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", logCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "state-dir":
			cfg.StateDir = stateDir
		case "backend":
			cfg.Backend = backend
		case "key":
			cfg.StorageKey = key
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		case "log-caller":
			cfg.LogCaller = logCaller
		default:
			return
		}
		if sources != nil {
			sources[flagToSource[f.Name]] = SourceFlag
		}
	})

	return nil
}
