package cmd

import (
	"fmt"
	"strconv"

	"github.com/nibzard/tasklist/internal/config"
)

// configCommand prints the resolved configuration with the layer each value
// came from, or an example config file.
func configCommand(e *env, args []string) error {
	if len(args) > 0 {
		if args[0] != "example" || len(args) > 1 {
			return fmt.Errorf("unexpected arguments: %v", args)
		}
		fmt.Print(config.ExampleConfig())
		return nil
	}

	cfg := e.cfg
	values := []struct {
		field string
		value string
	}{
		{"state_dir", cfg.StateDir},
		{"backend", cfg.Backend},
		{"storage_key", cfg.StorageKey},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", strconv.FormatBool(cfg.LogTimestamps)},
		{"log_caller", strconv.FormatBool(cfg.LogCaller)},
	}

	for _, v := range values {
		fmt.Printf("%-15s %-40s (%s)\n", v.field, v.value, e.sources.Sources[v.field])
	}
	if len(e.sources.Files) > 0 {
		fmt.Println()
		fmt.Println("Files:")
		for _, f := range e.sources.Files {
			fmt.Printf("  %s\n", f)
		}
	}
	return nil
}
