// Package statedir provides constants and utilities for the .tasklist directory structure.
package statedir

import (
	"os"
	"path/filepath"
)

const (
	// Dir is the name of the tasklist state directory.
	Dir = ".tasklist"

	// AppName is the directory name used under OS config directories.
	AppName = "tasklist"

	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "tasklist.toml"

	// HiddenConfigFile is the alternative project config file name.
	HiddenConfigFile = ".tasklist.toml"
)

// Default returns ~/.tasklist, or an error when there is no home directory
// (for example under a service manager with no HOME set).
func Default() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, Dir), nil
}

// ConfigPath returns the config file path inside a state directory.
func ConfigPath(stateDir string) string {
	return filepath.Join(stateDir, DefaultConfigFile)
}

// SlotPath returns the file a slot key is stored in inside a state directory.
func SlotPath(stateDir, key string) string {
	return filepath.Join(stateDir, key+".json")
}
