package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by environment variables (TASKLIST_*) or CLI flags

# Directory holding the task list (supports ~ expansion and %VAR% on Windows).
# Relative paths are resolved against the current directory.
state_dir = "~/.tasklist"

# Storage backend: file, memory, or none
#   file    persists to <state_dir>/<storage_key>.json
#   memory  keeps tasks for the life of the process
#   none    never persists
backend = "file"

# Name of the slot the task list is saved under
storage_key = "tasks"

# Logging
log_level = "info"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
