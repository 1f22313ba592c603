// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/actions"
	"github.com/nibzard/tasklist/internal/config"
	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/storage"
	"github.com/nibzard/tasklist/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// env carries what every subcommand needs.
type env struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	logger  *log.Logger
}

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	cfg := cws.Config
	e := &env{
		cfg:     cfg,
		sources: cws,
		logger:  logging.FromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller),
	}
	for _, w := range cws.Warnings {
		e.logger.Warn("Ignoring config entry", "detail", w)
	}

	// With no subcommand, list the tasks
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "add":
		return addCommand(e, remainingArgs)
	case "toggle", "done":
		return toggleCommand(e, remainingArgs)
	case "rm", "delete":
		return rmCommand(e, remainingArgs)
	case "clear":
		return clearCommand(e, remainingArgs)
	case "ls", "list":
		return lsCommand(e, remainingArgs)
	case "tui":
		return tuiCommand(ctx, e, remainingArgs)
	case "doctor":
		return doctorCommand(e, remainingArgs)
	case "config":
		return configCommand(e, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openBackend resolves the configured backend. The file backend degrades to
// a no-op backend when there is no usable state directory.
func openBackend(e *env) (storage.Backend, error) {
	kind, err := e.cfg.BackendKind()
	if err != nil {
		return nil, err
	}
	if kind == storage.KindFile && !e.cfg.HasStateDir() {
		e.logger.Warn("No durable storage available, changes will not be saved", "err", e.cfg.StateDirErr)
		return storage.NopBackend{}, nil
	}
	return storage.Open(kind, e.cfg.StateDir, e.cfg.StorageKey)
}

// openStore loads the task list and returns the store with its actions.
func openStore(e *env) (*store.Store, *actions.Actions, error) {
	backend, err := openBackend(e)
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}
	s, err := store.New(backend, store.WithLogger(e.logger))
	if err != nil {
		return nil, nil, err
	}
	return s, actions.New(s, actions.WithLogger(e.logger)), nil
}

func versionCommand() error {
	fmt.Printf("tasklist version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasklist - a small persistent task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <title>        Add a task")
	fmt.Fprintln(w, "  toggle <id>...     Mark tasks completed or active again")
	fmt.Fprintln(w, "  rm <id>...         Delete tasks")
	fmt.Fprintln(w, "  clear              Delete all completed tasks")
	fmt.Fprintln(w, "  ls                 List tasks (default command)")
	fmt.Fprintln(w, "  tui                Launch terminal UI")
	fmt.Fprintln(w, "  doctor             Check config and stored task data")
	fmt.Fprintln(w, "  config [example]   Show resolved config, or print an example file")
	fmt.Fprintln(w, "  version            Show version information")
	fmt.Fprintln(w, "  help               Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ids may be shortened to any unique prefix of at least 6 characters.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -active      Only show active tasks")
	fmt.Fprintln(w, "  -completed   Only show completed tasks")
	fmt.Fprintln(w, "  -v           Show full ids and creation times")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tui Options (use with 'tui' command):")
	fmt.Fprintln(w, "  -filter string")
	fmt.Fprintln(w, "        Initial filter (all|active|completed)")
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
