package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/tasklist/internal/storage"
)

// doctorCommand reports on config and the stored task data without
// modifying anything.
func doctorCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("tasklist doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := e.cfg

	fmt.Println("tasklist doctor")
	fmt.Println("===============")
	fmt.Println()

	allOK := true

	// Check config
	fmt.Println("Config:")
	if len(e.sources.Files) == 0 {
		fmt.Println("  ✅ Files: none (using defaults)")
	}
	for _, f := range e.sources.Files {
		fmt.Printf("  ✅ File: %s\n", f)
	}
	for _, w := range e.sources.Warnings {
		fmt.Printf("  ⚠️  %s\n", w)
	}
	kind, err := cfg.BackendKind()
	if err != nil {
		fmt.Printf("  ❌ Backend: %v\n", err)
		allOK = false
	} else {
		fmt.Printf("  ✅ Backend: %s\n", kind)
	}
	fmt.Printf("  ✅ Storage key: %s\n", cfg.StorageKey)
	fmt.Println()

	// Check state directory
	if kind == storage.KindFile {
		fmt.Printf("State directory: %s\n", cfg.StateDir)
		if !cfg.HasStateDir() {
			fmt.Println("  ⚠️  Unavailable (no home directory), changes will not be saved")
		} else if info, err := os.Stat(cfg.StateDir); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("  ⚠️  Not found (will be created on first save)")
			} else {
				fmt.Printf("  ❌ Error: %v\n", err)
				allOK = false
			}
		} else if !info.IsDir() {
			fmt.Println("  ❌ Error: path is not a directory")
			allOK = false
		} else {
			fmt.Println("  ✅ OK")
		}
		fmt.Println()
	}

	// Check stored data
	backend, err := openBackend(e)
	if err != nil {
		fmt.Printf("Task data:\n  ❌ Error: %v\n\n", err)
		allOK = false
	} else if !checkTaskData(backend, *verbose) {
		allOK = false
	}

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. tasklist may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkTaskData validates the slot behind backend, reading it directly so a
// corrupt slot is reported rather than discarded.
func checkTaskData(backend storage.Backend, verbose bool) bool {
	sb, ok := backend.(*storage.SlotBackend)
	if !ok {
		fmt.Println("Task data: not persisted")
		fmt.Println("  ⚠️  Changes are discarded when tasklist exits")
		fmt.Println()
		return true
	}

	fmt.Printf("Task data: %s\n", sb.Location())
	defer fmt.Println()

	data, err := sb.Slots().Read(sb.Key())
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Println("  ⚠️  Not found (starts empty)")
		return true
	}
	if err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		return false
	}

	result := storage.Validate(data)
	for _, w := range result.Warnings {
		fmt.Printf("  ⚠️  %s\n", w)
	}
	if !result.Valid {
		fmt.Println("  ❌ Validation failed (data will be discarded on next start):")
		for _, e := range result.Errors {
			fmt.Printf("     - %v\n", e)
		}
		return false
	}
	fmt.Println("  ✅ Valid")

	tasks, err := storage.Decode(data)
	if err != nil {
		fmt.Printf("  ❌ Load error: %v\n", err)
		return false
	}
	summary := tasks.Summary()
	fmt.Printf("  Tasks: %d (%d active, %d completed)\n", summary.Total, summary.Active, summary.Completed)
	if verbose {
		for _, t := range tasks {
			printTask(t, true)
		}
	}
	return true
}
