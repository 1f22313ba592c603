package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/nibzard/tasklist/internal/config"
	"github.com/nibzard/tasklist/internal/storage"
	"github.com/nibzard/tasklist/internal/task"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
	}()

	runErr := fn()
	_ = w.Close()

	output, readErr := io.ReadAll(r)
	_ = r.Close()
	if readErr != nil {
		t.Fatalf("ReadAll() error = %v", readErr)
	}

	return string(output), runErr
}

// setupCLI isolates config lookup and points the state dir at a temp dir.
func setupCLI(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{config.EnvBackend, config.EnvKey, config.EnvLogFormat, config.EnvLogTimestamps, config.EnvLogCaller} {
		t.Setenv(key, "")
	}
	t.Setenv(config.EnvLogLevel, "error")
	stateDir := filepath.Join(home, "state")
	t.Setenv(config.EnvStateDir, stateDir)
	t.Chdir(t.TempDir())
	return stateDir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureStdout(t, func() error {
		return Run(context.Background(), args)
	})
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("Run(%v) error = %v\noutput:\n%s", args, err, out)
	}
	return out
}

func loadState(t *testing.T, stateDir string) task.List {
	t.Helper()
	l, err := storage.NewSlotBackend(storage.FileSlots{Dir: stateDir}, storage.DefaultKey).Load()
	if err != nil {
		t.Fatalf("loading state: %v", err)
	}
	return l
}

func writeState(t *testing.T, stateDir string, l task.List) {
	t.Helper()
	if err := storage.NewSlotBackend(storage.FileSlots{Dir: stateDir}, storage.DefaultKey).Save(l); err != nil {
		t.Fatalf("writing state: %v", err)
	}
}

func writeRaw(stateDir, content string) error {
	return storage.FileSlots{Dir: stateDir}.Write(storage.DefaultKey, []byte(content))
}
