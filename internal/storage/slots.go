package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"sync"

	"github.com/nibzard/tasklist/internal/statedir"
)

// ErrNotFound is returned by Slots.Read when nothing is stored under a key.
var ErrNotFound = errors.New("slot not found")

// keyRegex validates slot keys: alphanumerics, dot, underscore, hyphen, 1-64 chars.
var keyRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// ValidateKey reports whether key can name a slot.
func ValidateKey(key string) error {
	if !keyRegex.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid slot key %q: must be 1-64 letters, digits, '.', '_' or '-'", key)
	}
	return nil
}

// Slots is a durable key-value store holding one document per key.
type Slots interface {
	// Read returns the document stored under key, or ErrNotFound.
	Read(key string) ([]byte, error)
	// Write replaces the document stored under key.
	Write(key string, data []byte) error
}

// FileSlots stores each key as <Dir>/<key>.json.
type FileSlots struct {
	Dir string
}

// Path returns the file backing key.
func (s FileSlots) Path(key string) string {
	return statedir.SlotPath(s.Dir, key)
}

// Read reads the file backing key.
func (s FileSlots) Read(key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read slot file: %w", err)
	}
	return data, nil
}

// Write atomically replaces the file backing key, creating Dir if needed.
func (s FileSlots) Write(key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close slot file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod slot file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path(key)); err != nil {
		return fmt.Errorf("replace slot file: %w", err)
	}
	return nil
}

// MemorySlots keeps documents in process memory.
type MemorySlots struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemorySlots returns an empty in-memory slot store.
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{data: make(map[string][]byte)}
}

// Read returns a copy of the document stored under key.
func (m *MemorySlots) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data under key.
func (m *MemorySlots) Write(key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemorySlots) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
