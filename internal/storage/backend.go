package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/tasklist/internal/task"
)

// DefaultKey is the slot key the task list is stored under.
const DefaultKey = "tasks"

// Backend loads and saves the whole task list.
type Backend interface {
	// Load returns the persisted list. A missing list loads as empty with
	// a nil error. Corrupt data loads as empty with an error wrapping
	// ErrCorrupt. Any other error means the storage could not be read.
	Load() (task.List, error)
	// Save overwrites the persisted list.
	Save(l task.List) error
}

// Kind names a backend implementation.
type Kind string

const (
	KindFile   Kind = "file"
	KindMemory Kind = "memory"
	KindNone   Kind = "none"
)

// ParseKind normalises a backend name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindFile, KindMemory, KindNone:
		return k, nil
	case "":
		return KindFile, nil
	default:
		return "", fmt.Errorf("unknown backend %q, must be one of: file, memory, none", s)
	}
}

// Open builds the backend for kind. dir is only used by KindFile.
func Open(kind Kind, dir, key string) (Backend, error) {
	switch kind {
	case KindFile:
		if dir == "" {
			return nil, errors.New("file backend needs a state directory")
		}
		if err := ValidateKey(key); err != nil {
			return nil, err
		}
		return NewSlotBackend(FileSlots{Dir: dir}, key), nil
	case KindMemory:
		if err := ValidateKey(key); err != nil {
			return nil, err
		}
		return NewSlotBackend(NewMemorySlots(), key), nil
	case KindNone:
		return NopBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", kind)
	}
}

// SlotBackend stores the list in a single slot.
type SlotBackend struct {
	slots Slots
	key   string
}

// NewSlotBackend returns a backend that stores the list under key.
func NewSlotBackend(slots Slots, key string) *SlotBackend {
	return &SlotBackend{slots: slots, key: key}
}

// Key returns the slot key.
func (b *SlotBackend) Key() string {
	return b.key
}

// Slots returns the underlying slot store.
func (b *SlotBackend) Slots() Slots {
	return b.slots
}

// Location describes where the list is stored.
func (b *SlotBackend) Location() string {
	if fs, ok := b.slots.(FileSlots); ok {
		return fs.Path(b.key)
	}
	return "memory:" + b.key
}

// Load reads and decodes the slot.
func (b *SlotBackend) Load() (task.List, error) {
	data, err := b.slots.Read(b.key)
	if errors.Is(err, ErrNotFound) {
		return task.List{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", b.key, err)
	}

	l, err := Decode(data)
	if err != nil {
		return task.List{}, fmt.Errorf("load %q: %w", b.key, err)
	}
	return l, nil
}

// Save encodes l and overwrites the slot.
func (b *SlotBackend) Save(l task.List) error {
	data, err := Encode(l)
	if err != nil {
		return err
	}
	if err := b.slots.Write(b.key, data); err != nil {
		return fmt.Errorf("save %q: %w", b.key, err)
	}
	return nil
}

// NopBackend stands in where no durable storage exists.
type NopBackend struct{}

// Load returns an empty list.
func (NopBackend) Load() (task.List, error) {
	return task.List{}, nil
}

// Save discards l.
func (NopBackend) Save(task.List) error {
	return nil
}

// Location describes where the list is stored.
func (NopBackend) Location() string {
	return "none"
}
