// Package store holds the current task list and mirrors every change to a
// persistence backend.
//
// A Store is an owned value: create as many as needed, each with its own
// backend and listeners. It is not safe for concurrent use. All reads and
// writes are expected to come from one goroutine, and listeners run
// synchronously inside Set before it returns.
package store

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/storage"
	"github.com/nibzard/tasklist/internal/task"
)

// Listener receives the current list on subscription and after every Set.
// The list is shared with the store and must not be modified.
type Listener func(task.List) error

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and persistence messages.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type subscription struct {
	fn     Listener
	active bool
}

// Store holds the task list and notifies listeners of every change.
type Store struct {
	current   task.List
	listeners []*subscription
	backend   storage.Backend
	logger    *log.Logger
}

// New loads the persisted list from backend and subscribes a listener that
// saves every new list back to it.
//
// Missing or corrupt data starts the store empty. Any other load failure is
// returned, as is a failure to write the initial list.
func New(backend storage.Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		backend = storage.NopBackend{}
	}
	s := &Store{
		backend: backend,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	l, err := backend.Load()
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		s.logger.Warn("Discarding unreadable task data", "err", err)
		l = task.List{}
	case err != nil:
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if l == nil {
		l = task.List{}
	}
	s.current = l
	s.logger.Debug("Loaded tasks", "count", len(l))

	if _, err := s.Subscribe(s.persist); err != nil {
		return nil, fmt.Errorf("persist tasks: %w", err)
	}
	return s, nil
}

func (s *Store) persist(l task.List) error {
	if err := s.backend.Save(l); err != nil {
		s.logger.Error("Failed to persist tasks", "err", err)
		return err
	}
	s.logger.Debug("Persisted tasks", "count", len(l))
	return nil
}

// Backend returns the persistence backend.
func (s *Store) Backend() storage.Backend {
	return s.backend
}

// Get returns a copy of the current list.
func (s *Store) Get() task.List {
	return s.current.Clone()
}

// Set replaces the current list and notifies every active listener in
// registration order. Listener errors do not stop delivery to the rest;
// they are joined and returned once all listeners have run.
func (s *Store) Set(l task.List) error {
	s.current = l.Clone()

	// Listeners added during this round already saw the new value on subscribe.
	round := make([]*subscription, len(s.listeners))
	copy(round, s.listeners)

	var errs []error
	for _, sub := range round {
		if !sub.active {
			continue
		}
		if err := sub.fn(s.current); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Update replaces the current list with fn applied to a copy of it.
func (s *Store) Update(fn func(task.List) task.List) error {
	return s.Set(fn(s.Get()))
}

// Subscribe calls fn with the current list, then registers it for every
// later change. If that first call fails, fn is not registered.
// The returned function removes the listener; calling it again is a no-op.
func (s *Store) Subscribe(fn Listener) (unsubscribe func(), err error) {
	if fn == nil {
		return nil, errors.New("nil listener")
	}
	if err := fn(s.current); err != nil {
		return nil, err
	}

	sub := &subscription{fn: fn, active: true}
	s.listeners = append(s.listeners, sub)

	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, other := range s.listeners {
			if other == sub {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				break
			}
		}
	}, nil
}

// Len returns the number of registered listeners, including the
// persistence listener.
func (s *Store) Len() int {
	return len(s.listeners)
}
