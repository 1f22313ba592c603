// Package actions implements the named task operations on top of a store.
package actions

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/store"
	"github.com/nibzard/tasklist/internal/task"
)

// Option configures Actions.
type Option func(*Actions)

// WithIDGenerator sets the source of new task ids.
func WithIDGenerator(ids task.IDGenerator) Option {
	return func(a *Actions) {
		if ids != nil {
			a.ids = ids
		}
	}
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Actions) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Actions) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Actions derives new lists from the store's current list and installs them.
// Each call performs exactly one Set. The only errors returned come from
// the store's listeners, typically a failed save.
type Actions struct {
	store  *store.Store
	ids    task.IDGenerator
	now    func() time.Time
	logger *log.Logger
}

// New returns Actions bound to s. Ids default to random UUIDs and the clock
// to time.Now.
func New(s *store.Store, opts ...Option) *Actions {
	a := &Actions{
		store:  s,
		ids:    task.UUIDGenerator{},
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddTask puts a new active task with the given title at the head of the
// list. The title is stored as given; validation belongs to the caller.
func (a *Actions) AddTask(title string) (task.Task, error) {
	t := task.New(a.ids.NextID(), title, a.now())
	err := a.store.Update(func(l task.List) task.List {
		return task.Prepend(l, t)
	})
	if err == nil {
		a.logger.Debug("Added task", "id", t.ID)
	}
	return t, err
}

// ToggleTask flips the completed flag of the task with the given id.
// An unknown id leaves the list unchanged.
func (a *Actions) ToggleTask(id string) error {
	found := false
	err := a.store.Update(func(l task.List) task.List {
		_, found = l.Find(id)
		return task.Toggle(l, id)
	})
	if err == nil && found {
		a.logger.Debug("Toggled task", "id", id)
	}
	return err
}

// DeleteTask removes the task with the given id.
// An unknown id leaves the list unchanged.
func (a *Actions) DeleteTask(id string) error {
	found := false
	err := a.store.Update(func(l task.List) task.List {
		_, found = l.Find(id)
		return task.Delete(l, id)
	})
	if err == nil && found {
		a.logger.Debug("Deleted task", "id", id)
	}
	return err
}

// ClearCompleted removes every completed task.
func (a *Actions) ClearCompleted() error {
	err := a.store.Update(task.ClearCompleted)
	if err == nil {
		a.logger.Debug("Cleared completed tasks")
	}
	return err
}
