package actions

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/storage"
	"github.com/nibzard/tasklist/internal/store"
	"github.com/nibzard/tasklist/internal/task"
)

// fakeClock advances one millisecond per call.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Millisecond)
	return c.t
}

type harness struct {
	store   *store.Store
	actions *Actions
	slots   *storage.MemorySlots
}

func setup(t *testing.T, ids ...string) *harness {
	t.Helper()

	slots := storage.NewMemorySlots()
	s, err := store.New(storage.NewSlotBackend(slots, storage.DefaultKey))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	clock := &fakeClock{t: time.UnixMilli(1718000000000)}
	a := New(s,
		WithIDGenerator(&task.FixedGenerator{IDs: ids}),
		WithClock(clock.Now),
	)
	return &harness{store: s, actions: a, slots: slots}
}

func (h *harness) add(t *testing.T, title string) task.Task {
	t.Helper()
	created, err := h.actions.AddTask(title)
	if err != nil {
		t.Fatalf("AddTask(%q) failed: %v", title, err)
	}
	return created
}

func titles(l task.List) string {
	parts := make([]string, len(l))
	for i, t := range l {
		parts[i] = t.Title
	}
	return strings.Join(parts, ",")
}

func TestAddTask(t *testing.T) {
	h := setup(t, "a")
	created := h.add(t, "Buy groceries")

	if created.ID != "a" || created.Title != "Buy groceries" || created.Completed {
		t.Errorf("unexpected task: %+v", created)
	}
	if created.CreatedAt != 1718000000001 {
		t.Errorf("CreatedAt: got %d", created.CreatedAt)
	}

	got := h.store.Get()
	if len(got) != 1 || got[0] != created {
		t.Errorf("store: got %+v", got)
	}
}

func TestAddTaskOrderAndCount(t *testing.T) {
	h := setup(t)
	for i := 0; i < 10; i++ {
		h.add(t, string(rune('A'+i)))
	}

	got := h.store.Get()
	if len(got) != 10 {
		t.Fatalf("length: got %d, want 10", len(got))
	}
	if titles(got) != "J,I,H,G,F,E,D,C,B,A" {
		t.Errorf("order: got %s", titles(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].CreatedAt < got[i].CreatedAt {
			t.Errorf("not newest-first at %d", i)
		}
	}
}

func TestAddTaskAcceptsAnyTitle(t *testing.T) {
	h := setup(t)
	h.add(t, "")
	h.add(t, "dup")
	h.add(t, "dup")
	if n := len(h.store.Get()); n != 3 {
		t.Errorf("empty and duplicate titles should be accepted, got %d tasks", n)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	h := setup(t, "a", "b")
	h.add(t, "A")
	h.add(t, "B")
	before := h.store.Get()

	for i := 0; i < 2; i++ {
		if err := h.actions.ToggleTask("a"); err != nil {
			t.Fatalf("ToggleTask failed: %v", err)
		}
	}
	if !h.store.Get().Equal(before) {
		t.Errorf("toggle twice: got %+v, want %+v", h.store.Get(), before)
	}
}

func TestToggleAndDeleteUnknownID(t *testing.T) {
	h := setup(t, "a")
	h.add(t, "A")
	before := h.store.Get()

	if err := h.actions.ToggleTask("missing"); err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if err := h.actions.DeleteTask("missing"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if !h.store.Get().Equal(before) {
		t.Errorf("unknown ids should be no-ops, got %+v", h.store.Get())
	}
}

func TestDeleteTask(t *testing.T) {
	h := setup(t, "a", "b", "c", "d")
	for _, title := range []string{"A", "B", "C", "D"} {
		h.add(t, title)
	}

	if err := h.actions.DeleteTask("b"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	after := h.store.Get()
	if titles(after) != "D,C,A" {
		t.Errorf("after delete: got %s, want D,C,A", titles(after))
	}

	if err := h.actions.DeleteTask("b"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if !h.store.Get().Equal(after) {
		t.Error("second delete of the same id should be a no-op")
	}
}

func TestClearCompletedIdempotent(t *testing.T) {
	h := setup(t, "a", "b", "c")
	h.add(t, "A")
	h.add(t, "B")
	h.add(t, "C")
	if err := h.actions.ToggleTask("b"); err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}

	if err := h.actions.ClearCompleted(); err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	once := h.store.Get()
	if err := h.actions.ClearCompleted(); err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	if !h.store.Get().Equal(once) {
		t.Error("ClearCompleted should be idempotent")
	}
	if titles(once) != "C,A" {
		t.Errorf("got %s, want C,A", titles(once))
	}
}

func TestScenarioGroceries(t *testing.T) {
	h := setup(t, "groceries", "dog")

	h.add(t, "Buy groceries")
	got := h.store.Get()
	if len(got) != 1 || got[0].Title != "Buy groceries" || got[0].Completed {
		t.Fatalf("after first add: %+v", got)
	}

	h.add(t, "Walk dog")
	if titles(h.store.Get()) != "Walk dog,Buy groceries" {
		t.Fatalf("after second add: %s", titles(h.store.Get()))
	}

	if err := h.actions.ToggleTask("groceries"); err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	got = h.store.Get()
	if !got[1].Completed {
		t.Error("groceries should be completed")
	}
	if got[0].Completed {
		t.Error("dog should be unchanged")
	}

	if err := h.actions.ClearCompleted(); err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	got = h.store.Get()
	if len(got) != 1 || got[0].Title != "Walk dog" || got[0].Completed {
		t.Errorf("after clear: %+v", got)
	}
}

func TestScenarioDeleteThenClear(t *testing.T) {
	h := setup(t, "a", "b", "c")
	h.add(t, "A")
	h.add(t, "B")
	h.add(t, "C")

	if err := h.actions.DeleteTask("b"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if titles(h.store.Get()) != "C,A" {
		t.Fatalf("after delete: %s", titles(h.store.Get()))
	}

	for _, id := range []string{"a", "c"} {
		if err := h.actions.ToggleTask(id); err != nil {
			t.Fatalf("ToggleTask failed: %v", err)
		}
	}
	if err := h.actions.ClearCompleted(); err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	if n := len(h.store.Get()); n != 0 {
		t.Errorf("expected empty list, got %d tasks", n)
	}
}

func TestEveryActionPersists(t *testing.T) {
	h := setup(t, "a")
	h.add(t, "A")
	if err := h.actions.ToggleTask("a"); err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}

	data, err := h.slots.Read(storage.DefaultKey)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	persisted, err := storage.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !persisted.Equal(h.store.Get()) {
		t.Errorf("slot %+v does not match store %+v", persisted, h.store.Get())
	}

	// A fresh store over the same slot sees the same list.
	reopened, err := store.New(storage.NewSlotBackend(h.slots, storage.DefaultKey))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	if !reopened.Get().Equal(h.store.Get()) {
		t.Errorf("reopened store: got %+v", reopened.Get())
	}
}

// failingSlots accepts writes until fail is set.
type failingSlots struct {
	*storage.MemorySlots
	fail error
}

func (f *failingSlots) Write(key string, data []byte) error {
	if f.fail != nil {
		return f.fail
	}
	return f.MemorySlots.Write(key, data)
}

func TestWriteFaultPropagates(t *testing.T) {
	slots := &failingSlots{MemorySlots: storage.NewMemorySlots()}
	s, err := store.New(storage.NewSlotBackend(slots, storage.DefaultKey))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	a := New(s)

	full := errors.New("quota exceeded")
	slots.fail = full

	if _, err := a.AddTask("A"); !errors.Is(err, full) {
		t.Errorf("AddTask: expected quota error, got %v", err)
	}
	id := s.Get()[0].ID
	if err := a.ToggleTask(id); !errors.Is(err, full) {
		t.Errorf("ToggleTask: expected quota error, got %v", err)
	}
	if err := a.ClearCompleted(); !errors.Is(err, full) {
		t.Errorf("ClearCompleted: expected quota error, got %v", err)
	}
	if err := a.DeleteTask(id); !errors.Is(err, full) {
		t.Errorf("DeleteTask: expected quota error, got %v", err)
	}
}

func TestDefaultsUseUUIDs(t *testing.T) {
	s, err := store.New(nil)
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	a := New(s)
	first, _ := a.AddTask("one")
	second, _ := a.AddTask("two")
	if first.ID == second.ID || len(first.ID) != 36 {
		t.Errorf("expected distinct UUIDs, got %q and %q", first.ID, second.ID)
	}
	if time.Since(first.Created()) > time.Minute {
		t.Errorf("default clock should be wall time, got %v", first.Created())
	}
}

func TestUnusualIDsAndClocksSurviveReload(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		clock func() time.Time
	}{
		{"empty id", []string{""}, time.Now},
		{"pre-epoch clock", []string{"x"}, func() time.Time { return time.UnixMilli(-5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := storage.NewSlotBackend(storage.NewMemorySlots(), storage.DefaultKey)
			s, err := store.New(backend)
			if err != nil {
				t.Fatalf("store.New failed: %v", err)
			}

			odd := New(s, WithIDGenerator(&task.FixedGenerator{IDs: tt.ids}), WithClock(tt.clock))
			if _, err := odd.AddTask("x"); err != nil {
				t.Fatalf("AddTask failed: %v", err)
			}
			normal := New(s, WithIDGenerator(&task.FixedGenerator{IDs: []string{"keep"}}))
			if _, err := normal.AddTask("important"); err != nil {
				t.Fatalf("AddTask failed: %v", err)
			}
			before := s.Get()

			reopened, err := store.New(backend)
			if err != nil {
				t.Fatalf("store.New failed: %v", err)
			}
			if !reopened.Get().Equal(before) {
				t.Errorf("reload lost tasks:\n got %+v\nwant %+v", reopened.Get(), before)
			}
		})
	}
}

func TestLogsOnlyAppliedChanges(t *testing.T) {
	slots := &failingSlots{MemorySlots: storage.NewMemorySlots()}
	s, err := store.New(storage.NewSlotBackend(slots, storage.DefaultKey))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	var logs bytes.Buffer
	a := New(s,
		WithIDGenerator(&task.FixedGenerator{IDs: []string{"a", "b"}}),
		WithLogger(logging.NewTest(&logs)),
	)

	if _, err := a.AddTask("A"); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if !strings.Contains(logs.String(), "Added task") {
		t.Errorf("successful add should be logged, got %q", logs.String())
	}

	logs.Reset()
	if err := a.ToggleTask("missing"); err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if err := a.DeleteTask("missing"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if strings.Contains(logs.String(), "Toggled task") || strings.Contains(logs.String(), "Deleted task") {
		t.Errorf("unknown ids should not be logged as changes, got %q", logs.String())
	}

	slots.fail = errors.New("quota exceeded")
	logs.Reset()
	if _, err := a.AddTask("B"); err == nil {
		t.Fatal("expected write fault")
	}
	if err := a.ToggleTask("a"); err == nil {
		t.Fatal("expected write fault")
	}
	if err := a.DeleteTask("a"); err == nil {
		t.Fatal("expected write fault")
	}
	for _, msg := range []string{"Added task", "Toggled task", "Deleted task"} {
		if strings.Contains(logs.String(), msg) {
			t.Errorf("failed change logged as %q: %q", msg, logs.String())
		}
	}
}
