package task

import "time"

// Task is a single entry in the list.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"` // milliseconds since the Unix epoch
}

// New builds an active task created at now.
func New(id, title string, now time.Time) Task {
	return Task{
		ID:        id,
		Title:     title,
		Completed: false,
		CreatedAt: now.UnixMilli(),
	}
}

// Created returns the creation time.
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// IsZero returns true if the task is empty (has no ID).
func (t Task) IsZero() bool {
	return t.ID == ""
}

// List is an ordered task list, newest first.
type List []Task

// Summary holds derived counts for a list.
type Summary struct {
	Total     int
	Active    int
	Completed int
}
