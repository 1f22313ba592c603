package task

// Prepend returns a new list with t at index 0 followed by l.
func Prepend(l List, t Task) List {
	out := make(List, 0, len(l)+1)
	out = append(out, t)
	return append(out, l...)
}

// Toggle returns a copy of l where the task with the given id has its
// completed flag flipped. Other tasks are copied unchanged.
func Toggle(l List, id string) List {
	out := l.Clone()
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
			break
		}
	}
	return out
}

// Delete returns a copy of l without the task with the given id.
// Relative order of the remaining tasks is preserved.
func Delete(l List, id string) List {
	return l.Filter(func(t Task) bool { return t.ID != id })
}

// ClearCompleted returns a copy of l keeping only active tasks.
func ClearCompleted(l List) List {
	return l.Filter(func(t Task) bool { return !t.Completed })
}

// Filter returns a new list with the tasks for which keep returns true.
func (l List) Filter(keep func(Task) bool) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns a copy of the list. A nil list clones to an empty one.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Find returns the task with the given id.
func (l List) Find(id string) (Task, bool) {
	for _, t := range l {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Equal reports whether both lists hold the same tasks in the same order.
// A nil list equals an empty one.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Summary counts active and completed tasks.
func (l List) Summary() Summary {
	s := Summary{Total: len(l)}
	for _, t := range l {
		if t.Completed {
			s.Completed++
		} else {
			s.Active++
		}
	}
	return s
}
