// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/actions"
	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/store"
	"github.com/nibzard/tasklist/internal/task"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*Model)

// WithLogger sets the logger used for action failures.
func WithLogger(logger *log.Logger) TUIOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithFilter sets the initial filter.
func WithFilter(f Filter) TUIOption {
	return func(m *Model) {
		m.filter = f
	}
}

// Filter selects which tasks the list shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

func (f Filter) keep(t task.Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// RunTUI starts the interactive task list on the terminal.
func RunTUI(ctx context.Context, s *store.Store, a *actions.Actions, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	m, err := NewModel(s, a, opts...)
	if err != nil {
		return err
	}
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if fm, ok := finalModel.(*Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// Model is the bubbletea model for the task list. It starts with the input
// line focused; esc or tab moves focus to the list.
//
// Every action runs inside Update, which bubbletea calls from one goroutine,
// so the store is never written concurrently.
type Model struct {
	actions *actions.Actions
	logger  *log.Logger

	tasks   task.List
	visible task.List
	cursor  int
	filter  Filter

	input    []rune
	editing  bool
	showHelp bool
	err      error

	unsubscribe func()
}

// NewModel subscribes a model to s. Call Close to unsubscribe.
func NewModel(s *store.Store, a *actions.Actions, opts ...TUIOption) (*Model, error) {
	m := &Model{
		actions: a,
		logger:  logging.Discard(),
		editing: true,
	}
	for _, opt := range opts {
		opt(m)
	}

	unsubscribe, err := s.Subscribe(m.receive)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	m.unsubscribe = unsubscribe
	return m, nil
}

// Close stops receiving store updates.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Model) receive(l task.List) error {
	m.tasks = l
	m.applyFilter()
	return nil
}

func (m *Model) applyFilter() {
	m.visible = m.tasks.Filter(m.filter.keep)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the task under the cursor.
func (m *Model) Selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.editing {
		return m.updateInput(key)
	}
	return m.updateList(key)
}

func (m *Model) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEnter:
		title := strings.TrimSpace(string(m.input))
		m.input = nil
		if title == "" {
			return m, nil
		}
		_, err := m.actions.AddTask(title)
		m.setErr("add", err)
		m.cursor = 0
	case tea.KeyEsc, tea.KeyTab:
		m.editing = false
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyCtrlU:
		m.input = nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
	return m, nil
}

func (m *Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case " ", "enter":
		if t, ok := m.Selected(); ok {
			m.setErr("toggle", m.actions.ToggleTask(t.ID))
		}
	case "x", "delete":
		if t, ok := m.Selected(); ok {
			m.setErr("delete", m.actions.DeleteTask(t.ID))
		}
	case "c":
		m.setErr("clear", m.actions.ClearCompleted())
	case "a", "i", "tab", "esc":
		m.editing = true
	case "0":
		m.setFilter(FilterAll)
	case "1":
		m.setFilter(FilterActive)
	case "2":
		m.setFilter(FilterCompleted)
	case "?", "h":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) setFilter(f Filter) {
	m.filter = f
	m.cursor = 0
	m.applyFilter()
}

func (m *Model) setErr(op string, err error) {
	m.err = err
	if err != nil {
		m.logger.Error("Task update failed", "op", op, "err", err)
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tasklist") + "\n\n")

	m.writeInput(&b)
	b.WriteString("\n")

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	m.writeList(&b)
	b.WriteString("\n")
	m.writeFooter(&b)
	return b.String()
}

func (m *Model) writeInput(b *strings.Builder) {
	prompt := "> "
	if m.editing {
		prompt = selectedStyle.Render(prompt)
	}
	b.WriteString(prompt)
	switch {
	case len(m.input) > 0:
		b.WriteString(string(m.input))
	case m.editing:
		b.WriteString(faintStyle.Render("What needs to be done?"))
	}
	if m.editing {
		b.WriteString("_")
	}
	b.WriteString("\n")
}

func (m *Model) writeList(b *strings.Builder) {
	if len(m.visible) == 0 {
		if len(m.tasks) == 0 {
			b.WriteString(faintStyle.Render("  No tasks yet.") + "\n")
		} else {
			b.WriteString(faintStyle.Render(fmt.Sprintf("  No %s tasks.", m.filter)) + "\n")
		}
		return
	}
	for i, t := range m.visible {
		b.WriteString(formatItem(t, !m.editing && i == m.cursor))
		b.WriteString("\n")
	}
}

func (m *Model) writeFooter(b *strings.Builder) {
	summary := m.tasks.Summary()
	b.WriteString(summaryStyle.Render(SummaryLine(summary)))
	if m.filter != FilterAll {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  [showing %s, 0 for all]", m.filter)))
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	if m.editing {
		b.WriteString(faintStyle.Render("enter add | esc list | ctrl+c quit") + "\n")
		return
	}
	hint := "space toggle | x delete | a add | ? help | q quit"
	if summary.Completed > 0 {
		hint = "c clear completed | " + hint
	}
	b.WriteString(faintStyle.Render(hint) + "\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  enter        Add the typed task (input)\n")
	b.WriteString("  esc, tab     Switch between input and list\n")
	b.WriteString("  up/k down/j  Move selection\n")
	b.WriteString("  space        Toggle the selected task\n")
	b.WriteString("  x            Delete the selected task\n")
	b.WriteString("  c            Clear completed tasks\n")
	b.WriteString("  0 1 2        Show all, active, completed\n")
	b.WriteString("  ?, h         Toggle this help screen\n")
	b.WriteString("  q, ctrl+c    Quit\n")
}

func formatItem(t task.Task, selected bool) string {
	box := "[ ]"
	title := t.Title
	if t.Completed {
		box = "[x]"
		title = doneStyle.Render(title)
	}
	line := fmt.Sprintf("  %s %s", box, title)
	if selected {
		line = selectedStyle.Render(">") + fmt.Sprintf(" %s %s", box, title)
	}
	return line
}

// IsTTY returns true if stdout is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
