package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nibzard/tasklist/internal/task"
	"github.com/nibzard/tasklist/internal/ui"
)

const (
	// minPrefixLen is the shortest id prefix accepted in place of a full id.
	minPrefixLen = 6
	// shortIDLen is how much of an id the list output shows.
	shortIDLen = 8
)

var errTaskNotFound = errors.New("task not found")

// resolveTaskID resolves an exact id, else a unique prefix of at least
// minPrefixLen characters.
func resolveTaskID(l task.List, idOrPrefix string) (string, error) {
	if t, ok := l.Find(idOrPrefix); ok {
		return t.ID, nil
	}

	if len(idOrPrefix) >= minPrefixLen {
		var matches []string
		for _, t := range l {
			if strings.HasPrefix(t.ID, idOrPrefix) {
				matches = append(matches, t.ID)
			}
		}
		if len(matches) == 1 {
			return matches[0], nil
		}
		if len(matches) > 1 {
			return "", fmt.Errorf("ambiguous task id prefix: %s (matches %d tasks)", idOrPrefix, len(matches))
		}
	}

	return "", fmt.Errorf("%w: %s", errTaskNotFound, idOrPrefix)
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// addCommand adds a task with the remaining arguments as its title.
func addCommand(e *env, args []string) error {
	title := joinArgs(args)
	if title == "" {
		return errors.New("add: task title is empty")
	}
	if !utf8.ValidString(title) {
		return errors.New("add: task title is not valid UTF-8")
	}

	_, a, err := openStore(e)
	if err != nil {
		return err
	}
	t, err := a.AddTask(title)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	fmt.Printf("Added [%s] %s\n", shortID(t.ID), t.Title)
	return nil
}

// toggleCommand flips the completed flag of each named task.
func toggleCommand(e *env, args []string) error {
	if len(args) == 0 {
		return errors.New("toggle: missing task id")
	}
	s, a, err := openStore(e)
	if err != nil {
		return err
	}

	for _, arg := range args {
		id, err := resolveTaskID(s.Get(), arg)
		if errors.Is(err, errTaskNotFound) {
			fmt.Printf("No task matches %q\n", arg)
			continue
		}
		if err != nil {
			return fmt.Errorf("toggle: %w", err)
		}
		if err := a.ToggleTask(id); err != nil {
			return fmt.Errorf("toggle: %w", err)
		}
		t, _ := s.Get().Find(id)
		verb := "Reopened"
		if t.Completed {
			verb = "Completed"
		}
		fmt.Printf("%s [%s] %s\n", verb, shortID(t.ID), t.Title)
	}
	return nil
}

// rmCommand deletes each named task.
func rmCommand(e *env, args []string) error {
	if len(args) == 0 {
		return errors.New("rm: missing task id")
	}
	s, a, err := openStore(e)
	if err != nil {
		return err
	}

	for _, arg := range args {
		id, err := resolveTaskID(s.Get(), arg)
		if errors.Is(err, errTaskNotFound) {
			fmt.Printf("No task matches %q\n", arg)
			continue
		}
		if err != nil {
			return fmt.Errorf("rm: %w", err)
		}
		t, _ := s.Get().Find(id)
		if err := a.DeleteTask(id); err != nil {
			return fmt.Errorf("rm: %w", err)
		}
		fmt.Printf("Deleted [%s] %s\n", shortID(t.ID), t.Title)
	}
	return nil
}

// clearCommand removes every completed task.
func clearCommand(e *env, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	s, a, err := openStore(e)
	if err != nil {
		return err
	}

	completed := s.Get().Summary().Completed
	if err := a.ClearCompleted(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	switch completed {
	case 0:
		fmt.Println("No completed tasks")
	case 1:
		fmt.Println("Cleared 1 completed task")
	default:
		fmt.Printf("Cleared %d completed tasks\n", completed)
	}
	return nil
}

// lsCommand prints the task list, newest first, with a summary footer.
func lsCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("tasklist ls", flag.ContinueOnError)
	active := fs.Bool("active", false, "Only show active tasks")
	completed := fs.Bool("completed", false, "Only show completed tasks")
	verbose := fs.Bool("v", false, "Show full ids and creation times")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *active && *completed {
		return errors.New("ls: -active and -completed are mutually exclusive")
	}

	s, _, err := openStore(e)
	if err != nil {
		return err
	}

	all := s.Get()
	tasks := all
	switch {
	case *active:
		tasks = all.Filter(func(t task.Task) bool { return !t.Completed })
	case *completed:
		tasks = all.Filter(func(t task.Task) bool { return t.Completed })
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks")
	}
	for _, t := range tasks {
		printTask(t, *verbose)
	}
	fmt.Println()
	fmt.Println(ui.SummaryLine(all.Summary()))
	return nil
}

func printTask(t task.Task, verbose bool) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	if !verbose {
		fmt.Printf("  %s %s  %s\n", box, shortID(t.ID), t.Title)
		return
	}
	fmt.Printf("  %s %s  %s  (%s)\n", box, t.ID, t.Title, t.Created().Format(time.DateTime))
}

// tuiCommand launches the interactive list.
func tuiCommand(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("tasklist tui", flag.ContinueOnError)
	filter := fs.String("filter", "all", "Initial filter (all|active|completed)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	var f ui.Filter
	switch strings.ToLower(*filter) {
	case "all", "":
		f = ui.FilterAll
	case "active":
		f = ui.FilterActive
	case "completed":
		f = ui.FilterCompleted
	default:
		return fmt.Errorf("unknown filter %q (expected all|active|completed)", *filter)
	}

	s, a, err := openStore(e)
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, s, a, ui.WithLogger(e.logger), ui.WithFilter(f))
}
