package ui

import (
	"fmt"

	"github.com/nibzard/tasklist/internal/task"
)

// SummaryLine renders task counts for list footers.
func SummaryLine(s task.Summary) string {
	if s.Total == 0 {
		return "0 tasks"
	}
	noun := "items"
	if s.Active == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%d %s left, %d completed", s.Active, noun, s.Completed)
}
