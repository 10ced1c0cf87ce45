// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

// FormatTask formats a numbered task line.
// Format: "{N:>4}  {MARKER}{TITLE}\n" (4-wide right-aligned number, two spaces,
// display form of the task)
func FormatTask(w io.Writer, num int, t task.Task) {
	t.Title = normalizeTitle(t.Title)
	fmt.Fprintf(w, "%4d  %s\n", num, t.String())
}

// FormatTasks formats every task, numbered from 1.
func FormatTasks(w io.Writer, tasks []task.Task) {
	for i, t := range tasks {
		FormatTask(w, i+1, t)
	}
}

// normalizeTitle keeps one task per line.
// - Newlines are replaced with spaces
// - Empty or whitespace-only titles become "(untitled)"
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
