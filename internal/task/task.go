// Package task defines the to-do item held by the task list.
package task

const (
	// MarkDone prefixes the display of a completed task.
	MarkDone = "[✔] "

	// MarkOpen prefixes the display of an open task.
	MarkOpen = "[ ] "
)

// Task is a single to-do item.
// It has no identifier; a task is identified by its position in the list.
type Task struct {
	Title     string
	Completed bool
}

// New creates an open task with the given title.
// The title is not validated; callers reject empty input.
func New(title string) Task {
	return Task{Title: title}
}

// MarkCompleted marks the task completed. Calling it again has no effect.
func (t *Task) MarkCompleted() {
	t.Completed = true
}

// Rename replaces the title unconditionally.
func (t *Task) Rename(title string) {
	t.Title = title
}

// String renders the task for display, e.g. "[✔] Buy milk".
func (t Task) String() string {
	if t.Completed {
		return MarkDone + t.Title
	}
	return MarkOpen + t.Title
}
