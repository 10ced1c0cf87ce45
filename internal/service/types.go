package service

const (
	// StatusNeedsAction is the status of an open task.
	StatusNeedsAction = "needsAction"

	// StatusCompleted is the status of a completed task.
	StatusCompleted = "completed"
)

// Task represents a single remote task item.
type Task struct {
	ID       string
	Title    string
	Position string
	Status   string // StatusNeedsAction or StatusCompleted
}

// Completed reports whether the task is completed.
func (t Task) Completed() bool { return t.Status == StatusCompleted }

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
