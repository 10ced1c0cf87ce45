// Package service defines the backend-agnostic interface for the remote task
// list that push and pull mirror to.
package service

import "context"

// Service defines the interface for remote task backend operations.
// All Google Tasks API calls go through this interface.
// Commands never import Google SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every top-level task of a list, open and completed,
	// in position order.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// InsertTask creates a task directly after previousID, or first in the
	// list when previousID is empty. Returns the created task.
	InsertTask(ctx context.Context, listID string, task Task, previousID string) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, listID, taskID string) error
}
