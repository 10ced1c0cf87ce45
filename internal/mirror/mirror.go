// Package mirror copies the whole task list to and from a remote list.
// Both directions replace the destination; nothing is merged.
package mirror

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"todo/internal/service"
	"todo/internal/task"
)

// Mirror pushes and pulls whole task lists through a service.Service.
type Mirror struct {
	svc    service.Service
	logger zerolog.Logger
}

// New creates a Mirror over svc.
func New(svc service.Service, logger zerolog.Logger) *Mirror {
	return &Mirror{svc: svc, logger: logger}
}

// ResolveList returns the named remote list, or the default list when name
// is blank.
func (m *Mirror) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if strings.TrimSpace(name) == "" {
		return m.svc.DefaultList(ctx)
	}
	return m.svc.ResolveList(ctx, name)
}

// Pull returns the remote list as local tasks, in remote order.
// Remote tasks with a blank title are skipped.
func (m *Mirror) Pull(ctx context.Context, listID string) ([]task.Task, error) {
	remote, err := m.svc.ListTasks(ctx, listID)
	if err != nil {
		return nil, err
	}

	out := make([]task.Task, 0, len(remote))
	for _, r := range remote {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}
		t := task.New(title)
		if r.Completed() {
			t.MarkCompleted()
		}
		out = append(out, t)
	}

	m.logger.Debug().
		Str("list_id", listID).
		Int("remote", len(remote)).
		Int("count", len(out)).
		Msg("pulled tasks")
	return out, nil
}

// Push makes the remote list hold exactly tasks, in order.
// Existing remote tasks are deleted first. A failure part way leaves the
// remote list partially written; pushing again repairs it.
func (m *Mirror) Push(ctx context.Context, listID string, tasks []task.Task) error {
	existing, err := m.svc.ListTasks(ctx, listID)
	if err != nil {
		return err
	}
	for _, r := range existing {
		if err := m.svc.DeleteTask(ctx, listID, r.ID); err != nil {
			return fmt.Errorf("delete %q: %w", r.Title, err)
		}
	}

	previous := ""
	for i, t := range tasks {
		status := service.StatusNeedsAction
		if t.Completed {
			status = service.StatusCompleted
		}
		created, err := m.svc.InsertTask(ctx, listID, service.Task{Title: t.Title, Status: status}, previous)
		if err != nil {
			return fmt.Errorf("insert task %d: %w", i+1, err)
		}
		previous = created.ID
	}

	m.logger.Debug().
		Str("list_id", listID).
		Int("deleted", len(existing)).
		Int("count", len(tasks)).
		Msg("pushed tasks")
	return nil
}
