// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"todo/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// ErrAmbiguous is returned when multiple matches are found.
var ErrAmbiguous = errors.New("ambiguous")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	lists  []service.TaskList
	tasks  map[string][]service.Task // listID -> tasks in list order
	nextID int

	// Error injection for testing
	DefaultListErr error
	ResolveListErr error
	ListTasksErr   error
	InsertTaskErr  error
	DeleteTaskErr  error

	// FailInsertAfter makes InsertTask fail once this many inserts succeeded.
	// Zero disables it.
	FailInsertAfter int
	inserts         int
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks: make(map[string][]service.Task),
	}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	fs.tasks[DefaultListID] = nil
	return fs
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask appends a task to the end of a list.
func (f *FakeService) AddTask(listID, taskID, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	status := service.StatusNeedsAction
	if completed {
		status = service.StatusCompleted
	}
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:     taskID,
		Title:  title,
		Status: status,
	})
}

// Tasks returns the tasks of a list in order, with positions filled in.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot(listID)
}

func (f *FakeService) snapshot(listID string) []service.Task {
	src := f.tasks[listID]
	out := make([]service.Task, len(src))
	for i, t := range src {
		t.Position = fmt.Sprintf("%020d", i)
		out[i] = t
	}
	return out
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, ErrAmbiguous
	}
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	if _, ok := f.tasks[listID]; !ok {
		return nil, ErrNotFound
	}
	return f.snapshot(listID), nil
}

// InsertTask implements service.Service.
func (f *FakeService) InsertTask(ctx context.Context, listID string, task service.Task, previousID string) (service.Task, error) {
	if f.InsertTaskErr != nil {
		return service.Task{}, f.InsertTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailInsertAfter > 0 && f.inserts >= f.FailInsertAfter {
		return service.Task{}, errors.New("insert failed")
	}

	list, ok := f.tasks[listID]
	if !ok {
		return service.Task{}, ErrNotFound
	}

	at := 0
	if previousID != "" {
		at = -1
		for i, t := range list {
			if t.ID == previousID {
				at = i + 1
				break
			}
		}
		if at < 0 {
			return service.Task{}, ErrNotFound
		}
	}

	f.nextID++
	task.ID = fmt.Sprintf("fake-%d", f.nextID)
	if task.Status == "" {
		task.Status = service.StatusNeedsAction
	}

	list = append(list, service.Task{})
	copy(list[at+1:], list[at:])
	list[at] = task
	f.tasks[listID] = list
	f.inserts++

	task.Position = fmt.Sprintf("%020d", at)
	return task, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, listID, taskID string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return ErrNotFound
	}

	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[listID] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
