// Package store holds the in-memory task list and its whole-list persistence.
//
// A Store is owned by one event loop and is not safe for concurrent use.
// Invalid indices and empty titles are ignored rather than reported: the
// index-taking mutators return false and change nothing.
package store

import (
	"strings"

	"github.com/rs/zerolog"

	"todo/internal/storage"
	"todo/internal/task"
)

// Store is an ordered list of tasks. Insertion order is the display order and
// the persisted order.
type Store struct {
	tasks  []task.Task
	logger zerolog.Logger
}

// New returns an empty store that logs persistence events to logger.
func New(logger zerolog.Logger) *Store {
	return &Store{logger: logger}
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Tasks returns a copy of the list in order.
func (s *Store) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// At returns the task at index, or false if index is out of range.
func (s *Store) At(index int) (task.Task, bool) {
	if !s.valid(index) {
		return task.Task{}, false
	}
	return s.tasks[index], true
}

// Append adds a task with the trimmed title at the end of the list.
// A blank title is ignored.
func (s *Store) Append(title string) bool {
	title = cleanTitle(title)
	if title == "" {
		return false
	}
	s.tasks = append(s.tasks, task.New(title))
	return true
}

// MarkCompleted marks the task at index completed.
func (s *Store) MarkCompleted(index int) bool {
	if !s.valid(index) {
		return false
	}
	s.tasks[index].MarkCompleted()
	return true
}

// Rename sets the title of the task at index to the trimmed title.
// A blank title is ignored.
func (s *Store) Rename(index int, title string) bool {
	title = cleanTitle(title)
	if !s.valid(index) || title == "" {
		return false
	}
	s.tasks[index].Rename(title)
	return true
}

// Remove deletes the task at index; later tasks move up by one.
func (s *Store) Remove(index int) bool {
	if !s.valid(index) {
		return false
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return true
}

// SaveAll writes the whole list to path, replacing its content.
// The list itself is never modified.
func (s *Store) SaveAll(path string) error {
	return s.SaveTo(storage.ForPath(path))
}

// SaveTo writes the whole list through b.
func (s *Store) SaveTo(b storage.Backend) error {
	if err := b.Save(s.tasks); err != nil {
		s.logger.Debug().
			Err(err).
			Str("path", b.Path()).
			Str("backend", b.Name()).
			Msg("failed to save tasks")
		return err
	}
	s.logger.Debug().
		Str("path", b.Path()).
		Str("backend", b.Name()).
		Int("count", len(s.tasks)).
		Msg("saved tasks")
	return nil
}

// LoadAll replaces the whole list with the content of path.
// On error the list is left exactly as it was.
func (s *Store) LoadAll(path string) error {
	return s.LoadFrom(storage.ForPath(path))
}

// LoadFrom replaces the whole list with what b loads.
func (s *Store) LoadFrom(b storage.Backend) error {
	tasks, err := b.Load()
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("path", b.Path()).
			Str("backend", b.Name()).
			Msg("failed to load tasks")
		return err
	}
	s.tasks = tasks
	s.logger.Debug().
		Str("path", b.Path()).
		Str("backend", b.Name()).
		Int("count", len(tasks)).
		Msg("loaded tasks")
	return nil
}

// cleanTitle trims title and replaces invalid UTF-8 with U+FFFD, so a title
// reads back the same from every storage backend.
func cleanTitle(title string) string {
	return strings.TrimSpace(strings.ToValidUTF8(title, "\uFFFD"))
}

func (s *Store) valid(index int) bool {
	return index >= 0 && index < len(s.tasks)
}
