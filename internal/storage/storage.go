// Package storage encodes and decodes the whole task list to a file.
//
// Two backends exist: a versioned JSON document (the default) and a SQLite
// database, selected by file extension. Both store the plain shape
// {title, completed} in list order and rewrite the file in full on save.
// Titles must be valid UTF-8; the JSON encoder replaces invalid bytes with
// U+FFFD, so the store cleans titles before they get here.
package storage

import (
	"path/filepath"
	"strings"

	"todo/internal/task"
)

// Backend saves and loads a complete task sequence at a fixed path.
type Backend interface {
	// Name identifies the encoding, for logs.
	Name() string

	// Path returns the file the backend reads and writes.
	Path() string

	// Save overwrites the file with tasks, in order.
	// Failures are *IOError.
	Save(tasks []task.Task) error

	// Load reads the file. Failures are *IOError or *DecodeError.
	Load() ([]task.Task, error)
}

// ForPath picks the backend for path by extension.
// .db, .sqlite and .sqlite3 use SQLite; anything else uses the JSON document.
func ForPath(path string) Backend {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteFile(path)
	default:
		return NewJSONFile(path)
	}
}
