package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"todo/internal/task"
)

const (
	// Format names the JSON document kind.
	Format = "todo.tasks"

	// Version is the JSON document version written by Encode.
	Version = 1
)

type document struct {
	Format  string   `json:"format"`
	Version int      `json:"version"`
	Tasks   []record `json:"tasks"`
}

type record struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Encode writes tasks as a versioned JSON document.
func Encode(w io.Writer, tasks []task.Task) error {
	doc := document{
		Format:  Format,
		Version: Version,
		Tasks:   make([]record, 0, len(tasks)),
	}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, record{Title: t.Title, Completed: t.Completed})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// Decode reads a document written by Encode.
// Unknown fields, trailing content, a foreign format, an unsupported
// version and a missing tasks array are all rejected.
func Decode(r io.Reader) ([]task.Task, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("invalid JSON: trailing content")
	}

	if doc.Format != Format {
		return nil, fmt.Errorf("unknown format %q", doc.Format)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("unsupported version %d", doc.Version)
	}
	if doc.Tasks == nil {
		return nil, errors.New("tasks must be an array")
	}

	tasks := make([]task.Task, 0, len(doc.Tasks))
	for _, rec := range doc.Tasks {
		tasks = append(tasks, task.Task{Title: rec.Title, Completed: rec.Completed})
	}
	return tasks, nil
}

// JSONFile stores the task list as a JSON document.
type JSONFile struct {
	path string
}

// NewJSONFile returns a JSON backend for path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (f *JSONFile) Name() string { return "json" }
func (f *JSONFile) Path() string { return f.path }

// Save writes the document atomically: readers see the old file or the new
// one, never a partial write.
func (f *JSONFile) Save(tasks []task.Task) error {
	var buf bytes.Buffer
	if err := Encode(&buf, tasks); err != nil {
		return &IOError{Op: "write", Path: f.path, Err: err}
	}
	if err := writeFileAtomic(f.path, buf.Bytes(), 0o644); err != nil {
		return &IOError{Op: "write", Path: f.path, Err: err}
	}
	return nil
}

func (f *JSONFile) Load() ([]task.Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: f.path, Err: err}
	}
	tasks, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: f.path, Err: err}
	}
	return tasks, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true

	syncDir(dir)
	return nil
}

// syncDir flushes a rename in dir. Some filesystems refuse fsync on
// directories, so failures are ignored.
func syncDir(dir string) {
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
}
