package storage

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/task"
)

func sampleTasks() []task.Task {
	return []task.Task{
		{Title: "Buy milk", Completed: true},
		{Title: "Pay bills"},
		{Title: "Écrire à Zoë 🐈", Completed: true},
		{Title: "  padded  "},
		{Title: `quote " and <tag> & backslash \`},
	}
}

func assertTasksEqual(t *testing.T, want, got []task.Task) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("expected %d tasks, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("task %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestForPath(t *testing.T) {
	cases := map[string]string{
		"tasks.dat":     "json",
		"tasks.json":    "json",
		"tasks":         "json",
		"tasks.db":      "sqlite",
		"tasks.SQLITE":  "sqlite",
		"tasks.sqlite3": "sqlite",
	}
	for path, want := range cases {
		if got := ForPath(path).Name(); got != want {
			t.Errorf("ForPath(%q): expected %s, got %s", path, want, got)
		}
	}
}

func TestEncodeDecode_Document(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, []task.Task{{Title: "a & b", Completed: true}}); err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := "{\n  \"format\": \"todo.tasks\",\n  \"version\": 1,\n  \"tasks\": [\n    {\n      \"title\": \"a & b\",\n      \"completed\": true\n    }\n  ]\n}\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestEncode_EmptyListIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestDecode_Rejects(t *testing.T) {
	cases := map[string]string{
		"not json":      `tasks`,
		"truncated":     `{"format":"todo.tasks","version":1,"tasks":[{"title":"a"`,
		"trailing":      `{"format":"todo.tasks","version":1,"tasks":[]} {}`,
		"unknown field": `{"format":"todo.tasks","version":1,"tasks":[],"extra":1}`,
		"wrong format":  `{"format":"other","version":1,"tasks":[]}`,
		"future":        `{"format":"todo.tasks","version":2,"tasks":[]}`,
		"null tasks":    `{"format":"todo.tasks","version":1,"tasks":null}`,
		"missing tasks": `{"format":"todo.tasks","version":1}`,
		"bad field":     `{"format":"todo.tasks","version":1,"tasks":[{"title":1}]}`,
	}
	for name, input := range cases {
		if _, err := Decode(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestJSONFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.dat")
	b := NewJSONFile(path)

	if err := b.Save(sampleTasks()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := b.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertTasksEqual(t, sampleTasks(), got)
}

func TestJSONFile_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.dat")
	b := NewJSONFile(path)

	if err := b.Save(sampleTasks()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := b.Save([]task.Task{{Title: "only"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := b.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertTasksEqual(t, []task.Task{{Title: "only"}}, got)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the task file, got %d entries", len(entries))
	}
}

func TestJSONFile_SaveCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.dat")
	if err := NewJSONFile(path).Save(sampleTasks()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestJSONFile_LoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.dat")
	_, err := NewJSONFile(path).Load()

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T: %v", err, err)
	}
	if !IsNotExist(err) {
		t.Error("expected IsNotExist to be true")
	}
	want := "read " + path + ": no such file or directory"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestJSONFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.dat")
	if err := os.WriteFile(path, []byte("\x00\x01garbage"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := NewJSONFile(path).Load()

	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	if IsNotExist(err) {
		t.Error("corrupt file is not a missing file")
	}
}

func TestJSONFile_SaveToDirectoryFails(t *testing.T) {
	dir := t.TempDir()
	err := NewJSONFile(dir).Save(sampleTasks())

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T: %v", err, err)
	}
	if ioErr.Op != "write" {
		t.Errorf("expected op write, got %q", ioErr.Op)
	}
}

func TestSQLiteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	b := NewSQLiteFile(path)

	if err := b.Save(sampleTasks()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := b.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertTasksEqual(t, sampleTasks(), got)
}

func TestSQLiteFile_SaveReplacesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	b := NewSQLiteFile(path)

	if err := b.Save(sampleTasks()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := b.Save([]task.Task{{Title: "second", Completed: true}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := b.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertTasksEqual(t, []task.Task{{Title: "second", Completed: true}}, got)
}

func TestSQLiteFile_EmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	b := NewSQLiteFile(path)

	if err := b.Save(nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := b.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no tasks, got %+v", got)
	}
}

func TestSQLiteFile_LoadMissingDoesNotCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	_, err := NewSQLiteFile(path).Load()

	if !IsNotExist(err) {
		t.Fatalf("expected missing-file IOError, got %T: %v", err, err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("load must not create the database file")
	}
}

func TestSQLiteFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	if err := os.WriteFile(path, []byte("this is not a database, just text padding it out"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := NewSQLiteFile(path).Load()

	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
}

func TestSQLiteFile_SaveOverwritesForeignContent(t *testing.T) {
	dir := t.TempDir()

	junk := filepath.Join(dir, "junk.db")
	if err := os.WriteFile(junk, []byte("not a database, just old junk"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	foreign := filepath.Join(dir, "foreign.sqlite")
	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(foreign))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE tasks (id TEXT PRIMARY KEY, note TEXT)`,
		`INSERT INTO tasks VALUES ('x', 'old')`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create foreign schema: %v", err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	for _, path := range []string{junk, foreign} {
		b := NewSQLiteFile(path)
		if err := b.Save(sampleTasks()); err != nil {
			t.Fatalf("%s: save: %v", path, err)
		}
		got, err := b.Load()
		if err != nil {
			t.Fatalf("%s: load: %v", path, err)
		}
		assertTasksEqual(t, sampleTasks(), got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp.") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestSQLiteFile_SaveToDirectoryFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tasks.db")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	err := NewSQLiteFile(dir).Save(sampleTasks())

	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "write" {
		t.Fatalf("expected write *IOError, got %T: %v", err, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(dir))
	if len(entries) != 1 {
		t.Errorf("expected only the directory to remain, got %d entries", len(entries))
	}
}
