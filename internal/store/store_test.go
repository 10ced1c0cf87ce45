package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"todo/internal/storage"
	"todo/internal/task"
)

func newStore(t *testing.T, titles ...string) *Store {
	t.Helper()
	s := New(zerolog.Nop())
	for _, title := range titles {
		if !s.Append(title) {
			t.Fatalf("append %q failed", title)
		}
	}
	return s
}

func display(s *Store) []string {
	var out []string
	for _, tk := range s.Tasks() {
		out = append(out, tk.String())
	}
	return out
}

func assertDisplay(t *testing.T, s *Store, want ...string) {
	t.Helper()
	got := display(s)
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestAppend_AddsOpenTask(t *testing.T) {
	s := newStore(t, "one")
	if !s.Append("two") {
		t.Fatal("expected append to report a change")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 tasks, got %d", s.Len())
	}
	last, _ := s.At(1)
	if last.Title != "two" || last.Completed {
		t.Errorf("unexpected new task: %+v", last)
	}
}

func TestAppend_TrimsTitle(t *testing.T) {
	s := newStore(t)
	s.Append("  Buy milk \t")
	got, _ := s.At(0)
	if got.Title != "Buy milk" {
		t.Errorf("expected trimmed title, got %q", got.Title)
	}
}

func TestAppend_BlankIsNoOp(t *testing.T) {
	s := newStore(t, "one")
	for _, title := range []string{"", "   ", "\t\n"} {
		if s.Append(title) {
			t.Errorf("append %q reported a change", title)
		}
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 task, got %d", s.Len())
	}
}

func TestAppend_ReplacesInvalidUTF8(t *testing.T) {
	for _, name := range []string{"tasks.dat", "tasks.db"} {
		t.Run(name, func(t *testing.T) {
			s := newStore(t, "caf\xe9")
			s.Append("ok")
			s.Rename(1, "bad \xff\xfe byte")
			assertDisplay(t, s, "[ ] caf\uFFFD", "[ ] bad \uFFFD byte")

			path := filepath.Join(t.TempDir(), name)
			if err := s.SaveAll(path); err != nil {
				t.Fatalf("save: %v", err)
			}
			loaded := New(zerolog.Nop())
			if err := loaded.LoadAll(path); err != nil {
				t.Fatalf("load: %v", err)
			}
			assertDisplay(t, loaded, display(s)...)
		})
	}
}

func TestMarkCompleted_Idempotent(t *testing.T) {
	s := newStore(t, "a", "b")
	s.MarkCompleted(1)
	once := s.Tasks()
	s.MarkCompleted(1)
	twice := s.Tasks()

	if once[1] != twice[1] || !twice[1].Completed {
		t.Errorf("expected completed task after both calls, got %+v then %+v", once[1], twice[1])
	}
	if twice[0].Completed {
		t.Error("other task should stay open")
	}
}

func TestOutOfRange_NoOp(t *testing.T) {
	s := newStore(t, "a", "b")
	before := s.Tasks()

	if s.MarkCompleted(-1) {
		t.Error("MarkCompleted(-1) reported a change")
	}
	if s.MarkCompleted(s.Len()) {
		t.Error("MarkCompleted(len) reported a change")
	}
	if s.Rename(s.Len(), "x") {
		t.Error("Rename(len) reported a change")
	}
	if s.Remove(-1) {
		t.Error("Remove(-1) reported a change")
	}
	if s.Remove(s.Len()) {
		t.Error("Remove(len) reported a change")
	}
	if _, ok := s.At(5); ok {
		t.Error("At(5) should not find a task")
	}

	after := s.Tasks()
	if len(after) != len(before) || after[0] != before[0] || after[1] != before[1] {
		t.Errorf("list changed: %+v -> %+v", before, after)
	}
}

func TestRename(t *testing.T) {
	s := newStore(t, "old")
	if !s.Rename(0, "  new  ") {
		t.Fatal("expected rename to report a change")
	}
	got, _ := s.At(0)
	if got.Title != "new" {
		t.Errorf("expected 'new', got %q", got.Title)
	}
}

func TestRename_BlankIsNoOp(t *testing.T) {
	s := newStore(t, "keep")
	if s.Rename(0, "   ") {
		t.Error("blank rename reported a change")
	}
	got, _ := s.At(0)
	if got.Title != "keep" {
		t.Errorf("expected 'keep', got %q", got.Title)
	}
}

func TestRemove_Shifts(t *testing.T) {
	s := newStore(t, "a", "b", "c", "d")
	if !s.Remove(1) {
		t.Fatal("expected remove to report a change")
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 tasks, got %d", s.Len())
	}
	got, _ := s.At(1)
	if got.Title != "c" {
		t.Errorf("expected former index 2 at index 1, got %q", got.Title)
	}
	assertDisplay(t, s, "[ ] a", "[ ] c", "[ ] d")
}

func TestTasks_ReturnsCopy(t *testing.T) {
	s := newStore(t, "a")
	tasks := s.Tasks()
	tasks[0].Title = "mutated"

	got, _ := s.At(0)
	if got.Title != "a" {
		t.Error("Tasks must not expose internal storage")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"tasks.dat", "tasks.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			s := newStore(t, "Buy milk", "Pay bills", "日本語のタスク", "emoji ✅ task")
			s.MarkCompleted(0)
			s.MarkCompleted(2)
			want := s.Tasks()

			if err := s.SaveAll(path); err != nil {
				t.Fatalf("save: %v", err)
			}

			loaded := New(zerolog.Nop())
			if err := loaded.LoadAll(path); err != nil {
				t.Fatalf("load: %v", err)
			}
			got := loaded.Tasks()
			if len(got) != len(want) {
				t.Fatalf("expected %d tasks, got %d", len(want), len(got))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("task %d: expected %+v, got %+v", i, want[i], got[i])
				}
			}
		})
	}
}

func TestSaveAll_DoesNotMutate(t *testing.T) {
	s := newStore(t, "a", "b")
	before := s.Tasks()

	if err := s.SaveAll(filepath.Join(t.TempDir(), "tasks.dat")); err != nil {
		t.Fatalf("save: %v", err)
	}
	// A failing save leaves the list alone too.
	if err := s.SaveAll(t.TempDir()); err == nil {
		t.Fatal("expected saving over a directory to fail")
	}

	after := s.Tasks()
	if len(after) != 2 || after[0] != before[0] || after[1] != before[1] {
		t.Errorf("list changed: %+v -> %+v", before, after)
	}
}

func TestLoadAll_ReplacesNotMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.dat")
	if err := storage.NewJSONFile(path).Save([]task.Task{{Title: "from disk"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := newStore(t, "in memory 1", "in memory 2")
	if err := s.LoadAll(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	assertDisplay(t, s, "[ ] from disk")
}

func TestLoadAll_FailureIsolation(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.dat")
	if err := os.WriteFile(corrupt, []byte(`{"format":"todo.tasks","version":1,"tasks":[`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	corruptDB := filepath.Join(dir, "corrupt.db")
	if err := os.WriteFile(corruptDB, []byte("definitely not sqlite content"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases := []struct {
		name    string
		path    string
		decode  bool
		missing bool
	}{
		{"missing", filepath.Join(dir, "nope.dat"), false, true},
		{"missing sqlite", filepath.Join(dir, "nope.db"), false, true},
		{"corrupt", corrupt, true, false},
		{"corrupt sqlite", corruptDB, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t, "Buy milk", "Pay bills")
			s.MarkCompleted(0)
			before := s.Tasks()

			err := s.LoadAll(tc.path)
			if err == nil {
				t.Fatal("expected an error")
			}

			var decErr *storage.DecodeError
			if got := errors.As(err, &decErr); got != tc.decode {
				t.Errorf("DecodeError = %v, want %v (err: %v)", got, tc.decode, err)
			}
			if got := storage.IsNotExist(err); got != tc.missing {
				t.Errorf("IsNotExist = %v, want %v (err: %v)", got, tc.missing, err)
			}

			after := s.Tasks()
			if len(after) != len(before) {
				t.Fatalf("expected %d tasks, got %d", len(before), len(after))
			}
			for i := range before {
				if after[i] != before[i] {
					t.Errorf("task %d changed: %+v -> %+v", i, before[i], after[i])
				}
			}
		})
	}
}

func TestScenario(t *testing.T) {
	s := New(zerolog.Nop())
	s.Append("Buy milk")
	s.Append("Pay bills")
	s.MarkCompleted(0)
	assertDisplay(t, s, "[✔] Buy milk", "[ ] Pay bills")

	s.Remove(1)
	assertDisplay(t, s, "[✔] Buy milk")

	path := filepath.Join(t.TempDir(), "t.dat")
	if err := s.SaveAll(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh := New(zerolog.Nop())
	if err := fresh.LoadAll(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	assertDisplay(t, fresh, "[✔] Buy milk")
}
