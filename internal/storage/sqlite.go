package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"todo/internal/task"
)

// SchemaVersion is stored in PRAGMA user_version.
const SchemaVersion = 1

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	position  INTEGER PRIMARY KEY,
	title     TEXT    NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0
);`

// SQLiteFile stores the task list in a SQLite database, one row per task.
type SQLiteFile struct {
	path string
}

// NewSQLiteFile returns a SQLite backend for path.
func NewSQLiteFile(path string) *SQLiteFile {
	return &SQLiteFile{path: path}
}

func (f *SQLiteFile) Name() string { return "sqlite" }
func (f *SQLiteFile) Path() string { return f.path }

// Save writes a fresh database next to the path and renames it over the
// file, so whatever the path held before (another schema, or not a
// database at all) is replaced and readers never see a partial write.
func (f *SQLiteFile) Save(tasks []task.Task) error {
	if err := f.save(tasks); err != nil {
		return &IOError{Op: "write", Path: f.path, Err: err}
	}
	return nil
}

func (f *SQLiteFile) save(tasks []task.Task) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
			_ = os.Remove(tmpName + "-journal")
		}
	}()

	if err := writeDatabase(tmpName, tasks); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return err
	}
	committed = true

	syncDir(dir)
	return nil
}

// writeDatabase fills the empty database at path with tasks.
// The database is closed before it returns.
func writeDatabase(path string, tasks []task.Task) error {
	dsn, err := sqliteDSN(path, false)
	if err != nil {
		return err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(createTasksTable); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (position, title, completed) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.Exec(i, t.Title, t.Completed); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, SchemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}

func (f *SQLiteFile) Load() ([]task.Task, error) {
	// Opening a missing path would create an empty database.
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: f.path, Err: err}
	}
	_ = fh.Close()

	dsn, err := sqliteDSN(f.path, true)
	if err != nil {
		return nil, &IOError{Op: "open", Path: f.path, Err: err}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &IOError{Op: "open", Path: f.path, Err: err}
	}
	defer db.Close()

	tasks, err := loadTasks(db)
	if err != nil {
		return nil, &DecodeError{Path: f.path, Err: err}
	}
	return tasks, nil
}

func loadTasks(db *sql.DB) ([]task.Task, error) {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return nil, err
	}
	if version != SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", version)
	}

	rows, err := db.Query(`SELECT title, completed FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.Title, &t.Completed); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// sqliteDSN builds a DSN like file:/abs/path?_pragma=busy_timeout(5000).
func sqliteDSN(path string, readOnly bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dsn := "file:" + filepath.ToSlash(abs) + "?_pragma=busy_timeout(5000)"
	if readOnly {
		dsn += "&mode=ro"
	}
	return dsn, nil
}
