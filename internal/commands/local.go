package commands

import (
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/storage"
	"todo/internal/store"
)

// openTasks loads the task file into a new store.
// A task file that does not exist yet is an empty list.
func openTasks(cfg *config.Config, errOut io.Writer) (*store.Store, int) {
	s := store.New(cfg.Logger())
	if err := s.LoadAll(cfg.TasksPath()); err != nil && !storage.IsNotExist(err) {
		fmt.Fprintf(errOut, "error: load tasks: %v\n", err)
		return nil, exitcode.StorageError
	}
	return s, exitcode.Success
}

// saveTasks writes the store back to the task file.
func saveTasks(cfg *config.Config, s *store.Store, errOut io.Writer) int {
	if err := s.SaveAll(cfg.TasksPath()); err != nil {
		fmt.Fprintf(errOut, "error: save tasks: %v\n", err)
		return exitcode.StorageError
	}
	return exitcode.Success
}

// commit saves s and reports "ok", or reports "unchanged" without touching
// the file when the edit was a no-op.
func commit(cfg *config.Config, s *store.Store, changed bool, out, errOut io.Writer) int {
	if !changed {
		if !cfg.Quiet {
			fmt.Fprintln(out, "unchanged")
		}
		return exitcode.Success
	}
	if code := saveTasks(cfg, s, errOut); code != exitcode.Success {
		return code
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// parseIndex parses the task number argument, reporting user errors.
func parseIndex(args []string, errOut io.Writer) (int, []string, bool) {
	index, rest, err := ParseTaskNumber(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, nil, false
	}
	return index, rest, true
}
