package storage

import (
	"errors"
	"fmt"
	"io/fs"
)

// IOError reports that a task file could not be opened, read or written.
// It unwraps to the underlying OS error, so errors.Is(err, fs.ErrNotExist)
// holds for a missing file.
type IOError struct {
	Op   string // "open", "read", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	err := e.Err
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DecodeError reports that a task file does not hold a valid task sequence.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotExist reports whether err is an IOError for a missing file.
func IsNotExist(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr) && errors.Is(ioErr.Err, fs.ErrNotExist)
}
