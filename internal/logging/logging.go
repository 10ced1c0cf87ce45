// Package logging builds the zerolog logger used for --debug output.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns a console logger writing debug events to w when debug is set,
// and a disabled logger otherwise.
func New(w io.Writer, debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}

	cw := zerolog.NewConsoleWriter()
	cw.Out = w
	cw.TimeFormat = time.DateTime
	cw.NoColor = !isTerminal(w)

	return zerolog.New(cw).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
