package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/report"
	"todo/internal/service"
	"todo/internal/task"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
}

// SetFormat sets the format flag (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write a text, CSV or PDF report" }
func (c *ExportCmd) Usage() string     { return "todo export [--format text|csv|pdf] <path|->" }
func (c *ExportCmd) NeedsAuth() bool   { return false }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "", "")
	fs.StringVar(&c.format, "f", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	path, ok := pathArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	format := report.FormatForPath(path)
	if c.format != "" {
		f, err := report.ParseFormat(c.format)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		format = f
	}

	s, code := openTasks(cfg, errOut)
	if code != exitcode.Success {
		return code
	}

	// "-" writes the report to stdout.
	if path == "-" {
		if err := report.Write(out, format, s.Tasks()); err != nil {
			fmt.Fprintf(errOut, "error: export: %v\n", err)
			return exitcode.StorageError
		}
		return exitcode.Success
	}

	if err := writeReport(path, format, s.Tasks()); err != nil {
		fmt.Fprintf(errOut, "error: export: %v\n", err)
		return exitcode.StorageError
	}

	logger := cfg.Logger()
	logger.Debug().Str("path", path).Str("format", string(format)).Int("tasks", s.Len()).Msg("exported report")
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func writeReport(path string, format report.Format, tasks []task.Task) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, format, tasks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
