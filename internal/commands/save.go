package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&SaveCmd{})
}

// SaveCmd implements the save command: a copy of the task list to another
// file. The format follows the target's extension.
type SaveCmd struct{}

func (c *SaveCmd) Name() string      { return "save" }
func (c *SaveCmd) Aliases() []string { return nil }
func (c *SaveCmd) Synopsis() string  { return "Save the task list to a file" }
func (c *SaveCmd) Usage() string     { return "todo save <path>" }
func (c *SaveCmd) NeedsAuth() bool   { return false }

func (c *SaveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SaveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	path, ok := pathArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	s, code := openTasks(cfg, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := s.SaveAll(path); err != nil {
		fmt.Fprintf(errOut, "error: save tasks: %v\n", err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// pathArg returns the single path argument.
func pathArg(args []string, errOut io.Writer) (string, bool) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: path required")
		return "", false
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return "", false
	}
	return args[0], true
}
