package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
)

func init() {
	Register(&LoadCmd{})
}

// LoadCmd implements the load command. The file's tasks replace the task
// list entirely; a file that cannot be read or decoded leaves it untouched.
type LoadCmd struct{}

func (c *LoadCmd) Name() string      { return "load" }
func (c *LoadCmd) Aliases() []string { return nil }
func (c *LoadCmd) Synopsis() string  { return "Replace the task list with a saved file" }
func (c *LoadCmd) Usage() string     { return "todo load <path>" }
func (c *LoadCmd) NeedsAuth() bool   { return false }

func (c *LoadCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoadCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	path, ok := pathArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	s := store.New(cfg.Logger())
	if err := s.LoadAll(path); err != nil {
		fmt.Fprintf(errOut, "error: load tasks: %v\n", err)
		return exitcode.StorageError
	}

	if code := saveTasks(cfg, s, errOut); code != exitcode.Success {
		return code
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
