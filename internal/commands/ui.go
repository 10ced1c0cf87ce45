package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command. The list starts empty unless --load is
// given; nothing is written until the user saves.
type UICmd struct {
	load bool
}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Edit the task list interactively" }
func (c *UICmd) Usage() string     { return "todo ui [--load]" }
func (c *UICmd) NeedsAuth() bool   { return false }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.load, "load", false, "")
}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	m := ui.New(store.New(cfg.Logger()), cfg.TasksPath())
	if c.load {
		m = m.Load()
	}

	if err := ui.Run(ctx, m, os.Stdin, out); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
