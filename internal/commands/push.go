package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/mirror"
	"todo/internal/service"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command: the remote list is replaced with the
// local task list.
type PushCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Replace a Google Tasks list with the local list" }
func (c *PushCmd) Usage() string     { return "todo push [--list <list-name>]" }
func (c *PushCmd) NeedsAuth() bool   { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	s, code := openTasks(cfg, errOut)
	if code != exitcode.Success {
		return code
	}

	m := mirror.New(svc, cfg.Logger())
	list, code := resolveRemote(ctx, cfg, m, c.listName, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := m.Push(ctx, list.ID, s.Tasks()); err != nil {
		return backendFailure(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
