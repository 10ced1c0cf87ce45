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
	"todo/internal/storage"
)

func init() {
	Register(&PullCmd{})
}

// PullCmd implements the pull command: the local task file is replaced with
// the remote list, like load.
type PullCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *PullCmd) SetListName(name string) {
	c.listName = name
}

func (c *PullCmd) Name() string      { return "pull" }
func (c *PullCmd) Aliases() []string { return nil }
func (c *PullCmd) Synopsis() string  { return "Replace the local list with a Google Tasks list" }
func (c *PullCmd) Usage() string     { return "todo pull [--list <list-name>]" }
func (c *PullCmd) NeedsAuth() bool   { return true }

func (c *PullCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PullCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	m := mirror.New(svc, cfg.Logger())
	list, code := resolveRemote(ctx, cfg, m, c.listName, errOut)
	if code != exitcode.Success {
		return code
	}

	tasks, err := m.Pull(ctx, list.ID)
	if err != nil {
		return backendFailure(err, errOut)
	}

	if err := storage.ForPath(cfg.TasksPath()).Save(tasks); err != nil {
		fmt.Fprintf(errOut, "error: save tasks: %v\n", err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
