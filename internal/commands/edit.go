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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. The completion flag is kept.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"rename"} }
func (c *EditCmd) Synopsis() string  { return "Change a task's title" }
func (c *EditCmd) Usage() string     { return "todo edit <n> <title...>" }
func (c *EditCmd) NeedsAuth() bool   { return false }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	index, rest, ok := parseIndex(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	title := strings.Join(rest, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	s, code := openTasks(cfg, errOut)
	if code != exitcode.Success {
		return code
	}

	return commit(cfg, s, s.Rename(index, title), out, errOut)
}
