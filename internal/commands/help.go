package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                     List tasks
  todo list [common flags]                 List tasks
  todo add [common flags] <title...>       Add a task (alias: create)
  todo done [common flags] <n>             Mark task n completed (alias: complete)
  todo edit [common flags] <n> <title...>  Change the title of task n (alias: rename)
  todo rm [common flags] <n>               Delete task n (alias: delete)
  todo save [common flags] <path>          Save a copy of the list
  todo load [common flags] <path>          Replace the list with a saved file
  todo export [common flags] [--format text|csv|pdf] <path|->
  todo push [common flags] [--list <list-name>]
  todo pull [common flags] [--list <list-name>]
  todo login [common flags] [--force]
  todo logout [common flags]
  todo ui [common flags] [--load]
  todo help
  todo version

Task numbers start at 1. Files ending in .db, .sqlite or .sqlite3 are
SQLite databases; any other file is JSON.

Common flags:
  --config <dir>   Override config directory
  --file <path>    Override the task file
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TODO_CONFIG_DIR, TODO_FILE, TODO_REMOTE_LIST, TODO_DEBUG
  (also read from a .env file in the working directory)
`
