package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tdtask/internal/config"
	"tdtask/internal/credential"
	"tdtask/internal/exitcode"
	"tdtask/internal/tasks"
	"tdtask/internal/transport"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tdtask help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, tr transport.Transport, user *credential.User, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-52s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprintf(out, flagsText, tasks.DefaultDueLang)
	return exitcode.Success
}

const flagsText = `
Flags go before the arguments; use -- to start content with a dash.

Task flags:
  --description, -d <text>    Task description
  --project, -p <id>          Project ID
  --section <id>              Section ID
  --parent <id>               Parent task ID
  --order <n>                 Position among siblings
  --label, -l <name>          Label (repeatable)
  --no-labels                 Send an empty label list
  --priority <1-4>            Priority, 4 is urgent
  --due <text>                Natural language due date ("next monday")
  --due-lang <tag>            Language of --due (default %s)
  --due-date <YYYY-MM-DD>     Due date
  --due-datetime <RFC3339>    Due date and time
  --assignee <id>             Assignee user ID
  --duration <n>              Duration amount
  --duration-unit <unit>      minute or day

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
  --pretty         Indent request bodies
`
