package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todoctl help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, store service.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todoctl                                          List all tasks
  todoctl list [common flags] [--long]
  todoctl show [common flags] <ref>
  todoctl add [common flags] [--desc <text>] [--done] <title...>
  todoctl edit [common flags] [--title <text>] [--desc <text>] <ref>
  todoctl done [common flags] <ref>
  todoctl undo [common flags] <ref>
  todoctl rm [common flags] <ref>
  todoctl ui [common flags] [--metrics-addr <addr>]
  todoctl help
  todoctl version

Task refs:
  N                Nth active task
  cN               Nth completed task
  <id>             task id or unique id prefix

Common flags:
  --config <dir>   Override config directory
  --api-url <url>  Override the task server address
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
