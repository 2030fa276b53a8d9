package commands

import (
	"context"
	"flag"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd prints one task, fetched fresh from the server.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show a task" }
func (c *ShowCmd) Usage() string     { return "todoctl show <ref>" }
func (c *ShowCmd) NeedsStore() bool  { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, store service.Store, args []string, out, errOut io.Writer) int {
	ctl := newController(cfg, store, errOut)
	task, code := loadAndResolve(ctx, ctl, args, errOut)
	if code != exitcode.Success {
		return code
	}

	task, err := ctl.Refresh(ctx, task.ID)
	if err != nil {
		return reportError(errOut, err)
	}
	output.FormatTaskDetail(out, task)
	return exitcode.Success
}
