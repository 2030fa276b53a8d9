package commands

import (
	"context"
	"flag"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "todoctl done <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, store service.Store, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, store, true, args, out, errOut)
}

// UndoCmd marks a completed task active again.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return []string{"reopen"} }
func (c *UndoCmd) Synopsis() string  { return "Mark a task active" }
func (c *UndoCmd) Usage() string     { return "todoctl undo <ref>" }
func (c *UndoCmd) NeedsStore() bool  { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, store service.Store, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, store, false, args, out, errOut)
}

// runToggle is the shared implementation for done and undo.
func runToggle(ctx context.Context, cfg *config.Config, store service.Store, completed bool, args []string, out, errOut io.Writer) int {
	ctl := newController(cfg, store, errOut)
	task, code := loadAndResolve(ctx, ctl, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := ctl.Toggle(ctx, task.ID, completed); err != nil {
		return reportError(errOut, err)
	}

	printOK(cfg, out)
	return exitcode.Success
}
