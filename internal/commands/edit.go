package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/form"
	"todoctl/internal/service"
	"todoctl/internal/state"
	"todoctl/internal/validate"
)

func init() {
	Register(&EditCmd{})
}

// optionalString is a string flag that remembers whether it was given.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(v string) error {
	o.value = v
	o.set = true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title       optionalString
	description optionalString
}

// SetTitle sets the title flag (for testing).
func (c *EditCmd) SetTitle(title string) {
	_ = c.title.Set(title)
}

// SetDescription sets the description flag (for testing).
func (c *EditCmd) SetDescription(desc string) {
	_ = c.description.Set(desc)
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's title or description" }
func (c *EditCmd) Usage() string     { return "todoctl edit [--title <text>] [--desc <text>] <ref>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title = optionalString{}
	c.description = optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "desc", "")
	fs.Var(&c.description, "d", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, store service.Store, args []string, out, errOut io.Writer) int {
	if !c.title.set && !c.description.set {
		fmt.Fprintln(errOut, "error: nothing to change: use --title or --desc")
		return exitcode.UserError
	}

	ctl := newController(cfg, store, errOut)
	task, code := loadAndResolve(ctx, ctl, args, errOut)
	if code != exitcode.Success {
		return code
	}
	if !state.Editable(task) {
		fmt.Fprintf(errOut, "error: completed tasks cannot be edited: %s\n", args[0])
		return exitcode.UserError
	}

	ctl.Edit(task)
	f := form.NewEdit(task)
	if c.title.set {
		f.SetField(validate.FieldTitle, c.title.value)
	}
	if c.description.set {
		f.SetField(validate.FieldDescription, c.description.value)
	}

	return submit(ctx, cfg, f, ctl.Submit, out, errOut)
}
