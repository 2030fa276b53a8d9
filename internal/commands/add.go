package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"todoctl/internal/config"
	"todoctl/internal/form"
	"todoctl/internal/service"
	"todoctl/internal/state"
	"todoctl/internal/validate"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	done        bool
}

// SetDescription sets the description flag (for testing).
func (c *AddCmd) SetDescription(desc string) {
	c.description = desc
}

// SetDone sets the done flag (for testing).
func (c *AddCmd) SetDone(done bool) {
	c.done = done
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todoctl add [--desc <text>] [--done] <title...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.BoolVar(&c.done, "done", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, store service.Store, args []string, out, errOut io.Writer) int {
	ctl := newController(cfg, store, errOut)
	ctl.OpenForm()

	f := form.New()
	f.SetField(validate.FieldTitle, strings.Join(args, " "))
	f.SetField(validate.FieldDescription, c.description)
	f.SetCompleted(c.done)

	return submit(ctx, cfg, f, c.create(ctl), out, errOut)
}

// create submits through the controller. The server ignores the completion
// flag on create, so --done is applied with a follow-up toggle.
func (c *AddCmd) create(ctl *state.Controller) form.SubmitFunc {
	return func(ctx context.Context, draft service.NewTask) error {
		created, err := ctl.Create(ctx, draft)
		if err != nil {
			return err
		}
		if draft.Completed && !created.Completed {
			return ctl.Toggle(ctx, created.ID, true)
		}
		return nil
	}
}
