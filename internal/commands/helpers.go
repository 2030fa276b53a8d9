package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/form"
	"todoctl/internal/logging"
	"todoctl/internal/service"
	"todoctl/internal/state"
	"todoctl/internal/validate"
)

// newController builds a state controller for one CLI invocation.
// Failures are already reported as error lines, so the controller only
// logs when --debug is on.
func newController(cfg *config.Config, store service.Store, errOut io.Writer) *state.Controller {
	logger := logging.Discard()
	if cfg.Debug {
		logger = logging.New(errOut, cfg)
	}
	return state.New(store, state.WithLogger(logger))
}

// loadAndResolve loads the list and resolves the task reference in args.
// On failure it writes the error line and returns a non-zero exit code.
func loadAndResolve(ctx context.Context, ctl *state.Controller, args []string, errOut io.Writer) (service.Task, int) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}

	if err := ctl.Load(ctx); err != nil {
		return service.Task{}, reportError(errOut, err)
	}

	task, err := ref.Resolve(ctl.View())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}
	return task, exitcode.Success
}

// reportError writes a failed store operation. The state controller's
// *OpError renders as "<banner> (<cause>)".
func reportError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.BackendError
}

// reportFormErrors writes one line per failing field, title first.
func reportFormErrors(errOut io.Writer, f *form.Form) int {
	for _, field := range []string{validate.FieldTitle, validate.FieldDescription} {
		if msg := f.Error(field); msg != "" {
			fmt.Fprintf(errOut, "error: %s: %s\n", field, msg)
		}
	}
	return exitcode.UserError
}

// submit runs the form against fn and reports the outcome.
func submit(ctx context.Context, cfg *config.Config, f *form.Form, fn form.SubmitFunc, out, errOut io.Writer) int {
	if err := f.Submit(ctx, fn); err != nil {
		if errors.Is(err, form.ErrInvalid) {
			return reportFormErrors(errOut, f)
		}
		return reportError(errOut, err)
	}
	printOK(cfg, out)
	return exitcode.Success
}

func printOK(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
}
