// Package form holds the transient input state for creating or editing a task.
package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"todoctl/internal/service"
	"todoctl/internal/validate"
)

// ErrInvalid is returned by Submit when the draft fails validation.
var ErrInvalid = errors.New("form has validation errors")

// SubmitFunc receives the cleaned draft. A returned error keeps the draft.
type SubmitFunc func(ctx context.Context, draft service.NewTask) error

// State is a point-in-time copy of the form for rendering.
type State struct {
	Draft      service.NewTask
	Errors     map[string]string
	Submitting bool
	Editing    bool
}

// Form is the controller for one create/edit form.
type Form struct {
	mu         sync.Mutex
	draft      service.NewTask
	errors     map[string]string
	submitting bool
	editing    bool
}

// New returns an empty create form.
func New() *Form {
	return &Form{errors: map[string]string{}}
}

// NewEdit returns a form whose draft is initialised from task.
func NewEdit(task service.Task) *Form {
	return &Form{
		draft: service.NewTask{
			Title:       task.Title,
			Description: task.Description,
			Completed:   task.Completed,
		},
		errors:  map[string]string{},
		editing: true,
	}
}

// SetField updates one text field and re-validates only that field.
// Unknown field names are ignored.
func (f *Form) SetField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case validate.FieldTitle:
		f.draft.Title = value
	case validate.FieldDescription:
		f.draft.Description = value
	default:
		return
	}
	f.errors[name] = validate.Field(name, value)
}

// SetCompleted sets the completion flag carried through on submit.
func (f *Form) SetCompleted(completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Completed = completed
}

// Submit validates the whole draft and, if valid, calls fn with the trimmed
// draft. Both field errors are recorded even if only one field fails.
// On success the form is reset; on failure the draft and errors are kept.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) error {
	f.mu.Lock()
	titleErr := validate.Title(f.draft.Title)
	descErr := validate.Description(f.draft.Description)
	f.errors = map[string]string{
		validate.FieldTitle:       titleErr,
		validate.FieldDescription: descErr,
	}
	if titleErr != "" || descErr != "" {
		f.mu.Unlock()
		return ErrInvalid
	}
	f.submitting = true
	clean := service.NewTask{
		Title:       strings.TrimSpace(f.draft.Title),
		Description: strings.TrimSpace(f.draft.Description),
		Completed:   f.draft.Completed,
	}
	f.mu.Unlock()

	err := fn(ctx, clean)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		return err
	}
	f.resetLocked()
	return nil
}

// Cancel discards the draft and errors. No network call is made.
func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Form) resetLocked() {
	f.draft = service.NewTask{}
	f.errors = map[string]string{}
}

// Snapshot returns a copy of the current state.
func (f *Form) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		if v != "" {
			errs[k] = v
		}
	}
	return State{
		Draft:      f.draft,
		Errors:     errs,
		Submitting: f.submitting,
		Editing:    f.editing,
	}
}

// Error returns the current message for field, or "".
func (f *Form) Error(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[field]
}

// CanSubmit is false while submitting or while any field error is shown.
func (f *Form) CanSubmit() bool {
	s := f.Snapshot()
	return !s.Submitting && len(s.Errors) == 0
}
