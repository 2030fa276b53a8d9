// Package state owns the canonical in-memory task list and reconciles it
// with the remote store.
package state

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"todoctl/internal/logging"
	"todoctl/internal/partition"
	"todoctl/internal/service"
)

// Banner messages, one per operation.
const (
	MsgLoadFailed   = "Failed to load tasks."
	MsgCreateFailed = "Failed to create task."
	MsgUpdateFailed = "Failed to update task."
	MsgToggleFailed = "Failed to change task status."
	MsgDeleteFailed = "Failed to delete task."
	MsgFetchFailed  = "Failed to fetch task."
)

// OpError is the result of a failed operation: the banner text plus its cause.
type OpError struct {
	Op      string
	Message string
	Err     error
}

func (e *OpError) Error() string {
	return e.Message + " (" + e.Err.Error() + ")"
}

func (e *OpError) Unwrap() error { return e.Err }

// Controller is the application state container.
// Store calls run without the lock held, so concurrent operations are
// independent and their responses are applied in completion order.
type Controller struct {
	store  service.Store
	logger *log.Logger

	mu       sync.RWMutex
	tasks    []service.Task
	loading  bool
	banner   *OpError
	editing  *service.Task
	formOpen bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for failed operations.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New creates a Controller with an empty list.
func New(store service.Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		logger: logging.Discard(),
		tasks:  []service.Task{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fail records err in the banner slot and returns it as an *OpError.
func (c *Controller) fail(op, msg string, err error) *OpError {
	opErr := &OpError{Op: op, Message: msg, Err: err}
	c.logger.Warn("operation failed", "op", op, "err", err)
	c.mu.Lock()
	c.banner = opErr
	c.mu.Unlock()
	return opErr
}

func (c *Controller) clearError() {
	c.mu.Lock()
	c.banner = nil
	c.mu.Unlock()
}

// Load fetches the full list and replaces the canonical list on success.
// On failure the previous list stays in place.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.banner = nil
	c.mu.Unlock()

	tasks, err := c.store.List(ctx)

	c.mu.Lock()
	c.loading = false
	if err == nil {
		c.tasks = dedupe(tasks)
	}
	c.mu.Unlock()

	if err != nil {
		return c.fail("load", MsgLoadFailed, err)
	}
	return nil
}

// Create creates a task and prepends the server's copy to the list.
func (c *Controller) Create(ctx context.Context, draft service.NewTask) (service.Task, error) {
	c.clearError()

	created, err := c.store.Create(ctx, draft)
	if err != nil {
		return service.Task{}, c.fail("create", MsgCreateFailed, err)
	}

	c.mu.Lock()
	c.tasks = prepend(c.tasks, created)
	c.formOpen = false
	c.mu.Unlock()
	return created, nil
}

// Update sends patch and replaces the matching entry with the server's copy.
// On success the form closes and edit mode ends.
func (c *Controller) Update(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	c.clearError()

	updated, err := c.store.Update(ctx, id, patch)
	if err != nil {
		return service.Task{}, c.fail("update", MsgUpdateFailed, err)
	}

	c.mu.Lock()
	c.replace(id, updated)
	c.editing = nil
	c.formOpen = false
	c.mu.Unlock()
	return updated, nil
}

// Toggle sets the completion flag through the update pipeline. The list
// takes the server's returned task, not the locally sent flag.
// Form and edit state are left alone.
func (c *Controller) Toggle(ctx context.Context, id string, completed bool) error {
	c.clearError()

	updated, err := c.store.Update(ctx, id, service.CompletedPatch(completed))
	if err != nil {
		return c.fail("toggle", MsgToggleFailed, err)
	}

	c.mu.Lock()
	c.replace(id, updated)
	c.mu.Unlock()
	return nil
}

// Delete removes a task after the server confirms.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.clearError()

	if err := c.store.Delete(ctx, id); err != nil {
		return c.fail("delete", MsgDeleteFailed, err)
	}

	c.mu.Lock()
	for i, t := range c.tasks {
		if t.ID == id {
			c.tasks = append(c.tasks[:i:i], c.tasks[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// Refresh re-fetches one task and replaces it in the list if present.
func (c *Controller) Refresh(ctx context.Context, id string) (service.Task, error) {
	c.clearError()

	task, err := c.store.Get(ctx, id)
	if err != nil {
		return service.Task{}, c.fail("fetch", MsgFetchFailed, err)
	}

	c.mu.Lock()
	c.replace(id, task)
	c.mu.Unlock()
	return task, nil
}

// Submit is the form's submit callback: it updates the task being edited,
// or creates a new one.
func (c *Controller) Submit(ctx context.Context, draft service.NewTask) error {
	c.mu.RLock()
	editing := c.editing
	c.mu.RUnlock()

	if editing != nil {
		_, err := c.Update(ctx, editing.ID, service.PatchFromDraft(draft))
		return err
	}
	_, err := c.Create(ctx, draft)
	return err
}

// Edit enters edit mode for task and opens the form.
func (c *Controller) Edit(task service.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := task
	c.editing = &t
	c.formOpen = true
}

// OpenForm opens the form for a new task.
func (c *Controller) OpenForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
	c.formOpen = true
}

// CloseForm closes the form and leaves edit mode.
func (c *Controller) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
	c.formOpen = false
}

// DismissError clears the banner without touching data.
func (c *Controller) DismissError() {
	c.clearError()
}

// Tasks returns a copy of the canonical list.
func (c *Controller) Tasks() []service.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]service.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// View partitions the current list for display.
func (c *Controller) View() partition.View {
	return partition.Partition(c.Tasks())
}

// Find returns the task with id from the canonical list.
func (c *Controller) Find(id string) (service.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Loading reports whether a Load is in flight.
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the banner, or nil.
func (c *Controller) Err() *OpError {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.banner
}

// Editing returns the task being edited, if any.
func (c *Controller) Editing() (service.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.editing == nil {
		return service.Task{}, false
	}
	return *c.editing, true
}

// FormOpen reports whether the create/edit form is shown.
func (c *Controller) FormOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.formOpen
}

// Editable reports whether task may be opened in the edit form.
// Completed tasks are read-only until un-completed.
func Editable(task service.Task) bool {
	return !task.Completed
}

// replace swaps the entry with id for task. Caller holds mu.
func (c *Controller) replace(id string, task service.Task) {
	for i, t := range c.tasks {
		if t.ID == id {
			c.tasks[i] = task
			return
		}
	}
}

// prepend puts task at the front, dropping any stale entry with the same id.
func prepend(tasks []service.Task, task service.Task) []service.Task {
	out := make([]service.Task, 0, len(tasks)+1)
	out = append(out, task)
	for _, t := range tasks {
		if t.ID != task.ID {
			out = append(out, t)
		}
	}
	return out
}

// dedupe keeps the first occurrence of each id.
func dedupe(tasks []service.Task) []service.Task {
	seen := make(map[string]struct{}, len(tasks))
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}
