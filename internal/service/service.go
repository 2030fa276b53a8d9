// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is matched (via errors.Is) by store errors for unknown task ids.
var ErrNotFound = errors.New("not found")

// Store defines the interface for remote task storage.
// All REST calls go through this interface.
// Commands and the UI never talk HTTP directly.
type Store interface {
	// List returns every task in server order.
	List(ctx context.Context) ([]Task, error)

	// Get returns a single task by id.
	Get(ctx context.Context, id string) (Task, error)

	// Create creates a task and returns it with server-assigned id and timestamps.
	Create(ctx context.Context, task NewTask) (Task, error)

	// Update applies patch to the task and returns the server's copy.
	Update(ctx context.Context, id string, patch TaskPatch) (Task, error)

	// Delete removes a task.
	Delete(ctx context.Context, id string) error
}
