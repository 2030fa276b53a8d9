// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"todoctl/internal/service"
)

// FakeTimestamp is the timestamp stamped on tasks by FakeStore.
const FakeTimestamp = "2024-05-01T09:30:00"

// FakeStore is an in-memory implementation of service.Store for testing.
type FakeStore struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int

	// Calls counts invocations per method name.
	Calls map[string]int

	// Error injection for testing
	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		nextID: 1,
		Calls:  make(map[string]int),
	}
}

// AddTask appends a task to the store and returns it.
func (f *FakeStore) AddTask(id, title string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := service.Task{
		ID:        id,
		Title:     title,
		Completed: completed,
		CreatedAt: FakeTimestamp,
		UpdatedAt: FakeTimestamp,
	}
	f.tasks = append(f.tasks, task)
	return task
}

// Tasks returns a copy of the stored tasks.
func (f *FakeStore) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// CallCount returns how many times method was invoked.
func (f *FakeStore) CallCount(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.Calls[method]
}

func (f *FakeStore) record(method string) {
	f.mu.Lock()
	f.Calls[method]++
	f.mu.Unlock()
}

// List implements service.Store.
func (f *FakeStore) List(ctx context.Context) ([]service.Task, error) {
	f.record("List")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Tasks(), nil
}

// Get implements service.Store.
func (f *FakeStore) Get(ctx context.Context, id string) (service.Task, error) {
	f.record("Get")
	if f.GetErr != nil {
		return service.Task{}, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, fmt.Errorf("task %s: %w", id, service.ErrNotFound)
}

// Create implements service.Store. New tasks are appended, as the server does.
func (f *FakeStore) Create(ctx context.Context, task service.NewTask) (service.Task, error) {
	f.record("Create")
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if strings.TrimSpace(task.Title) == "" {
		return service.Task{}, fmt.Errorf("title is required")
	}
	// Like the server, creation ignores Completed; new tasks start active.
	created := service.Task{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		Title:       strings.TrimSpace(task.Title),
		Description: task.Description,
		CreatedAt:   FakeTimestamp,
		UpdatedAt:   FakeTimestamp,
	}
	f.nextID++
	f.tasks = append(f.tasks, created)
	return created, nil
}

// Update implements service.Store.
func (f *FakeStore) Update(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	f.record("Update")
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID != id {
			continue
		}
		if patch.Title != nil {
			t.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		t.UpdatedAt = "2024-05-02T10:00:00"
		f.tasks[i] = t
		return t, nil
	}
	return service.Task{}, fmt.Errorf("task %s: %w", id, service.ErrNotFound)
}

// Delete implements service.Store.
func (f *FakeStore) Delete(ctx context.Context, id string) error {
	f.record("Delete")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task %s: %w", id, service.ErrNotFound)
}
