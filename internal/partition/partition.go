// Package partition splits the task list into display sections and summary counts.
package partition

import (
	"math"

	"todoctl/internal/service"
)

// View is the display-oriented projection of a task list.
type View struct {
	Active    []service.Task
	Completed []service.Task

	Total          int
	ActiveCount    int
	CompletedCount int

	// Progress is the completed share in whole percent, 0 for an empty list.
	Progress int

	// HasProgress is false for an empty list, where no percentage is shown.
	HasProgress bool
}

// Partition splits tasks into active and completed sections, preserving
// relative order.
func Partition(tasks []service.Task) View {
	v := View{
		Active:    make([]service.Task, 0, len(tasks)),
		Completed: make([]service.Task, 0),
		Total:     len(tasks),
	}
	for _, t := range tasks {
		if t.Completed {
			v.Completed = append(v.Completed, t)
		} else {
			v.Active = append(v.Active, t)
		}
	}
	v.ActiveCount = len(v.Active)
	v.CompletedCount = len(v.Completed)
	if v.Total > 0 {
		v.HasProgress = true
		v.Progress = int(math.Round(float64(v.CompletedCount) / float64(v.Total) * 100))
	}
	return v
}

// Ordered returns the tasks in display order: active first, then completed.
func (v View) Ordered() []service.Task {
	out := make([]service.Task, 0, v.Total)
	out = append(out, v.Active...)
	return append(out, v.Completed...)
}

// ActiveAt returns the nth (1-based) active task.
func (v View) ActiveAt(n int) (service.Task, bool) {
	if n < 1 || n > len(v.Active) {
		return service.Task{}, false
	}
	return v.Active[n-1], true
}

// CompletedAt returns the nth (1-based) completed task.
func (v View) CompletedAt(n int) (service.Task, bool) {
	if n < 1 || n > len(v.Completed) {
		return service.Task{}, false
	}
	return v.Completed[n-1], true
}
