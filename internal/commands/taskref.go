package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"todoctl/internal/partition"
	"todoctl/internal/service"
)

// RefKind says which part of the list a TaskRef points into.
type RefKind int

const (
	// RefActive is a 1-based position among active tasks ("3").
	RefActive RefKind = iota
	// RefCompleted is a 1-based position among completed tasks ("c2").
	RefCompleted
	// RefID is a task id or a unique id prefix.
	RefID
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Kind RefKind
	Num  int    // 1-based position, for RefActive and RefCompleted
	ID   string // for RefID
	Raw  string
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. All digits → Nth active task
// 2. "c" followed by digits → Nth completed task
// 3. Anything else non-blank → task id or id prefix
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	raw := strings.TrimSpace(args[0])

	if isAllDigits(raw) {
		num, err := strconv.Atoi(raw)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", raw)
		}
		return TaskRef{Kind: RefActive, Num: num, Raw: raw}, nil
	}

	if len(raw) > 1 && raw[0] == 'c' && isAllDigits(raw[1:]) {
		num, err := strconv.Atoi(raw[1:])
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", raw)
		}
		return TaskRef{Kind: RefCompleted, Num: num, Raw: raw}, nil
	}

	return TaskRef{Kind: RefID, ID: raw, Raw: raw}, nil
}

// Resolve finds the task ref points at in v.
func (ref TaskRef) Resolve(v partition.View) (service.Task, error) {
	switch ref.Kind {
	case RefActive:
		if t, ok := v.ActiveAt(ref.Num); ok {
			return t, nil
		}
		return service.Task{}, fmt.Errorf("task number out of range: %s", ref.Raw)
	case RefCompleted:
		if t, ok := v.CompletedAt(ref.Num); ok {
			return t, nil
		}
		return service.Task{}, fmt.Errorf("task number out of range: %s", ref.Raw)
	}
	return findByID(v.Ordered(), ref.ID)
}

// findByID matches an exact id first, then a unique id prefix.
func findByID(tasks []service.Task, id string) (service.Task, error) {
	var match []service.Task
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
		if strings.HasPrefix(t.ID, id) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return service.Task{}, fmt.Errorf("task not found: %s", id)
	case 1:
		return match[0], nil
	default:
		return service.Task{}, fmt.Errorf("ambiguous task id: %s", id)
	}
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
