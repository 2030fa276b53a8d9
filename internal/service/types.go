// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"strings"
	"time"
)

// Task represents a single task as returned by the remote store.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"` // ISO 8601, kept as sent by the server
	UpdatedAt   string `json:"updated_at"`
}

// NewTask is the body of a create request.
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskPatch is the body of an update request. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// PatchFromDraft builds a patch that overwrites every editable field.
func PatchFromDraft(draft NewTask) TaskPatch {
	title := draft.Title
	desc := draft.Description
	completed := draft.Completed
	return TaskPatch{Title: &title, Description: &desc, Completed: &completed}
}

// CompletedPatch builds a patch that only sets the completion flag.
func CompletedPatch(completed bool) TaskPatch {
	return TaskPatch{Completed: &completed}
}

// timestamp layouts accepted by Created and Updated.
// Servers commonly emit naive local timestamps without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Created parses CreatedAt. ok is false if the value is empty or malformed.
func (t Task) Created() (time.Time, bool) {
	return parseTimestamp(t.CreatedAt)
}

// Updated parses UpdatedAt. ok is false if the value is empty or malformed.
func (t Task) Updated() (time.Time, bool) {
	return parseTimestamp(t.UpdatedAt)
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
