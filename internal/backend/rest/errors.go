package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"todoctl/internal/service"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int

	// Detail is the server's explanation, if the body carried one.
	Detail string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports 404 responses as service.ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == service.ErrNotFound && e.Code == http.StatusNotFound
}

// newStatusError extracts a FastAPI-style {"detail": ...} message if present.
func newStatusError(method, path string, code int, body []byte) *StatusError {
	e := &StatusError{Method: method, Path: path, Code: code}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			e.Detail = s
		} else {
			e.Detail = string(payload.Detail)
		}
		return e
	}

	e.Detail = truncate(strings.TrimSpace(string(body)), maxDetailRunes)
	return e
}

// maxDetailRunes bounds a plain-text detail taken from an error body.
const maxDetailRunes = 200

// truncate cuts s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
