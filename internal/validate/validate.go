// Package validate holds the field rules for task input.
package validate

import (
	"strings"
	"unicode/utf8"
)

// Field names understood by Field.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
)

// Length limits, counted in runes after trimming.
const (
	TitleMinLen       = 2
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// Messages returned by the rules.
const (
	MsgTitleRequired   = "Title is required"
	MsgTitleTooShort   = "Title must be at least 2 characters"
	MsgTitleTooLong    = "Title must be at most 100 characters"
	MsgDescriptionLong = "Description must be at most 500 characters"
)

// Title returns an error message for value, or "" if it is a valid title.
func Title(value string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	switch {
	case n == 0:
		return MsgTitleRequired
	case n < TitleMinLen:
		return MsgTitleTooShort
	case n > TitleMaxLen:
		return MsgTitleTooLong
	}
	return ""
}

// Description returns an error message for value, or "" if it is valid.
// An empty description is always valid.
func Description(value string) string {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > DescriptionMaxLen {
		return MsgDescriptionLong
	}
	return ""
}

// Field validates value as the named field. Unknown fields are always valid.
func Field(name, value string) string {
	switch name {
	case FieldTitle:
		return Title(value)
	case FieldDescription:
		return Description(value)
	}
	return ""
}
