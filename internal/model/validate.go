package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	FieldTitle    = "title"
	FieldSubtitle = "subtitle"

	// MinFieldLength is the shortest title or subtitle a new record accepts.
	MinFieldLength = 3
)

// Inline messages shown by the forms.
const (
	MsgTooShort = "Title and/or Subtitle must be at least 3 characters."
	MsgBlank    = "Title and Subtitle cannot be blank."
)

// ValidateNew applies the create rule: both fields need at least
// MinFieldLength characters. Whitespace counts.
func ValidateNew(title, subtitle string) error {
	var fields []FieldError
	if utf8.RuneCountInString(title) < MinFieldLength {
		fields = append(fields, FieldError{Field: FieldTitle, Reason: "must be at least 3 characters"})
	}
	if utf8.RuneCountInString(subtitle) < MinFieldLength {
		fields = append(fields, FieldError{Field: FieldSubtitle, Reason: "must be at least 3 characters"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateEdit applies the looser edit rule: both fields must be non-blank.
func ValidateEdit(title, subtitle string) error {
	var fields []FieldError
	if strings.TrimSpace(title) == "" {
		fields = append(fields, FieldError{Field: FieldTitle, Reason: "cannot be blank"})
	}
	if strings.TrimSpace(subtitle) == "" {
		fields = append(fields, FieldError{Field: FieldSubtitle, Reason: "cannot be blank"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Message returns the inline form message for a validation failure,
// or the error text for anything else.
func Message(err error) string {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for _, f := range ve.Fields {
		if strings.HasPrefix(f.Reason, "must be at least") {
			return MsgTooShort
		}
	}
	return MsgBlank
}
