package app

import (
	"errors"
	"strings"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError carries every message produced by a form validator so the
// page can show all of them at once.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func newValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// ValidationMessages returns the messages carried by err, or nil if err is
// not a validation failure.
func ValidationMessages(err error) []string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Messages
	}
	return nil
}
