// Package apperr holds the domain errors that handlers translate into HTTP
// responses. Validation failures live in package validation.
package apperr

import "errors"

// ErrNotFound means the addressed record does not exist.
var ErrNotFound = errors.New("not found")

// ConflictError reports a uniqueness violation. Message is safe to show to clients.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Conflict returns a *ConflictError with msg.
func Conflict(msg string) error { return &ConflictError{Message: msg} }

// IsConflict reports whether err wraps a *ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
