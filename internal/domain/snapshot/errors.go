package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrSnapshotNotFound indicates the snapshot doesn't exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrInvalidInput indicates invalid snapshot input.
	ErrInvalidInput = errors.New("invalid snapshot input")
)

// ValidationError describes which field was rejected and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalidStatusError() error {
	return &ValidationError{Field: "status", Message: "Invalid status. Must be one of: active, paused, complete"}
}
