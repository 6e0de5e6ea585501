// Package apperr defines the error kinds the API distinguishes.
// Services wrap causes with one of the sentinels so handlers can map
// them to HTTP statuses with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks missing or malformed identifiers and
	// pagination values (client error).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a referenced user or video that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks a backing-store failure, timeout, or operation
	// error. Not retried automatically.
	ErrStorage = errors.New("storage failure")
)

// InvalidArgumentf returns an ErrInvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFoundf returns an ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Storagef wraps a store-level cause as an ErrStorage, preserving the
// cause text for logs.
func Storagef(op string, cause error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStorage, cause)
}
