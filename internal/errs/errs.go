// Package errs defines the error kinds shared by the profile store,
// the synchronizer and the live-config reader.
//
// Every error returned by those packages wraps exactly one of the kinds
// below, so callers can branch with errors.Is while still getting a
// descriptive message (and the OS-level cause, for I/O failures).
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a profile id or record is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned for malformed ids and documents of the wrong shape.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrParse is returned when a structured or secret document cannot be parsed.
	ErrParse = errors.New("parse error")
	// ErrIO is returned when a create/read/write/rename fails.
	ErrIO = errors.New("io error")
)

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// InvalidArgument wraps ErrInvalidArgument with a formatted message.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Parse wraps ErrParse, keeping the decoder's error as the cause.
func Parse(what string, cause error) error {
	return fmt.Errorf("%w: failed to parse %s: %w", ErrParse, what, cause)
}

// IO wraps ErrIO, keeping the OS error as the cause.
func IO(op string, cause error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrIO, op, cause)
}
