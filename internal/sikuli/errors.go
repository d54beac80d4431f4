package sikuli

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionClosed is returned by every operation after Close.
	ErrSessionClosed = errors.New("session closed")

	// ErrCommandFailed is the sentinel wrapped by CommandFailedError.
	ErrCommandFailed = errors.New("command failed")
)

// ValidationError reports a descriptor or argument that failed local
// validation. No script text is built when it is returned.
type ValidationError struct {
	Descriptor string // e.g. "pattern", "region", "timeout"
	Field      string
	Reason     string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", e.Descriptor, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s: %s", e.Descriptor, e.Field, e.Reason)
}

func newValidationError(descriptor, field, reason string) error {
	return &ValidationError{Descriptor: descriptor, Field: field, Reason: reason}
}

// CommandFailedError means the interpreter never printed the return marker
// for a submitted line, usually because the line raised.
type CommandFailedError struct {
	Command     string // action name, e.g. "find"
	Script      string // submitted script line
	Response    string // raw interpreter output
	Interpreter string // first "[Error]" line, if any
	Reason      string
}

// Error implements the error interface.
func (e *CommandFailedError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Command, ErrCommandFailed)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Interpreter != "" {
		msg += ": " + e.Interpreter
	}
	return msg
}

// Unwrap lets errors.Is match ErrCommandFailed.
func (e *CommandFailedError) Unwrap() error {
	return ErrCommandFailed
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
