package systemd

import (
	"fmt"
)

// Error represents an error from a systemd operation.
type Error struct {
	Op   string // The operation that failed (Start, Stop, Restart, etc.)
	Unit string // The name of the unit
	Err  error  // The underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("systemd %s failed for %s: %v", e.Op, e.Unit, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given details.
func NewError(op, unit string, err error) *Error {
	return &Error{Op: op, Unit: unit, Err: err}
}

// ConnectionError represents an error connecting to systemd.
type ConnectionError struct {
	UserMode bool  // Whether this was a user or system connection attempt
	Err      error // The underlying error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	mode := "system"
	if e.UserMode {
		mode = "user"
	}
	return fmt.Sprintf("failed to connect to systemd %s bus: %v", mode, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(userMode bool, err error) *ConnectionError {
	return &ConnectionError{UserMode: userMode, Err: err}
}

// IsConnectionError checks if an error is a ConnectionError.
func IsConnectionError(err error) bool {
	_, ok := err.(*ConnectionError)
	return ok
}

// IsError checks if an error is a systemd Error.
func IsError(err error) bool {
	_, ok := err.(*Error)
	return ok
}
