// Package errors provides structured error types for matrixrain.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the pipeline and line sources
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input and configuration validation failures
//   - *_NOT_FOUND: Missing files
//   - PROCESS_FAILED, TERMINAL: Failures of external collaborators
//   - TICK_FAILED, INTERNAL_*: Failures inside the engine
//
// The rain engine itself never returns TICK_FAILED to a caller; a failed
// tick is reported to the registered observability hooks and dropped.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeFileNotFound, "script not found: %s", path)
//	if errors.Is(err, errors.ErrCodeFileNotFound) {
//	    // Handle missing script
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeProcessFailed, exitErr, "script %s failed", path)
package errors

import (
	"errors"
	"fmt"
	"os/exec"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Collaborator errors
	ErrCodeProcessFailed Code = "PROCESS_FAILED"
	ErrCodeTerminal      Code = "TERMINAL"

	// Internal errors
	ErrCodeTickFailed  Code = "TICK_FAILED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ExitCode returns the exit status of a failed child process found in err's
// chain, or -1 if there is none.
func ExitCode(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
