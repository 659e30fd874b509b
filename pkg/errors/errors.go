// Package errors provides structured error types for linebalance.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// Every error is terminal for the instance being evaluated. There is no retry
// or partial-failure recovery because the solver contends for no external
// resource.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCapacity, "cycle time must be positive, got %d", c)
//	if errors.Is(err, errors.ErrCodeInvalidCapacity) {
//	    // Handle capacity error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Instance errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidCapacity Code = "INVALID_CAPACITY"
	ErrCodeGraphCycle      Code = "GRAPH_CYCLE"
	ErrCodeInvalidName     Code = "INVALID_NAME"

	// Configuration errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsInstanceError reports whether err rejects the instance itself (malformed
// data, bad capacity or cyclic precedence) rather than the environment.
func IsInstanceError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidCapacity, ErrCodeGraphCycle, ErrCodeInvalidName:
		return true
	}
	return false
}

// CycleError describes a directed cycle found in a precedence relation.
// Tasks are 0-based and listed in traversal order; the last task precedes the first.
type CycleError struct {
	Tasks []int
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	path := ""
	for i, t := range e.Tasks {
		if i > 0 {
			path += " -> "
		}
		path += fmt.Sprintf("%d", t+1)
	}
	if len(e.Tasks) > 0 {
		path += fmt.Sprintf(" -> %d", e.Tasks[0]+1)
	}
	return "precedence cycle: " + path
}

// Code returns the error code for this error type.
func (e *CycleError) Code() Code {
	return ErrCodeGraphCycle
}
