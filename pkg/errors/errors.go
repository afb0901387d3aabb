// Package errors provides structured error types for eventlayout.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// Layout findings (gaps, overlaps, truncation) are not errors in this sense;
// they are reported by pkg/layout. This package covers structural failures:
// unreadable input, missing sheets, unknown sessions, I/O problems.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSheetNotFound, "sheet %q not found", name)
//	if errors.Is(err, errors.ErrCodeSheetNotFound) {
//	    // Handle missing sheet
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSheetNotFound   Code = "SHEET_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Layout refused by a caller that requires a clean validation
	ErrCodeLayoutInvalid Code = "LAYOUT_INVALID"

	// Environment errors
	ErrCodeIO       Code = "IO_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// UserMessage returns err without code prefixes: the message of each *Error
// in the chain followed by the text of the first plain cause, e.g.
// "write out.xml: permission denied".
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// LayoutError reports a layout refused because validation found problems.
type LayoutError struct {
	Errors   int
	Warnings int
}

// Error implements the error interface.
func (e *LayoutError) Error() string {
	if e.Errors > 0 {
		return fmt.Sprintf("layout has %d error(s) and %d warning(s)", e.Errors, e.Warnings)
	}
	return fmt.Sprintf("layout has %d warning(s)", e.Warnings)
}

// Code returns the error code for this error type.
func (e *LayoutError) Code() Code {
	return ErrCodeLayoutInvalid
}
