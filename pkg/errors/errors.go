// Package errors provides structured error types for Bluefish.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND / DUPLICATE_ID: Registry lookups
//   - OWNERSHIP_CONFLICT, REFERENCE_CYCLE, NON_CONVERGENT: Geometry engine
//   - INTERNAL_*: Unexpected internal errors
//
// Ownership conflicts and invalid numbers are "soft" errors: the scenegraph
// rejects the write and reports it, and layout operators are expected to carry
// on. Reference cycles and structural errors are configuration mistakes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOwnershipConflict, "%s is owned by %s", field, owner)
//	if errors.Is(err, errors.ErrCodeOwnershipConflict) {
//	    // negotiation, not failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidDocument  Code = "INVALID_DOCUMENT"
	ErrCodeInvalidElementID Code = "INVALID_ELEMENT_ID"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidNumber    Code = "INVALID_NUMBER"

	// Registry errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeDuplicateID      Code = "DUPLICATE_ID"
	ErrCodeInvalidStructure Code = "INVALID_STRUCTURE"

	// Geometry engine errors
	ErrCodeOwnershipConflict Code = "OWNERSHIP_CONFLICT"
	ErrCodeReferenceCycle    Code = "REFERENCE_CYCLE"
	ErrCodeNonConvergent     Code = "NON_CONVERGENT"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error code onto the HTTP status the API answers with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidDocument,
		ErrCodeInvalidElementID, ErrCodeInvalidNumber, ErrCodeDuplicateID,
		ErrCodeInvalidStructure, ErrCodeReferenceCycle:
		return 400
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return 404
	case ErrCodeNonConvergent:
		return 422
	case ErrCodeUnsupported:
		return 501
	case ErrCodeTimeout:
		return 504
	default:
		return 500
	}
}
