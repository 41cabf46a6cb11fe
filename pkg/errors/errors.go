// Package errors provides structured error types for assetgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the core, CLI and HTTP host
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The core raises five domain codes, each detected at the boundary of the
// function that first sees the bad input:
//   - GRAPH_CAPABILITY: the graph value cannot serve the required accessors
//   - UNKNOWN_ASSET: an id does not reference an asset of the graph
//   - DUPLICATE_ASSET: an asset id is added twice
//   - VALIDATION: malformed positions, ids, colors, hover texts or filters
//   - UNSUPPORTED_LAYOUT: the layout name is not registered
//
// # Usage
//
//	err := errors.UnknownAsset("AAPL")
//	if errors.Is(err, errors.ErrCodeUnknownAsset) {
//	    // Handle missing asset
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Domain errors raised by the core
	ErrCodeGraphCapability   Code = "GRAPH_CAPABILITY"
	ErrCodeUnknownAsset      Code = "UNKNOWN_ASSET"
	ErrCodeDuplicateAsset    Code = "DUPLICATE_ASSET"
	ErrCodeValidation        Code = "VALIDATION"
	ErrCodeUnsupportedLayout Code = "UNSUPPORTED_LAYOUT"

	// Shell errors (CLI, HTTP host, pipeline)
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
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

// GraphCapability reports a graph value that cannot serve the relationship
// accessors the core needs (typically a nil graph).
func GraphCapability(format string, args ...any) *Error {
	return New(ErrCodeGraphCapability, format, args...)
}

// UnknownAsset reports an id that does not exist in the graph.
func UnknownAsset(id string) *Error {
	return New(ErrCodeUnknownAsset, "unknown asset %q", id)
}

// DuplicateAsset reports an asset id that is already present.
func DuplicateAsset(id string) *Error {
	return New(ErrCodeDuplicateAsset, "duplicate asset %q", id)
}

// UnsupportedLayout reports a layout name outside the supported set.
func UnsupportedLayout(name string, supported []string) *Error {
	return New(ErrCodeUnsupportedLayout, "unsupported layout %q (must be one of: %s)",
		name, strings.Join(supported, ", "))
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or *ValidationError with a
// matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For coded errors, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.message()
	}
	return err.Error()
}
