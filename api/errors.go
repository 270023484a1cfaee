// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for ownkit.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrNotSupported    = fmt.Errorf("operation not supported")
	ErrNotFound        = fmt.Errorf("resource not found")
	ErrUnknownOp       = fmt.Errorf("unknown operation")
	ErrExpectation     = fmt.Errorf("expectation failed")
	ErrEmptyHandle     = fmt.Errorf("handle is empty")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeNotSupported
	ErrCodeNotFound
	ErrCodeExpectation
	ErrCodeInternal
)

// String returns the short name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeNotSupported:
		return "not_supported"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeExpectation:
		return "expectation"
	default:
		return "internal"
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel this error was built from, if any.
func (e *Error) Unwrap() error { return e.cause }

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap creates a structured error carrying cause for errors.Is checks.
func Wrap(code ErrorCode, cause error, message string) *Error {
	e := NewError(code, message)
	e.cause = cause
	return e
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
