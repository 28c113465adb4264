// Package apperror provides the error types handlers return. Each error
// carries an HTTP status code and a message that is safe to show to the
// client; the Echo error handler turns them into responses.
//
// Store and infrastructure errors never reach the client directly. Wrap them
// with NewInternal.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the base error type for request failures.
type AppError struct {
	// Code is the HTTP status code.
	Code int `json:"-"`

	// Type is a machine-readable classifier such as "not_found".
	Type string `json:"type"`

	// Message is safe to show to the client.
	Message string `json:"message"`

	// Internal is logged, never sent.
	Internal error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the internal error to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// NewNotFound creates a 404 error.
func NewNotFound(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Type: "not_found", Message: message}
}

// NewBadRequest creates a 400 error.
func NewBadRequest(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Type: "bad_request", Message: message}
}

// NewForbidden creates a 403 error.
func NewForbidden(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Type: "forbidden", Message: message}
}

// NewTooManyRequests creates a 429 error.
func NewTooManyRequests(message string) *AppError {
	return &AppError{Code: http.StatusTooManyRequests, Type: "rate_limited", Message: message}
}

var errMissingContext = errors.New("missing required context")

// NewMissingContext creates a 500 error for a handler whose dependencies
// were not wired.
func NewMissingContext() *AppError {
	return NewInternal(errMissingContext)
}

// NewInternal creates a 500 error. The client sees a generic message; err is
// kept for the log.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "internal_error",
		Message:  "An unexpected error occurred. Please try again.",
		Internal: err,
	}
}

// SafeMessage returns the client-safe message of err, or a generic message
// when err is not an AppError.
func SafeMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "an unexpected error occurred"
}

// SafeCode returns the status code of err, or 500 when err is not an
// AppError.
func SafeCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
