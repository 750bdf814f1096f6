// Package errors defines the application error taxonomy shared by the
// synchronization engine and the remote store client.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an error for reporting and metrics.
type ErrorType string

const (
	// ErrorTypeValidation marks a locally rejected operation. No state
	// changed and nothing was sent to the remote store.
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound marks a missing entity, local or remote.
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeNetwork marks a transport failure reaching the remote store.
	ErrorTypeNetwork ErrorType = "NETWORK"

	// ErrorTypeExternal marks a non-success response from the remote store.
	ErrorTypeExternal ErrorType = "EXTERNAL"

	// ErrorTypeInternal marks a bug or invariant violation in the engine.
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError is the error type produced by this module.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a validation error.
func NewValidationError(format string, args ...interface{}) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a not-found error for the named resource.
func NewNotFoundError(resource string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// NewNetworkError creates a transport-level error.
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeNetwork, Message: message, Cause: cause}
}

// NewExternalError creates an error for a rejected remote call.
func NewExternalError(message string) *AppError {
	return &AppError{Type: ErrorTypeExternal, Message: message}
}

// NewInternalError creates an internal engine error.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Cause: cause}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return IsType(err, ErrorTypeValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return IsType(err, ErrorTypeNotFound) }
