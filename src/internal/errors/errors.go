// Package errors provides domain-specific error types for hostfile.
//
// Errors carry a code so callers (the CLI, the REST API) can map them to
// exit messages and HTTP statuses without string matching.
package errors

import "fmt"

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeRead indicates the hosts file could not be read.
	ErrCodeRead ErrorCode = "READ_ERROR"

	// ErrCodeWrite indicates the hosts file could not be written.
	ErrCodeWrite ErrorCode = "WRITE_ERROR"

	// ErrCodeInvalidRequest indicates a caller supplied a malformed assignment or removal.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeWatch indicates the file watcher failed.
	ErrCodeWatch ErrorCode = "WATCH_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks. Matching is by code only.
var (
	ErrRead           = New(ErrCodeRead, "read failure")
	ErrWrite          = New(ErrCodeWrite, "write failure")
	ErrInvalidRequest = New(ErrCodeInvalidRequest, "invalid request")
	ErrConfig         = New(ErrCodeConfig, "configuration error")
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ErrCodeInternal
}

// NewReadError creates a new hosts file read error.
func NewReadError(message string, cause error) *Error {
	return Wrap(ErrCodeRead, message, cause)
}

// NewWriteError creates a new hosts file write error.
func NewWriteError(message string, cause error) *Error {
	return Wrap(ErrCodeWrite, message, cause)
}

// NewInvalidRequestError creates a new invalid request error.
func NewInvalidRequestError(message string, cause error) *Error {
	return Wrap(ErrCodeInvalidRequest, message, cause)
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewWatchError creates a new file watcher error.
func NewWatchError(message string, cause error) *Error {
	return Wrap(ErrCodeWatch, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
