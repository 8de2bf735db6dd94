package api

import (
	"encoding/json"
	"net/http"

	"github.com/maksimkurb/hostfile/src/internal/errors"
	"github.com/maksimkurb/hostfile/src/internal/log"
)

// ErrorCode represents standard API error codes.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates malformed or invalid request data.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeForbidden indicates the client is not allowed to use the API.
	ErrCodeForbidden ErrorCode = "forbidden"

	// ErrCodeRateLimited indicates the client sent too many requests.
	ErrCodeRateLimited ErrorCode = "rate_limited"

	// ErrCodeReadFailed indicates the hosts file could not be read.
	ErrCodeReadFailed ErrorCode = "read_failed"

	// ErrCodeWriteFailed indicates the hosts file could not be written.
	ErrCodeWriteFailed ErrorCode = "write_failed"

	// ErrCodeInternalError indicates an internal server error.
	ErrCodeInternalError ErrorCode = "internal_error"
)

// APIError represents a structured API error response.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResponse wraps an APIError for JSON responses.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code ErrorCode, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, statusCode int, err APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if encErr := json.NewEncoder(w).Encode(ErrorResponse{Error: err}); encErr != nil {
		log.Debugf("Failed to encode error response: %v", encErr)
	}
}

// WriteInvalidRequest writes a 400 Bad Request error.
func WriteInvalidRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeInvalidRequest, message))
}

// WriteForbidden writes a 403 Forbidden error.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// WriteTooManyRequests writes a 429 Too Many Requests error.
func WriteTooManyRequests(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, NewAPIError(ErrCodeRateLimited, message))
}

// WriteInternalError writes a 500 Internal Server Error.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// WriteDomainError maps an error from the hostsfile layer to a response.
// Invalid requests are the client's fault; everything else is a 500.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch errors.CodeOf(err) {
	case errors.ErrCodeInvalidRequest:
		WriteInvalidRequest(w, err.Error())
	case errors.ErrCodeRead:
		WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeReadFailed, err.Error()))
	case errors.ErrCodeWrite:
		WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeWriteFailed, err.Error()))
	default:
		WriteInternalError(w, err.Error())
	}
}
