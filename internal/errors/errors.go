// Package errors provides typed error definitions for sandboxdash.
// Backend failures, configuration problems and bad input all surface as a
// DashError so the server and the CLI can classify them the same way.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique identifier for different error types
type ErrorCode string

const (
	// Configuration errors
	ErrConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigParse      ErrorCode = "CONFIG_PARSE"
	ErrConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Backend errors
	ErrNetworkConnection ErrorCode = "NETWORK_CONNECTION"
	ErrAPICall           ErrorCode = "API_CALL"
	ErrNotFound          ErrorCode = "NOT_FOUND"
	ErrUnauthorized      ErrorCode = "UNAUTHORIZED"

	// Database errors
	ErrDatabaseConnection ErrorCode = "DATABASE_CONNECTION"
	ErrDatabaseQuery      ErrorCode = "DATABASE_QUERY"
	ErrDatabaseMigration  ErrorCode = "DATABASE_MIGRATION"

	// Validation errors
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Internal errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrTimeout      ErrorCode = "TIMEOUT"
	ErrAlreadyInUse ErrorCode = "ALREADY_IN_USE"

	// JSON errors
	ErrJSONMarshal   ErrorCode = "JSON_MARSHAL"
	ErrJSONUnmarshal ErrorCode = "JSON_UNMARSHAL"
)

// DashError represents a structured error with additional context
type DashError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	Context    map[string]interface{} `json:"context,omitempty"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *DashError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error
func (e *DashError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DashError) WithContext(key string, value interface{}) *DashError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithStatus pins the HTTP status reported for this error
func (e *DashError) WithStatus(status int) *DashError {
	e.HTTPStatus = status
	return e
}

// GetHTTPStatus returns the appropriate HTTP status code for this error
func (e *DashError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}

	switch e.Code {
	case ErrConfigNotFound, ErrNotFound:
		return http.StatusNotFound
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrInvalidInput, ErrConfigValidation:
		return http.StatusBadRequest
	case ErrAlreadyInUse:
		return http.StatusConflict
	case ErrNetworkConnection, ErrAPICall, ErrJSONUnmarshal:
		return http.StatusBadGateway
	case ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new DashError
func New(code ErrorCode, message string) *DashError {
	return &DashError{
		Code:    code,
		Message: message,
	}
}

// NewWithDetails creates a new DashError with details
func NewWithDetails(code ErrorCode, message, details string) *DashError {
	return &DashError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Wrap creates a new DashError that wraps an existing error
func Wrap(code ErrorCode, message string, cause error) *DashError {
	return &DashError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetails creates a new DashError with details that wraps an existing error
func WrapWithDetails(code ErrorCode, message, details string, cause error) *DashError {
	return &DashError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// As finds the first DashError in err's chain
func As(err error) (*DashError, bool) {
	var de *DashError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// GetCode extracts the error code from an error, if it's a DashError
func GetCode(err error) ErrorCode {
	if de, ok := As(err); ok {
		return de.Code
	}
	return ""
}

// HasCode checks if an error has a specific error code
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
