package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorResponse represents the structure of error responses sent to clients
type HTTPErrorResponse struct {
	Error   ErrorInfo              `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ErrorInfo contains the core error information
type ErrorInfo struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// ToHTTPError converts an error to an Echo HTTP error
func ToHTTPError(err error) error {
	if de, ok := As(err); ok {
		details := de.Details
		if de.Cause != nil {
			if details != "" {
				details += ": "
			}
			details += de.Cause.Error()
		}
		return echo.NewHTTPError(de.GetHTTPStatus(), HTTPErrorResponse{
			Error: ErrorInfo{
				Code:    de.Code,
				Message: de.Message,
				Details: details,
			},
			Context: de.Context,
		}).SetInternal(err)
	}

	// For non-DashError, create a generic internal error
	return echo.NewHTTPError(http.StatusInternalServerError, HTTPErrorResponse{
		Error: ErrorInfo{
			Code:    ErrInternal,
			Message: "Internal server error",
			Details: err.Error(),
		},
	}).SetInternal(err)
}

// BadRequest creates a 400 Bad Request error
func BadRequest(message, details string) error {
	return echo.NewHTTPError(http.StatusBadRequest, HTTPErrorResponse{
		Error: ErrorInfo{
			Code:    ErrInvalidInput,
			Message: message,
			Details: details,
		},
	})
}

// NotFound creates a 404 Not Found error
func NotFound(resource, id string) error {
	return echo.NewHTTPError(http.StatusNotFound, HTTPErrorResponse{
		Error: ErrorInfo{
			Code:    ErrNotFound,
			Message: "Resource not found",
			Details: resource + " with ID '" + id + "' not found",
		},
	})
}

// ServiceUnavailable creates a 503 error for optional components that are switched off
func ServiceUnavailable(component string) error {
	return echo.NewHTTPError(http.StatusServiceUnavailable, HTTPErrorResponse{
		Error: ErrorInfo{
			Code:    ErrInternal,
			Message: "Component not available",
			Details: component,
		},
	})
}
