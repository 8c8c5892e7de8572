package errors

import (
	"fmt"
	"unicode/utf8"
)

// Configuration Errors
func ConfigNotFound(path string) *DashError {
	return NewWithDetails(ErrConfigNotFound, "Configuration file not found", fmt.Sprintf("Path: %s", path))
}

func ConfigParseError(path string, cause error) *DashError {
	return WrapWithDetails(ErrConfigParse, "Failed to parse configuration", fmt.Sprintf("Path: %s", path), cause)
}

func ConfigValidationError(field, reason string) *DashError {
	return NewWithDetails(ErrConfigValidation, "Configuration validation failed",
		fmt.Sprintf("Field: %s, Reason: %s", field, reason))
}

// Backend Errors
func BackendUnreachable(service string, cause error) *DashError {
	return WrapWithDetails(ErrNetworkConnection, "Backend unreachable",
		fmt.Sprintf("Service: %s", service), cause)
}

func BackendStatus(service string, status int, body string) *DashError {
	code := ErrAPICall
	switch status {
	case 401, 403:
		code = ErrUnauthorized
	case 404:
		code = ErrNotFound
	}
	return NewWithDetails(code, fmt.Sprintf("Backend returned status %d", status),
		fmt.Sprintf("Service: %s, Body: %s", service, truncate(body, 200)))
}

func BackendDecode(service string, cause error) *DashError {
	return WrapWithDetails(ErrJSONUnmarshal, "Failed to decode backend response",
		fmt.Sprintf("Service: %s", service), cause)
}

// Validation Errors
func InvalidInput(field, reason string) *DashError {
	return NewWithDetails(ErrInvalidInput, "Invalid input", fmt.Sprintf("Field: %s, Reason: %s", field, reason))
}

// Database Errors
func DatabaseQuery(op string, cause error) *DashError {
	return WrapWithDetails(ErrDatabaseQuery, "Database query failed", fmt.Sprintf("Operation: %s", op), cause)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
