package server

import (
	"net/http"
	"strings"

	"sandboxdash/internal/errors"
	"sandboxdash/internal/logger"
	"sandboxdash/internal/views"

	"github.com/labstack/echo/v4"
)

// wantsJSON reports whether errors on path are answered as JSON
func wantsJSON(path string) bool {
	return path == "/health" ||
		strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/swagger/") ||
		strings.HasPrefix(path, "/ws/")
}

// ErrorHandler answers JSON under /api and an HTML error page elsewhere
func ErrorHandler(err error, c echo.Context) {
	if _, isHTTP := err.(*echo.HTTPError); !isHTTP {
		if _, ok := errors.As(err); ok {
			err = errors.ToHTTPError(err)
		}
	}

	code := http.StatusInternalServerError
	var body interface{} = ErrorResponse{Error: "Internal server error"}
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
			body = ErrorResponse{Error: m}
		case errors.HTTPErrorResponse:
			message = m.Error.Message
			body = m
		default:
			message = http.StatusText(code)
			body = ErrorResponse{Error: message}
		}
	}

	reqID := c.Response().Header().Get(echo.HeaderXRequestID)
	logger.WithContext(c.Request().Context()).WithFields(logger.Fields{
		"method": c.Request().Method,
		"path":   c.Request().URL.Path,
		"status": code,
	}).WithError(err).Debug("Request error")

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	if wantsJSON(c.Request().URL.Path) {
		if r, ok := body.(ErrorResponse); ok {
			r.RequestID = reqID
			body = r
		}
		_ = c.JSON(code, body)
		return
	}

	page := views.ErrorPage{
		Page:    views.Page{Title: http.StatusText(code)},
		Status:  code,
		Message: message,
	}
	if rerr := c.Render(code, views.PageError, page); rerr != nil {
		_ = c.String(code, message)
	}
}
