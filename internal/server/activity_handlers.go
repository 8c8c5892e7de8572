package server

import (
	"net/http"
	"strconv"
	"time"

	"sandboxdash/internal/constants"
	"sandboxdash/internal/errors"
	"sandboxdash/internal/interfaces"
	"sandboxdash/internal/logger"
	"sandboxdash/internal/query"
	"sandboxdash/internal/views"

	"github.com/labstack/echo/v4"
)

// activityLimit reads ?limit=, falling back to the default and capping at the maximum
func activityLimit(c echo.Context) int {
	limit := constants.DefaultActivityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > constants.MaxActivityLimit {
		limit = constants.MaxActivityLimit
	}
	return limit
}

func (s *Server) handleActivityPage(c echo.Context) error {
	page := views.ActivityPage{
		Page:          newPage(c, "Clone Activity", views.NavActivity),
		Enabled:       s.clones != nil,
		Notifications: s.hub.Recent(),
	}

	if s.clones != nil {
		records, err := s.clones.ListRecent(c.Request().Context(), activityLimit(c))
		if err != nil {
			logger.GetLogger(c).WithError(err).Warn("Failed to load clone activity")
			page.Result = query.Failed[[]views.ActivityRow](err)
		} else {
			page.Result = query.Succeeded(views.NewActivityRows(records, time.Now()))
		}
	}

	return c.Render(http.StatusOK, views.PageActivity, page)
}

// handleListClones godoc
// @Summary List clone requests
// @Description List the clone requests issued from this dashboard, newest first
// @Tags vms
// @Produce json
// @Param limit query int false "Number of entries" default(50)
// @Success 200 {object} ClonesResponse
// @Failure 500 {object} errors.HTTPErrorResponse
// @Failure 503 {object} errors.HTTPErrorResponse
// @Router /api/clones [get]
func (s *Server) handleListClones(c echo.Context) error {
	if s.clones == nil {
		return errors.ServiceUnavailable("clone activity storage is disabled")
	}

	records, err := s.clones.ListRecent(c.Request().Context(), activityLimit(c))
	if err != nil {
		return errors.ToHTTPError(errors.DatabaseQuery("list clone requests", err))
	}
	if records == nil {
		records = []interfaces.CloneRecord{}
	}

	return c.JSON(http.StatusOK, ClonesResponse{
		Clones:   records,
		Total:    len(records),
		InFlight: s.tracker.InFlight(),
	})
}

// handleGetClone godoc
// @Summary Get a clone request
// @Description Return one recorded clone request by its id
// @Tags vms
// @Produce json
// @Param id path string true "Clone request ID"
// @Success 200 {object} interfaces.CloneRecord
// @Failure 404 {object} errors.HTTPErrorResponse
// @Failure 503 {object} errors.HTTPErrorResponse
// @Router /api/clones/{id} [get]
func (s *Server) handleGetClone(c echo.Context) error {
	if s.clones == nil {
		return errors.ServiceUnavailable("clone activity storage is disabled")
	}

	id := pathParam(c, "id")
	record, err := s.clones.Get(c.Request().Context(), id)
	if err != nil {
		if errors.HasCode(err, errors.ErrNotFound) {
			return errors.NotFound("clone request", id)
		}
		return errors.ToHTTPError(errors.DatabaseQuery("get clone request", err))
	}

	return c.JSON(http.StatusOK, record)
}
