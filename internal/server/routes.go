package server

import (
	"context"
	"net/http"
	"time"

	"sandboxdash/internal/constants"
	"sandboxdash/internal/errors"
	"sandboxdash/internal/logger"
	"sandboxdash/internal/types"
	"sandboxdash/internal/views"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/sync/errgroup"
)

// setupRoutes configures the pages, fragments and JSON API
func (s *Server) setupRoutes() {
	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Health check
	s.echo.GET("/health", s.handleHealth)

	// Embedded stylesheet and scripts
	s.echo.StaticFS("/static", views.Static())

	// Pages
	s.echo.GET("/", s.handleVMsPage)
	s.echo.POST("/vms/:uuid/clone", s.handleCloneForm)
	s.echo.GET("/tmux", s.handleSessionsPage)
	s.echo.GET("/tmux/:id", s.handleSessionDetailPage)
	s.echo.GET("/activity", s.handleActivityPage)

	// Fragments fetched by the page shells
	partials := s.echo.Group("/partials")
	partials.GET("/vms", s.handleVMTablePartial)
	partials.GET("/tmux", s.handleSessionTablePartial)
	partials.GET("/tmux/:id", s.handleSessionDetailPartial)

	// Notification stream
	s.echo.GET("/ws/notifications", s.handleNotificationsWebSocket)

	// API group
	api := s.echo.Group("/api")
	api.GET("/status", s.handleSystemStatus)

	vms := api.Group("/vms")
	vms.GET("", s.handleListVMs)
	vms.POST("/:uuid/clone", s.handleCloneVM)

	api.GET("/clones", s.handleListClones)
	api.GET("/clones/:id", s.handleGetClone)

	sessions := api.Group("/tmux/sessions")
	sessions.GET("", s.handleListSessions)
	sessions.GET("/:id", s.handleGetSession)
}

// handleHealth godoc
// @Summary Health check
// @Description Check if the dashboard is up. Does not contact the backends.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: constants.Version,
	})
}

// handleSystemStatus godoc
// @Summary Dashboard status
// @Description Probe every backend concurrently and report reachability
// @Tags system
// @Produce json
// @Success 200 {object} SystemStatusResponse
// @Router /api/status [get]
func (s *Server) handleSystemStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), constants.DefaultStatusProbeTimeout)
	defer cancel()

	results := make([]BackendHealth, len(s.probes))

	g, gctx := errgroup.WithContext(ctx)
	for i, probe := range s.probes {
		i, probe := i, probe
		g.Go(func() error {
			start := time.Now()
			err := probe.Target.Ping(gctx)

			health := BackendHealth{
				Name:      probe.Name,
				Status:    "healthy",
				LatencyMS: time.Since(start).Milliseconds(),
			}
			if err != nil {
				health.Status = "unreachable"
				health.Error = err.Error()
			}
			results[i] = health
			// a failed probe must not cancel the others
			return nil
		})
	}
	_ = g.Wait()

	overall := "healthy"
	for _, r := range results {
		if r.Status != "healthy" {
			overall = "degraded"
			break
		}
	}

	return c.JSON(http.StatusOK, SystemStatusResponse{
		Status:   overall,
		Version:  constants.Version,
		Uptime:   time.Since(s.startTime).Round(time.Second).String(),
		InFlight: s.tracker.InFlight(),
		Backends: results,
	})
}

// handleListVMs godoc
// @Summary List VMs
// @Description List the VMs known to the virsh sandbox backend
// @Tags vms
// @Produce json
// @Success 200 {object} VMsResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Failure 504 {object} errors.HTTPErrorResponse
// @Router /api/vms [get]
func (s *Server) handleListVMs(c echo.Context) error {
	vms, err := s.vms.ListVMs(c.Request().Context())
	if err != nil {
		return errors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, VMsResponse{
		VMs:   vms,
		Total: len(vms),
	})
}

// handleCloneVM godoc
// @Summary Clone a VM
// @Description Ask the virsh sandbox backend to clone the VM. The request runs in the background; its outcome is published on /ws/notifications and recorded in /api/clones.
// @Tags vms
// @Accept json
// @Produce json
// @Param uuid path string true "Source VM UUID"
// @Param request body CloneVMRequest false "Display name of the VM"
// @Success 202 {object} CloneAcceptedResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Router /api/vms/{uuid}/clone [post]
func (s *Server) handleCloneVM(c echo.Context) error {
	var req CloneVMRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest("Invalid request body", err.Error())
	}

	uuid := pathParam(c, "uuid")
	if err := s.tracker.Start(types.VM{UUID: uuid, Name: req.Name}); err != nil {
		return errors.ToHTTPError(err)
	}

	logger.GetLogger(c).WithField("vm_uuid", uuid).Info("Clone started via API")

	return c.JSON(http.StatusAccepted, CloneAcceptedResponse{
		Message: "Clone requested",
		UUID:    uuid,
		Status:  "cloning",
	})
}

// handleListSessions godoc
// @Summary List tmux sessions
// @Description List the sessions known to the tmux client backend
// @Tags tmux
// @Produce json
// @Success 200 {object} SessionsResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/tmux/sessions [get]
func (s *Server) handleListSessions(c echo.Context) error {
	sessions, err := s.sessions.ListSessions(c.Request().Context())
	if err != nil {
		return errors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, SessionsResponse{
		Sessions: sessions,
		Total:    len(sessions),
	})
}

// handleGetSession godoc
// @Summary Get a tmux session
// @Description Get one session with its commands and their output
// @Tags tmux
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} types.TmuxSessionDetail
// @Failure 404 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/tmux/sessions/{id} [get]
func (s *Server) handleGetSession(c echo.Context) error {
	session, err := s.sessions.GetSession(c.Request().Context(), pathParam(c, "id"))
	if err != nil {
		return errors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, session)
}
