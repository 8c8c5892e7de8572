package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"sandboxdash/internal/clone"
	"sandboxdash/internal/constants"
	"sandboxdash/internal/interfaces"
	"sandboxdash/internal/logger"
	"sandboxdash/internal/notify"
	"sandboxdash/internal/views"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the server configuration
type Config struct {
	// Server settings
	Host            string        `toml:"host"`
	Port            int           `toml:"port"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`

	// CORS settings, also consulted by the websocket origin check
	AllowOrigins []string `toml:"allow_origins"`
	AllowHeaders []string `toml:"allow_headers"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            constants.DefaultServerHost,
		Port:            constants.DefaultServerPort,
		ReadTimeout:     constants.DefaultServerReadTimeout,
		WriteTimeout:    constants.DefaultServerWriteTimeout,
		ShutdownTimeout: constants.DefaultServerShutdownTimeout,
		AllowHeaders:    []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Probe is a named reachability check reported by /api/status
type Probe struct {
	Name   string
	Target interfaces.Pinger
}

// Dependencies are the collaborators the handlers call into. VMs and
// Sessions are required; everything else has a usable default.
type Dependencies struct {
	VMs      interfaces.VMService
	Sessions interfaces.SessionService
	Tracker  *clone.Tracker
	Hub      *notify.Hub
	Clones   interfaces.CloneRecorder // nil when clone activity storage is disabled
	Probes   []Probe
	Renderer *views.Renderer
}

// Server represents the dashboard HTTP server
type Server struct {
	config   *Config
	echo     *echo.Echo
	vms      interfaces.VMService
	sessions interfaces.SessionService
	tracker  *clone.Tracker
	hub      *notify.Hub
	clones   interfaces.CloneRecorder
	probes   []Probe

	setupOnce sync.Once
	startTime time.Time
}

// New creates a new server instance with all dependencies
func New(cfg *Config, deps Dependencies) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if deps.VMs == nil || deps.Sessions == nil {
		return nil, fmt.Errorf("server requires both the VM and the session backend")
	}

	if cfg.LogLevel != "" {
		logger.SetLevel(cfg.LogLevel)
	}
	if cfg.LogFormat != "" {
		logger.SetFormat(cfg.LogFormat)
	}

	if deps.Hub == nil {
		deps.Hub = notify.NewHub()
	}
	if deps.Tracker == nil {
		var opts []clone.Option
		if deps.Clones != nil {
			opts = append(opts, clone.WithRecorder(deps.Clones))
		}
		deps.Tracker = clone.NewTracker(deps.VMs, deps.Hub, opts...)
	}
	if deps.Renderer == nil {
		r, err := views.NewRenderer()
		if err != nil {
			return nil, err
		}
		deps.Renderer = r
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer

	// Set custom error handler
	e.HTTPErrorHandler = ErrorHandler

	return &Server{
		config:    cfg,
		echo:      e,
		vms:       deps.VMs,
		sessions:  deps.Sessions,
		tracker:   deps.Tracker,
		hub:       deps.Hub,
		clones:    deps.Clones,
		probes:    deps.Probes,
		startTime: time.Now(),
	}, nil
}

// Echo returns the Echo instance
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Tracker returns the clone tracker used by the handlers
func (s *Server) Tracker() *clone.Tracker {
	return s.tracker
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	s.setup()
	return s.echo
}

func (s *Server) setup() {
	s.setupOnce.Do(func() {
		s.setupMiddleware()
		s.setupRoutes()
	})
}

// Start starts the server and blocks until ctx is done, a signal arrives or
// the listener fails
func (s *Server) Start(ctx context.Context) error {
	s.setup()

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	logger.WithField("addr", addr).Info("Starting dashboard server")

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.echo,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// let in-flight clone requests record their outcome
	done := make(chan struct{})
	go func() {
		s.tracker.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("Clone requests still in flight at shutdown")
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(logger.RequestLogger())
	s.echo.Use(middleware.Recover())

	if len(s.config.AllowOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.AllowOrigins,
			AllowHeaders: s.config.AllowHeaders,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		}))
	}
}
