// Package app wires the configuration, the backend clients, the clone
// activity store and the dashboard server together.
package app

import (
	"context"
	"fmt"

	"sandboxdash/internal/api"
	"sandboxdash/internal/api/tmux"
	"sandboxdash/internal/api/virsh"
	"sandboxdash/internal/clone"
	"sandboxdash/internal/config"
	"sandboxdash/internal/db"
	"sandboxdash/internal/interfaces"
	"sandboxdash/internal/logger"
	"sandboxdash/internal/notify"
	"sandboxdash/internal/server"
)

// App represents the main application
type App struct {
	Config   *config.Config
	VMs      *virsh.Client
	Sessions *tmux.Client
	DB       *db.DB
	Clones   *db.CloneRepository
	Hub      *notify.Hub
	Tracker  *clone.Tracker
	Server   *server.Server
}

// New creates an empty application; components are built on demand
func New() *App {
	return &App{}
}

// LoadConfig reads the configuration from path, or the default location
// when path is empty, and applies its logging settings
func (a *App) LoadConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	logger.SetLevel(cfg.Server.LogLevel)
	logger.SetFormat(cfg.Server.LogFormat)

	a.Config = cfg
	return nil
}

// Connect creates the backend clients. It does not contact the backends.
func (a *App) Connect() error {
	if a.Config == nil {
		return fmt.Errorf("configuration not loaded")
	}

	vms, err := virsh.New(api.Options{
		BaseURL: a.Config.Backends.Virsh.URL,
		Token:   a.Config.Backends.Virsh.Token,
		Timeout: a.Config.Backends.HTTPTimeout.Std(),
	})
	if err != nil {
		return fmt.Errorf("failed to create virsh sandbox client: %w", err)
	}

	sessions, err := tmux.New(api.Options{
		BaseURL: a.Config.Backends.Tmux.URL,
		Token:   a.Config.Backends.Tmux.Token,
		Timeout: a.Config.Backends.HTTPTimeout.Std(),
	})
	if err != nil {
		return fmt.Errorf("failed to create tmux client: %w", err)
	}

	a.VMs = vms
	a.Sessions = sessions
	return nil
}

// OpenStorage opens the clone activity database when storage is enabled
func (a *App) OpenStorage() error {
	if a.Config == nil {
		return fmt.Errorf("configuration not loaded")
	}
	if !a.Config.Storage.Enabled {
		logger.Debug("Clone activity storage disabled")
		return nil
	}

	dbConfig := db.DefaultConfig()
	if a.Config.Storage.Path != "" {
		dbConfig.DSN = a.Config.Storage.Path
	}

	database, err := db.New(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to open clone activity database: %w", err)
	}

	a.DB = database
	a.Clones = db.NewCloneRepository(database)
	logger.WithField("path", dbConfig.DSN).Debug("Clone activity storage opened")
	return nil
}

// recorder returns the clone recorder, or nil when storage is disabled
func (a *App) recorder() interfaces.CloneRecorder {
	if a.Clones == nil {
		return nil
	}
	return a.Clones
}

// NewTracker builds the clone tracker. Background clones are bound to ctx.
func (a *App) NewTracker(ctx context.Context) *clone.Tracker {
	if a.Hub == nil {
		a.Hub = notify.NewHub()
	}

	opts := []clone.Option{
		clone.WithBaseContext(ctx),
		clone.WithTimeout(a.Config.Backends.HTTPTimeout.Std()),
	}
	if rec := a.recorder(); rec != nil {
		opts = append(opts, clone.WithRecorder(rec))
	}

	a.Tracker = clone.NewTracker(a.VMs, a.Hub, opts...)
	return a.Tracker
}

// BuildServer wires the dashboard server. LoadConfig, Connect and
// OpenStorage must have run.
func (a *App) BuildServer(ctx context.Context) error {
	if a.VMs == nil || a.Sessions == nil {
		return fmt.Errorf("backend clients not connected")
	}

	tracker := a.NewTracker(ctx)

	probes := []server.Probe{
		{Name: virsh.ServiceName, Target: a.VMs},
		{Name: tmux.ServiceName, Target: a.Sessions},
	}
	if a.DB != nil {
		probes = append(probes, server.Probe{Name: "storage", Target: interfaces.PingFunc(a.DB.HealthCheck)})
	}

	srv, err := server.New(ServerConfig(a.Config), server.Dependencies{
		VMs:      a.VMs,
		Sessions: a.Sessions,
		Tracker:  tracker,
		Hub:      a.Hub,
		Clones:   a.recorder(),
		Probes:   probes,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	a.Server = srv
	return nil
}

// ServerConfig maps the [server] section onto the server package's config
func ServerConfig(cfg *config.Config) *server.Config {
	sc := server.DefaultConfig()
	sc.Host = cfg.Server.Host
	sc.Port = cfg.Server.Port
	sc.ReadTimeout = cfg.Server.ReadTimeout.Std()
	sc.WriteTimeout = cfg.Server.WriteTimeout.Std()
	sc.ShutdownTimeout = cfg.Server.ShutdownTimeout.Std()
	sc.AllowOrigins = cfg.Server.AllowOrigins
	sc.LogLevel = cfg.Server.LogLevel
	sc.LogFormat = cfg.Server.LogFormat
	return sc
}

// Close releases the database, waiting for in-flight clones to record first
func (a *App) Close() error {
	if a.Tracker != nil {
		a.Tracker.Wait()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
