package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sandboxdash/internal/app"
	"sandboxdash/internal/client"
	"sandboxdash/internal/constants"
	"sandboxdash/internal/errors"
	"sandboxdash/internal/logger"
	"sandboxdash/internal/notify"
	"sandboxdash/internal/xdg"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
)

// ServerCommands creates the commands that run or talk to the dashboard
func ServerCommands(a *app.App) []*cobra.Command {
	commands := []*cobra.Command{}

	// sandboxdash serve
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard",
		Long: `Run the dashboard HTTP server in the foreground. It serves the VM and tmux
session pages, the JSON API under /api and the notification stream. Only one
dashboard may run per state directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, a)
		},
	}
	serveCmd.Flags().String("host", "", "Address to bind (overrides server.host)")
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides server.port)")
	commands = append(commands, serveCmd)

	// sandboxdash status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running dashboard and its backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dashboardStatus(cmd, a)
		},
	}
	statusCmd.Flags().String("url", "", "Dashboard URL (defaults to the configured server address)")
	commands = append(commands, statusCmd)

	// sandboxdash watch
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream clone notifications from a running dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchNotifications(cmd, a)
		},
	}
	watchCmd.Flags().String("url", "", "Dashboard URL (defaults to the configured server address)")
	commands = append(commands, watchCmd)

	return commands
}

// acquireLock takes the single-instance lock in the state directory
func acquireLock() (*flock.Flock, error) {
	lockPath, err := xdg.LockFile()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve lock file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(lockPath), constants.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, errors.NewWithDetails(errors.ErrAlreadyInUse, "Dashboard already running", "Lock: "+lockPath)
	}
	return lock, nil
}

func runServe(cmd *cobra.Command, a *app.App) error {
	lock, err := acquireLock()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	if err := setup(cmd, a); err != nil {
		return err
	}

	if cmd.Flags().Changed("host") {
		a.Config.Server.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		a.Config.Server.Port, _ = cmd.Flags().GetInt("port")
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}

	if err := a.OpenStorage(); err != nil {
		return err
	}
	defer a.Close()

	if err := a.BuildServer(cmd.Context()); err != nil {
		return err
	}

	logger.WithFields(logger.Fields{
		"virsh":   a.Config.Backends.Virsh.URL,
		"tmux":    a.Config.Backends.Tmux.URL,
		"storage": a.Config.Storage.Enabled,
	}).Info("Dashboard configured")

	return a.Server.Start(cmd.Context())
}

// dashboardClient resolves --url, falling back to the configured address
func dashboardClient(cmd *cobra.Command, a *app.App) (*client.Client, error) {
	url, _ := cmd.Flags().GetString("url")
	if url == "" {
		path, _ := cmd.Flags().GetString("config")
		if err := a.LoadConfig(path); err != nil {
			return nil, err
		}
		url = a.Config.Address()
	}
	return client.New(url)
}

func dashboardStatus(cmd *cobra.Command, a *app.App) error {
	c, err := dashboardClient(cmd, a)
	if err != nil {
		return err
	}

	status, err := c.Status(cmd.Context())
	if err != nil {
		return err
	}

	out := newOutput(cmd.OutOrStdout())
	out.title("Dashboard " + c.BaseURL())
	out.printf("Status:   %s\n", statusText(out, status.Status))
	out.printf("Version:  %s\n", status.Version)
	out.printf("Uptime:   %s\n", status.Uptime)
	if status.InFlight != "" {
		out.printf("Cloning:  %s\n", status.InFlight)
	}
	out.println()

	rows := make([][]string, 0, len(status.Backends))
	for _, b := range status.Backends {
		rows = append(rows, []string{
			b.Name,
			statusText(out, b.Status),
			fmt.Sprintf("%dms", b.LatencyMS),
			b.Error,
		})
	}
	out.table([]string{"Backend", "Status", "Latency", "Error"}, rows, "No backends probed.")
	return nil
}

func statusText(out *output, status string) string {
	if status == "healthy" {
		return out.style(successStyle, status)
	}
	return out.errorText(status)
}

func watchNotifications(cmd *cobra.Command, a *app.App) error {
	c, err := dashboardClient(cmd, a)
	if err != nil {
		return err
	}

	out := newOutput(cmd.OutOrStdout())
	out.println(out.dim("Watching " + c.BaseURL() + " for notifications (Ctrl+C to stop)"))

	return c.Watch(cmd.Context(), func(n notify.Notification) error {
		message := n.Message
		switch n.Level {
		case notify.LevelError:
			message = out.errorText(message)
		case notify.LevelSuccess:
			message = out.style(successStyle, message)
		}
		out.printf("%s %-7s %s\n", out.dim(n.Time.Local().Format(time.TimeOnly)), strings.ToUpper(string(n.Level)), message)
		return nil
	})
}
