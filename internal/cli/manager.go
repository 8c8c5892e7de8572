package cli

import (
	"context"

	"sandboxdash/internal/app"
	"sandboxdash/internal/cli/commands"

	"github.com/spf13/cobra"
)

// Manager handles CLI operations
type Manager struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI manager driving a
func New(a *app.App) *Manager {
	m := &Manager{
		app:     a,
		rootCmd: createRootCommand(),
	}
	m.setupCommands()
	return m
}

// Root returns the root command
func (m *Manager) Root() *cobra.Command {
	return m.rootCmd
}

// Execute executes the CLI with the given arguments
func (m *Manager) Execute(args []string) error {
	return m.ExecuteWithContext(context.Background(), args)
}

// ExecuteWithContext executes the CLI with the given arguments and context
func (m *Manager) ExecuteWithContext(ctx context.Context, args []string) error {
	m.rootCmd.SetArgs(args)
	return m.rootCmd.ExecuteContext(ctx)
}

// setupCommands sets up all CLI commands
func (m *Manager) setupCommands() {
	// serve, status, watch
	for _, cmd := range commands.ServerCommands(m.app) {
		m.rootCmd.AddCommand(cmd)
	}

	vmsCmd := &cobra.Command{
		Use:     "vms",
		Short:   "VM commands (virsh sandbox API)",
		Aliases: []string{"vm"},
	}
	for _, cmd := range commands.VMCommands(m.app) {
		vmsCmd.AddCommand(cmd)
	}
	m.rootCmd.AddCommand(vmsCmd)

	tmuxCmd := &cobra.Command{
		Use:     "tmux",
		Short:   "Tmux session commands (tmux client API)",
		Aliases: []string{"sessions"},
	}
	for _, cmd := range commands.TmuxCommands(m.app) {
		tmuxCmd.AddCommand(cmd)
	}
	m.rootCmd.AddCommand(tmuxCmd)

	m.rootCmd.AddCommand(commands.ActivityCommand(m.app))

	configCmd := &cobra.Command{
		Use:     "config",
		Short:   "Configuration management commands",
		Aliases: []string{"cfg"},
	}
	for _, cmd := range commands.ConfigCommands(m.app) {
		configCmd.AddCommand(cmd)
	}
	m.rootCmd.AddCommand(configCmd)
}
