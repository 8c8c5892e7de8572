package cli

import (
	"sandboxdash/internal/constants"

	"github.com/spf13/cobra"
)

// createRootCommand creates the root command with global flags
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Admin dashboard for the virsh sandbox and tmux client APIs",
		Version: constants.Version,
		Long: `sandboxdash is an admin dashboard over two REST backends. The virsh sandbox
API lists VMs and clones them into sandboxes; the tmux client API reports tmux
sessions and the commands run in them. Run 'sandboxdash serve' for the web
dashboard, or use the vms and tmux commands from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to showing help if no subcommand
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (TOML, or YAML by extension)")

	return rootCmd
}
