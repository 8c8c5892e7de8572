package commands

import (
	"fmt"
	"os"

	"sandboxdash/internal/app"
	"sandboxdash/internal/config"

	"github.com/spf13/cobra"
)

// ConfigCommands creates configuration management commands
func ConfigCommands(a *app.App) []*cobra.Command {
	commands := []*cobra.Command{}

	// sandboxdash config show
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration after the file, .env and SANDBOXDASH_* environment
variables have been applied. Backend tokens are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			return showConfig(cmd, a, format)
		},
	}
	showCmd.Flags().StringP("format", "f", "toml", "Output format (toml, yaml)")
	commands = append(commands, showCmd)

	// sandboxdash config init
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			path, _ := cmd.Flags().GetString("config")
			return initConfig(cmd, path, force)
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
	commands = append(commands, initCmd)

	// sandboxdash config validate
	validateCmd := &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if len(args) > 0 {
				path = args[0]
			}
			return validateConfig(cmd, path)
		},
	}
	commands = append(commands, validateCmd)

	// sandboxdash config path
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the default configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	commands = append(commands, pathCmd)

	return commands
}

func showConfig(cmd *cobra.Command, a *app.App, format string) error {
	path, _ := cmd.Flags().GetString("config")
	if err := a.LoadConfig(path); err != nil {
		return err
	}

	var target string
	switch format {
	case "toml":
		target = "config.toml"
	case "yaml", "yml":
		target = "config.yaml"
	default:
		return fmt.Errorf("unknown format %q (want toml or yaml)", format)
	}

	data, err := a.Config.Redacted().Encode(target)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func initConfig(cmd *cobra.Command, path string, force bool) error {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}

	out := newOutput(cmd.OutOrStdout())
	out.printf("Wrote %s\n", path)
	out.println(out.dim("Edit backends.virsh.url and backends.tmux.url to point at your services."))
	return nil
}

func validateConfig(cmd *cobra.Command, path string) error {
	if _, err := config.Load(path); err != nil {
		return err
	}

	out := newOutput(cmd.OutOrStdout())
	out.println(out.style(successStyle, "Configuration is valid"))
	return nil
}
