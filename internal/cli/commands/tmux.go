package commands

import (
	"fmt"
	"strconv"

	"sandboxdash/internal/app"
	"sandboxdash/internal/views"

	"github.com/spf13/cobra"
)

// TmuxCommands creates the tmux session commands
func TmuxCommands(a *app.App) []*cobra.Command {
	commands := []*cobra.Command{}

	// sandboxdash tmux list
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List the sessions known to the tmux client",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSessions(cmd, a)
		},
	}
	listCmd.Flags().String("sort", "", "Sort by column (id, status, vmCloneId)")
	listCmd.Flags().Bool("desc", false, "Sort descending")
	commands = append(commands, listCmd)

	// sandboxdash tmux show <id>
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a session with its commands and output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSession(cmd, a, args[0])
		},
	}
	commands = append(commands, showCmd)

	return commands
}

func listSessions(cmd *cobra.Command, a *app.App) error {
	if err := setup(cmd, a); err != nil {
		return err
	}

	sessions, err := a.Sessions.ListSessions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load Tmux sessions: %w", err)
	}

	out := newOutput(cmd.OutOrStdout())
	t := views.NewTable(views.SessionColumns(), sessions, parseSorting(cmd))

	rows := make([][]string, 0, len(t.Rows))
	for _, s := range t.Rows {
		rows = append(rows, []string{s.ID, out.badge(s.Status), s.VMCloneID})
	}

	out.table([]string{"UUID", "Status", "VM Clone ID"}, rows, "No Tmux sessions found.")
	return nil
}

func showSession(cmd *cobra.Command, a *app.App, id string) error {
	if err := setup(cmd, a); err != nil {
		return err
	}

	session, err := a.Sessions.GetSession(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to load session details: %w", err)
	}

	out := newOutput(cmd.OutOrStdout())
	out.title("Tmux Session Details")
	out.printf("Session ID:       %s\n", session.ID)
	out.printf("Status:           %s\n", out.badge(session.Status))
	out.printf("Number of Panes:  %s\n", strconv.Itoa(session.NumberOfPanes))

	for i, c := range session.Commands {
		out.println()
		out.println(out.style(titleStyle, views.CommandLabel(i)))
		out.printf("$ %s\n", c.Command)
		out.println(out.dim("Output"))
		// verbatim, whitespace included
		out.printf("%s\n", c.Output)
	}
	return nil
}
