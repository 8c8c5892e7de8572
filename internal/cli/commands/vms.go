package commands

import (
	"fmt"

	"sandboxdash/internal/app"
	"sandboxdash/internal/types"
	"sandboxdash/internal/views"

	"github.com/spf13/cobra"
)

// VMCommands creates the VM listing and clone commands
func VMCommands(a *app.App) []*cobra.Command {
	commands := []*cobra.Command{}

	// sandboxdash vms list
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List the VMs known to the virsh sandbox API",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listVMs(cmd, a)
		},
	}
	listCmd.Flags().String("sort", "", "Sort by column (name, ipAddress)")
	listCmd.Flags().Bool("desc", false, "Sort descending")
	commands = append(commands, listCmd)

	// sandboxdash vms clone <uuid>
	cloneCmd := &cobra.Command{
		Use:   "clone <uuid>",
		Short: "Clone a VM into a new sandbox",
		Long: `Ask the virsh sandbox API to clone the VM with the given UUID and wait for
the answer. The request is recorded in the clone activity log when storage is
enabled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			return cloneVM(cmd, a, types.VM{UUID: args[0], Name: name})
		},
	}
	cloneCmd.Flags().String("name", "", "Display name used in messages and the activity log")
	commands = append(commands, cloneCmd)

	return commands
}

func listVMs(cmd *cobra.Command, a *app.App) error {
	if err := setup(cmd, a); err != nil {
		return err
	}

	vms, err := a.VMs.ListVMs(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load VMs: %w", err)
	}

	t := views.NewTable(views.VMColumns(), vms, parseSorting(cmd))

	rows := make([][]string, 0, len(t.Rows))
	for _, vm := range t.Rows {
		rows = append(rows, []string{vm.Name, vm.IPAddress, vm.UUID})
	}

	out := newOutput(cmd.OutOrStdout())
	out.table([]string{"Name", "IP Address", "UUID"}, rows, "No VMs found.")
	return nil
}

func cloneVM(cmd *cobra.Command, a *app.App, vm types.VM) error {
	if err := setup(cmd, a); err != nil {
		return err
	}
	if err := a.OpenStorage(); err != nil {
		return err
	}
	defer a.Close()

	tracker := a.NewTracker(cmd.Context())

	out := newOutput(cmd.OutOrStdout())
	out.println(out.dim("Cloning " + displayName(vm) + "..."))

	resp, err := tracker.Clone(cmd.Context(), vm)
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", displayName(vm), err)
	}

	out.printf("%s\n", out.style(successStyle, "Clone of "+displayName(vm)+" requested"))
	if resp != nil {
		if resp.Name != "" {
			out.printf("  Name:       %s\n", resp.Name)
		}
		if resp.UUID != "" {
			out.printf("  UUID:       %s\n", resp.UUID)
		}
		if resp.IPAddress != "" {
			out.printf("  IP Address: %s\n", resp.IPAddress)
		}
	}
	return nil
}

func displayName(vm types.VM) string {
	if vm.Name != "" {
		return vm.Name
	}
	return vm.UUID
}
