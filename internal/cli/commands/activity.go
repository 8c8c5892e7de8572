package commands

import (
	"fmt"
	"time"

	"sandboxdash/internal/app"
	"sandboxdash/internal/constants"
	"sandboxdash/internal/views"

	"github.com/spf13/cobra"
)

// ActivityCommand lists recorded clone requests from the local activity log
func ActivityCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "List recent clone requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listActivity(cmd, a)
		},
	}
	cmd.Flags().IntP("limit", "n", constants.DefaultActivityLimit, "Number of entries")
	return cmd
}

func listActivity(cmd *cobra.Command, a *app.App) error {
	path, _ := cmd.Flags().GetString("config")
	if err := a.LoadConfig(path); err != nil {
		return err
	}

	out := newOutput(cmd.OutOrStdout())
	if !a.Config.Storage.Enabled {
		out.println(out.dim("Clone activity storage is disabled."))
		return nil
	}

	if err := a.OpenStorage(); err != nil {
		return err
	}
	defer a.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 || limit > constants.MaxActivityLimit {
		limit = constants.DefaultActivityLimit
	}

	records, err := a.Clones.ListRecent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to load clone activity: %w", err)
	}

	rows := make([][]string, 0, len(records))
	for _, r := range views.NewActivityRows(records, time.Now()) {
		status := string(r.Status)
		if r.Error != "" {
			status = out.errorText(status)
		}
		rows = append(rows, []string{r.VMName, r.VMUUID, status, r.Age, r.Duration, r.Error})
	}

	out.table([]string{"VM", "VM UUID", "Status", "Requested", "Took", "Error"}, rows, "No clone requests yet.")
	return nil
}
