package root

import (
	"context"

	"github.com/spf13/cobra"

	"lifeplan/internal/tui"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunDashboard(ctx, svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
