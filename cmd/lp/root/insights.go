package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifeplan/internal/engine"
	"lifeplan/internal/ui"
)

func newInsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate insights from your data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			insights, err := svc.GenerateInsights(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconInsight, "Insights"))
			if len(insights) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing stands out yet. Keep logging."))
				return nil
			}
			for _, in := range insights {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", kindIcon(in.Kind), ui.H2.Render(in.Title))
				fmt.Fprintln(cmd.OutOrStdout(), "  "+in.Description)
				for _, a := range in.ActionItems {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("  - "+a))
				}
			}
			return nil
		},
	}

	return cmd
}

func kindIcon(kind engine.InsightKind) string {
	switch kind {
	case engine.InsightWarning:
		return ui.IconWarn
	case engine.InsightCelebration:
		return ui.IconParty
	case engine.InsightPattern:
		return ui.IconChart
	default:
		return ui.IconInsight
	}
}
