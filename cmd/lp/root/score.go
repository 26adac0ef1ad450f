package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeplan/internal/model"
	"lifeplan/internal/ui"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show the composite life score",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			score, err := svc.CalculateLifeScore(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScore, "Life Score"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Overall", ui.ProgressBar(score.Overall*100, 20)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Trend", score.Trend))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", fmt.Sprintf("%.2f", score.BalanceScore)))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			for _, cat := range model.AllCategories {
				s, ok := score.CategoryScores[cat]
				if !ok {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %-28s %s\n", cat, ui.ProgressBar(s*100, 10))
			}

			if len(score.Strengths) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "")
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Strengths: ")+joinCategories(score.Strengths))
			}
			if len(score.FocusAreas) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Needs focus: ")+joinCategories(score.FocusAreas))
			}
			return nil
		},
	}

	return cmd
}

func joinCategories(cats []model.LifeCategory) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
