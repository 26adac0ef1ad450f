package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifeplan/internal/model"
	"lifeplan/internal/ui"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show goal and habit analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			progress, err := svc.GenerateProgressAnalytics(ctx)
			if err != nil {
				return err
			}
			habits, err := svc.GenerateHabitAnalytics(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconChart, "Goal Progress"))
			fmt.Fprintln(out, ui.LabelValue("Goals", fmt.Sprintf("%d total, %d completed, %d in progress",
				progress.TotalGoals, progress.CompletedGoals, progress.InProgressGoals)))
			fmt.Fprintln(out, ui.LabelValue("Completion", ui.ProgressBar(progress.CompletionRate, 20)))
			if progress.AverageCompletionDays != nil {
				fmt.Fprintln(out, ui.LabelValue("Avg days to complete", fmt.Sprintf("%.1f", *progress.AverageCompletionDays)))
			}
			if progress.MostProductiveCategory != "" {
				fmt.Fprintln(out, ui.LabelValue("Most productive", progress.MostProductiveCategory))
				fmt.Fprintln(out, ui.LabelValue("Least productive", progress.LeastProductiveCategory))
			}
			if len(progress.DifficultyDistribution) > 0 {
				fmt.Fprintln(out, ui.Key.Render("By difficulty:"))
				for d := model.DifficultyVeryEasy; d <= model.DifficultyVeryHard; d++ {
					if n := progress.DifficultyDistribution[d]; n > 0 {
						fmt.Fprintf(out, "- %-10s %d\n", d, n)
					}
				}
			}
			if len(progress.MonthlyTrend) > 0 {
				fmt.Fprintln(out, ui.Key.Render("Completion trend (recent first):"))
				for _, tp := range progress.MonthlyTrend {
					if tp.Completed == 0 {
						continue
					}
					fmt.Fprintf(out, "- %s: %d\n", tp.Month, tp.Completed)
				}
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.Heading(ui.IconHabit, "Habit Performance"))
			fmt.Fprintln(out, ui.LabelValue("Habits", fmt.Sprintf("%d total, %d active", habits.TotalHabits, habits.ActiveHabits)))
			fmt.Fprintln(out, ui.LabelValue("Average streak", fmt.Sprintf("%.1f days", habits.AverageStreak)))
			fmt.Fprintln(out, ui.LabelValue("Weekly consistency", ui.ProgressBar(habits.WeeklyConsistency, 20)))
			if len(habits.BestPerforming) > 0 {
				fmt.Fprintln(out, ui.Good.Render("Best performing:"))
				for _, t := range habits.BestPerforming {
					fmt.Fprintln(out, "- "+t)
				}
			}
			if len(habits.Struggling) > 0 {
				fmt.Fprintln(out, ui.Warn.Render("Struggling:"))
				for _, t := range habits.Struggling {
					fmt.Fprintln(out, "- "+t)
				}
			}
			if len(habits.RateByCategory) > 0 {
				fmt.Fprintln(out, ui.Key.Render("Rate by category:"))
				for _, cat := range model.AllCategories {
					if rate, ok := habits.RateByCategory[cat]; ok {
						fmt.Fprintf(out, "- %-28s %.0f%%\n", cat, rate)
					}
				}
			}
			return nil
		},
	}

	return cmd
}
