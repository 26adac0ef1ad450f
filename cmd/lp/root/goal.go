package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lifeplan/internal/engine"
	"lifeplan/internal/model"
	"lifeplan/internal/storage"
	"lifeplan/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage life goals",
	}
	cmd.AddCommand(
		newGoalAddCmd(),
		newGoalListCmd(),
		newGoalProgressCmd(),
		newGoalDoneCmd(),
		newGoalSuggestCmd(),
		newGoalRankCmd(),
	)
	return cmd
}

func newGoalAddCmd() *cobra.Command {
	var (
		category   string
		priority   int
		difficulty int
		target     string
		desc       string
		why        string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cat, err := model.ParseCategory(category)
			if err != nil {
				return err
			}
			in := engine.CreateGoalInput{
				Title:        args[0],
				Description:  desc,
				Category:     cat,
				Priority:     model.Priority(priority),
				Difficulty:   model.Difficulty(difficulty),
				WhyImportant: why,
			}
			if target != "" {
				t, err := time.Parse(storage.DateOnly, target)
				if err != nil {
					return fmt.Errorf("invalid target date %q (want YYYY-MM-DD)", target)
				}
				in.TargetDate = &t
			}

			g, err := svc.CreateGoal(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGoal, "Goal created"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", g.ID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", g.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Category", g.Category))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Priority", g.Priority))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Difficulty", g.Difficulty))
			if g.TargetDate != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Target", g.TargetDate.Format(storage.DateOnly)+" ("+ui.RelativeDate(*g.TargetDate)+")"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Life category (health, career, finances, ...)")
	cmd.Flags().IntVarP(&priority, "priority", "p", 2, "Priority (1=low .. 4=urgent)")
	cmd.Flags().IntVarP(&difficulty, "difficulty", "d", 3, "Difficulty (1-5)")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&why, "why", "", "Why this goal matters")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newGoalListCmd() *cobra.Command {
	var (
		category string
		status   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var goals []model.Goal
			switch {
			case category != "":
				cat, err := model.ParseCategory(category)
				if err != nil {
					return err
				}
				goals, err = svc.GoalRepo().ListByCategory(ctx, cat)
				if err != nil {
					return err
				}
			case status != "":
				st := model.GoalStatus(status)
				if !st.IsValid() {
					return fmt.Errorf("invalid status %q", status)
				}
				goals, err = svc.GoalRepo().ListByStatus(ctx, st)
				if err != nil {
					return err
				}
			default:
				goals, err = svc.GoalRepo().ListAll(ctx)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGoal, "Goals"))
			if len(goals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
				return nil
			}
			for _, g := range goals {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s [%s] %s\n",
					ui.PriorityText(g.Priority), g.Title, ui.StatusText(g.Status), ui.ProgressBar(g.ProgressPercentage, 20))
				line := fmt.Sprintf("  %s | %s", g.ID, g.Category)
				if g.TargetDate != nil {
					line += " | due " + ui.RelativeDate(*g.TargetDate)
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(line))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by life category")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status")

	return cmd
}

func newGoalProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress <id> <percent>",
		Short: "Update a goal's progress",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and percent are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			pct, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.New("percent must be a number")
			}
			g, err := svc.UpdateGoalProgress(ctx, args[0], pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconGoal, g.Title, ui.ProgressBar(g.ProgressPercentage, 20))
			return nil
		},
	}

	return cmd
}

func newGoalDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a goal completed",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := svc.CompleteGoal(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Completed: "+g.Title))
			return nil
		},
	}

	return cmd
}

func newGoalSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <id>",
		Short: "Suggest a breakdown for a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := svc.GoalRepo().Get(ctx, args[0])
			if err != nil {
				return err
			}
			if g == nil {
				return fmt.Errorf("goal %s not found", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconInsight, g.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Difficulty score", fmt.Sprintf("%.2f", engine.DifficultyScore(*g))))
			suggestions := engine.SuggestBreakdown(*g)
			if len(suggestions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no suggestions)"))
				return nil
			}
			for _, s := range suggestions {
				fmt.Fprintln(cmd.OutOrStdout(), "- "+s)
			}
			return nil
		},
	}

	return cmd
}

func newGoalRankCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank goals by composite urgency",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			goals, err := svc.GoalRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			ranked := engine.Prioritize(goals)
			if top > 0 && len(ranked) > top {
				ranked = ranked[:top]
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGoal, "Goals by priority"))
			if len(ranked) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
				return nil
			}
			for i, g := range ranked {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s %s [%s]\n", i+1, ui.PriorityText(g.Priority), g.Title, ui.StatusText(g.Status))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 0, "Only show the top N goals")

	return cmd
}
