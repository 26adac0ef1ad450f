package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lifeplan/internal/engine"
	"lifeplan/internal/model"
	"lifeplan/internal/storage"
	"lifeplan/internal/ui"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits",
	}
	cmd.AddCommand(
		newHabitAddCmd(),
		newHabitListCmd(),
		newHabitDoneCmd(),
		newHabitOptimizeCmd(),
	)
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	var (
		category      string
		priority      int
		difficulty    int
		frequency     string
		daysPerWeek   int
		preferredTime string
		cue           string
		reward        string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit",
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
			freq, err := model.ParseFrequency(frequency)
			if err != nil {
				return err
			}

			h, err := svc.CreateHabit(ctx, engine.CreateHabitInput{
				Title:             args[0],
				Category:          cat,
				Priority:          model.Priority(priority),
				Difficulty:        model.Difficulty(difficulty),
				Frequency:         freq,
				TargetDaysPerWeek: daysPerWeek,
				PreferredTime:     preferredTime,
				TriggerCue:        cue,
				Reward:            reward,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconHabit, "Habit created"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", h.ID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", h.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Category", h.Category))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Target", fmt.Sprintf("%d days/week", h.TargetDaysPerWeek)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Life category (health, career, finances, ...)")
	cmd.Flags().IntVarP(&priority, "priority", "p", 2, "Priority (1=low .. 4=urgent)")
	cmd.Flags().IntVarP(&difficulty, "difficulty", "d", 3, "Difficulty (1-5)")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "daily", "Frequency (daily|weekly|monthly|custom)")
	cmd.Flags().IntVarP(&daysPerWeek, "days", "w", 7, "Target days per week (1-7)")
	cmd.Flags().StringVar(&preferredTime, "at", "", "Preferred time (HH:MM or morning/afternoon/evening/night)")
	cmd.Flags().StringVar(&cue, "cue", "", "Trigger cue")
	cmd.Flags().StringVar(&reward, "reward", "", "Reward")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newHabitListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var habits []model.Habit
			if all {
				habits, err = svc.HabitRepo().ListAll(ctx)
			} else {
				habits, err = svc.HabitRepo().ListActive(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconHabit, "Habits"))
			if len(habits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
				return nil
			}
			for _, h := range habits {
				streak := ""
				if h.CurrentStreak > 0 {
					streak = fmt.Sprintf(" %s%d", ui.IconFlame, h.CurrentStreak)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %s%s %s\n", h.Title, streak, ui.ProgressBar(h.CompletionRate, 20))
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf(
					"  %s | %s | best streak %d | success est. %.0f%%",
					h.ID, h.Category, h.LongestStreak, engine.SuccessProbability(h)*100)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include inactive habits")

	return cmd
}

func newHabitDoneCmd() *cobra.Command {
	var (
		date string
		at   string
		note string
	)

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Record a habit completion",
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

			day := time.Now()
			if date != "" {
				day, err = time.Parse(storage.DateOnly, date)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
				}
			}

			res, err := svc.HabitRepo().RecordCompletion(ctx, args[0], day, at, note)
			if err != nil {
				return err
			}
			if res.AlreadyRecorded {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Already recorded for "+res.Date+"."))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Recorded for "+res.Date))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%s%d (best %d)", ui.IconFlame, res.CurrentStreak, res.LongestStreak)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Completions", res.TotalCompletions))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Rate", ui.ProgressBar(res.CompletionRate, 20)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Completion date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&at, "at", "", "Completion time (HH:MM)")
	cmd.Flags().StringVarP(&note, "note", "m", "", "Note")

	return cmd
}

func newHabitOptimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize <id>",
		Short: "Suggest adjustments for a habit",
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

			h, err := svc.HabitRepo().Get(ctx, args[0])
			if err != nil {
				return err
			}
			if h == nil {
				return fmt.Errorf("habit %s not found", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconInsight, h.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Success est.", fmt.Sprintf("%.0f%%", engine.SuccessProbability(*h)*100)))
			suggestions, err := svc.OptimizeHabit(ctx, *h)
			if err != nil {
				return err
			}
			if len(suggestions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Nothing to fix. Keep going."))
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
