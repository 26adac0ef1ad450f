package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lifeplan/internal/model"
	"lifeplan/internal/storage"
	"lifeplan/internal/ui"
)

func newJournalCmd() *cobra.Command {
	var (
		date     string
		energy   int
		mood     int
		stress   int
		sleep    float64
		exercise int
		wins     []string
		grateful []string
		tomorrow []string
		notes    string
		show     bool
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write or show today's journal entry",
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

			if show {
				e, err := svc.EntryRepo().Get(ctx, day)
				if err != nil {
					return err
				}
				if e == nil {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No entry for "+day.Format(storage.DateOnly)+"."))
					return nil
				}
				printEntry(cmd, e)
				return nil
			}

			e := &model.DailyEntry{
				Date:               day,
				EnergyLevel:        energy,
				MoodRating:         mood,
				StressLevel:        stress,
				DailyWins:          wins,
				GratitudeItems:     grateful,
				TomorrowPriorities: tomorrow,
				Notes:              notes,
			}
			if cmd.Flags().Changed("sleep") {
				e.SleepHours = &sleep
			}
			if cmd.Flags().Changed("exercise") {
				e.ExerciseMinutes = &exercise
			}

			if err := svc.SaveDailyEntry(ctx, e); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconJournal+" Saved entry for "+day.Format(storage.DateOnly)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Entry date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&energy, "energy", 0, "Energy level (1-10)")
	cmd.Flags().IntVar(&mood, "mood", 0, "Mood rating (1-10)")
	cmd.Flags().IntVar(&stress, "stress", 0, "Stress level (1-10)")
	cmd.Flags().Float64Var(&sleep, "sleep", 0, "Hours slept")
	cmd.Flags().IntVar(&exercise, "exercise", 0, "Exercise minutes")
	cmd.Flags().StringArrayVar(&wins, "win", nil, "A win of the day (repeatable)")
	cmd.Flags().StringArrayVar(&grateful, "grateful", nil, "Something to be grateful for (repeatable)")
	cmd.Flags().StringArrayVar(&tomorrow, "tomorrow", nil, "A priority for tomorrow (repeatable)")
	cmd.Flags().StringVarP(&notes, "notes", "m", "", "Free-form notes")
	cmd.Flags().BoolVar(&show, "show", false, "Show the entry instead of writing")

	return cmd
}

func printEntry(cmd *cobra.Command, e *model.DailyEntry) {
	fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconJournal, e.Date.Format(storage.DateOnly)))
	if e.EnergyLevel > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Energy", fmt.Sprintf("%d/10", e.EnergyLevel)))
	}
	if e.MoodRating > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Mood", fmt.Sprintf("%d/10", e.MoodRating)))
	}
	if e.StressLevel > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Stress", fmt.Sprintf("%d/10", e.StressLevel)))
	}
	if e.SleepHours != nil {
		fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Sleep", fmt.Sprintf("%.1fh", *e.SleepHours)))
	}
	if e.ExerciseMinutes != nil {
		fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Exercise", fmt.Sprintf("%dmin", *e.ExerciseMinutes)))
	}
	printList(cmd, "Wins", e.DailyWins)
	printList(cmd, "Gratitude", e.GratitudeItems)
	printList(cmd, "Tomorrow", e.TomorrowPriorities)
	if e.Notes != "" {
		fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Notes", e.Notes))
	}
}

func printList(cmd *cobra.Command, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Key.Render(label+":"))
	for _, it := range items {
		fmt.Fprintln(cmd.OutOrStdout(), "- "+it)
	}
}
