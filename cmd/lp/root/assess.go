package root

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lifeplan/internal/engine"
	"lifeplan/internal/model"
	"lifeplan/internal/storage"
	"lifeplan/internal/ui"
)

func newAssessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Record and review life assessments",
	}
	cmd.AddCommand(
		newAssessAddCmd(),
		newAssessListCmd(),
	)
	return cmd
}

func newAssessAddCmd() *cobra.Command {
	var (
		date    string
		kind    string
		ratings []string
		overall int
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a life assessment",
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

			parsed, err := parseRatings(ratings)
			if err != nil {
				return err
			}

			in := engine.CreateAssessmentInput{
				Date:            day,
				AssessmentType:  kind,
				CategoryRatings: parsed,
				Notes:           notes,
			}
			if cmd.Flags().Changed("overall") {
				in.Overall = &overall
			}

			a, err := svc.CreateAssessment(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconScore+" Assessment saved ("+a.AssessmentType+", "+a.Date.Format(storage.DateOnly)+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Assessment date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&kind, "type", "t", "monthly", "Assessment type (weekly|monthly|quarterly|yearly)")
	cmd.Flags().StringArrayVarP(&ratings, "rate", "r", nil, "Category rating as category=N, 1-10 (repeatable)")
	cmd.Flags().IntVarP(&overall, "overall", "o", 0, "Overall satisfaction (1-10)")
	cmd.Flags().StringVarP(&notes, "notes", "m", "", "Notes")

	return cmd
}

// parseRatings turns repeated "category=N" flags into a rating map. Categories
// accept the same keywords as goal/habit flags.
func parseRatings(pairs []string) (map[model.LifeCategory]int, error) {
	out := map[model.LifeCategory]int{}
	for _, pair := range pairs {
		name, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid rating %q (want category=N)", pair)
		}
		cat, err := model.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("invalid rating %q (want category=N)", pair)
		}
		out[cat] = n
	}
	return out, nil
}

func newAssessListCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assessments, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			assessments, err := svc.AssessmentRepo().List(ctx, kind)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScore, "Assessments"))
			if len(assessments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
				return nil
			}
			for _, a := range assessments {
				line := fmt.Sprintf("- %s %s (%d areas rated", a.Date.Format(storage.DateOnly), a.AssessmentType, len(a.CategoryRatings))
				if a.OverallSatisfaction != nil {
					line += fmt.Sprintf(", overall %d/10", *a.OverallSatisfaction)
				}
				line += ")"
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "Filter by assessment type")

	return cmd
}
