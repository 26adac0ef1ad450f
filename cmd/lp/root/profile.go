package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeplan/internal/model"
	"lifeplan/internal/ui"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the user profile",
	}
	cmd.AddCommand(
		newProfileSetCmd(),
		newProfileShowCmd(),
	)
	return cmd
}

func newProfileSetCmd() *cobra.Command {
	var (
		timezone  string
		focuses   []string
		vision    string
		values    []string
		reviewDay string
	)

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or replace the profile",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			var cats []model.LifeCategory
			for _, f := range focuses {
				cat, err := model.ParseCategory(f)
				if err != nil {
					return err
				}
				cats = append(cats, cat)
			}

			p := &model.UserProfile{
				Name:               args[0],
				Timezone:           timezone,
				PrimaryLifeFocuses: cats,
				LifeVision:         vision,
				CoreValues:         values,
				WeeklyReviewDay:    reviewDay,
			}
			if err := svc.SetProfile(ctx, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSparkle+" Profile saved for "+p.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&timezone, "tz", "", "IANA timezone (default UTC)")
	cmd.Flags().StringArrayVarP(&focuses, "focus", "f", nil, "Primary life focus, at most 5 (repeatable)")
	cmd.Flags().StringVar(&vision, "vision", "", "Life vision statement")
	cmd.Flags().StringArrayVar(&values, "value", nil, "Core value (repeatable)")
	cmd.Flags().StringVar(&reviewDay, "review-day", "", "Weekly review day (default Sunday)")

	return cmd
}

func newProfileShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.ProfileRepo().Get(ctx)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No profile yet. Run: lp profile set <name>"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCompass, p.Name))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Timezone", p.Timezone))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Weekly review", p.WeeklyReviewDay))
			if len(p.PrimaryLifeFocuses) > 0 {
				names := make([]string, len(p.PrimaryLifeFocuses))
				for i, c := range p.PrimaryLifeFocuses {
					names[i] = string(c)
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Focuses", strings.Join(names, ", ")))
			}
			if p.LifeVision != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Vision", p.LifeVision))
			}
			if len(p.CoreValues) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Values", strings.Join(p.CoreValues, ", ")))
			}
			return nil
		},
	}

	return cmd
}
