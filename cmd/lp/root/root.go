package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifeplan/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lp",
	Short:         "Lifeplan — local-first life planner",
	Long:          "Lifeplan is a local-first CLI/TUI for goals, habits, journaling and life reviews, with deterministic analytics over your own data.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newGoalCmd(),
		newHabitCmd(),
		newJournalCmd(),
		newAssessCmd(),
		newProfileCmd(),
		newInsightsCmd(),
		newStatsCmd(),
		newScoreCmd(),
		newDashboardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
