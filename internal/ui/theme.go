package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"lifeplan/internal/model"
)

// Lifeplan theme (CLI + TUI).
// Kept intentionally small: reusable styles, a few emojis, and the shared
// progress-bar and relative-date helpers.

const (
	IconCompass  = "🧭"
	IconSparkle  = "✨"
	IconGoal     = "🎯"
	IconHabit    = "🔁"
	IconJournal  = "📓"
	IconInsight  = "💡"
	IconChart    = "📊"
	IconScore    = "🌿"
	IconDone     = "✅"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconParty    = "🎉"
	IconCalendar = "📅"
	IconFlame    = "🔥"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status model.GoalStatus) string {
	switch status {
	case model.StatusCompleted:
		return Good.Render(string(status))
	case model.StatusInProgress:
		return H2.Render(string(status))
	case model.StatusOnHold:
		return Warn.Render(string(status))
	case model.StatusCancelled:
		return Bad.Render(string(status))
	default:
		return Muted.Render(string(status))
	}
}

func PriorityText(p model.Priority) string {
	switch {
	case p >= model.PriorityUrgent:
		return Bad.Render(p.String())
	case p == model.PriorityHigh:
		return Warn.Render(p.String())
	default:
		return Muted.Render(p.String())
	}
}

// ProgressBar renders a fixed-width bar for a 0-100 percentage.
func ProgressBar(percentage float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	filled := int(percentage / 100 * float64(width))
	return fmt.Sprintf("%s%s %.0f%%",
		strings.Repeat("█", filled), strings.Repeat("░", width-filled), percentage)
}

// RelativeDate renders a date relative to today, e.g. "today", "in 3 days",
// "5 days ago".
func RelativeDate(target time.Time) string {
	days := int(midnight(target).Sub(midnight(time.Now())).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0:
		return fmt.Sprintf("in %d days", days)
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
