package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lifeplan/internal/engine"
	"lifeplan/internal/model"
	"lifeplan/internal/storage"
)

type dashboardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	score    *engine.LifeScore
	progress *engine.ProgressAnalytics
	habits   []model.Habit
	insights []engine.Insight

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	score    *engine.LifeScore
	progress *engine.ProgressAnalytics
	habits   []model.Habit
	insights []engine.Insight
	err      error
}

type recordedMsg struct {
	title string
	res   *storage.CompletionResult
	err   error
}

func newDashboardModel(ctx context.Context, svc *engine.Service) dashboardModel {
	return dashboardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m dashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		score, err := m.svc.CalculateLifeScore(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		progress, err := m.svc.GenerateProgressAnalytics(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		habits, err := m.svc.HabitRepo().ListActive(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		insights, err := m.svc.GenerateInsights(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{score: score, progress: progress, habits: habits, insights: insights}
	}
}

func (m dashboardModel) recordCmd(h model.Habit) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.HabitRepo().RecordCompletion(m.ctx, h.ID, time.Now(), "", "")
		return recordedMsg{title: h.Title, res: res, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.score = msg.score
		m.progress = msg.progress
		m.habits = msg.habits
		m.insights = msg.insights
		if m.selected >= len(m.habits) {
			m.selected = len(m.habits) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case recordedMsg:
		if msg.err != nil {
			m.lastLog = "Record failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.AlreadyRecorded {
			m.lastLog = fmt.Sprintf("%s already recorded for %s.", msg.title, msg.res.Date)
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("Recorded %s: streak %d, rate %.0f%%", msg.title, msg.res.CurrentStreak, msg.res.CompletionRate)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.habits)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			if m.selected < 0 || m.selected >= len(m.habits) {
				return m, nil
			}
			h := m.habits[m.selected]
			m.lastLog = fmt.Sprintf("Recording %s…", h.Title)
			return m, m.recordCmd(h)
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m dashboardModel) renderHeader() string {
	if m.score == nil {
		return "Lifeplan — loading…"
	}
	bar := scoreBar(m.score.Overall, 30)
	return fmt.Sprintf("Lifeplan | Life score %.2f %s | Trend: %s", m.score.Overall, bar, m.score.Trend)
}

func (m dashboardModel) renderSidebar() string {
	if m.score == nil {
		return "Life Areas\n\nLoading…"
	}
	lines := []string{"Life Areas"}
	for _, cat := range model.AllCategories {
		score, ok := m.score.CategoryScores[cat]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s %s", shortenCategory(cat), scoreBar(score, 10)))
	}
	if len(lines) == 1 {
		lines = append(lines, "(no rated areas yet)")
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: record habit")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m dashboardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}

	var out []string
	if m.progress != nil {
		out = append(out, fmt.Sprintf("Goals: %d total, %d done, %d in progress (%.0f%%)",
			m.progress.TotalGoals, m.progress.CompletedGoals, m.progress.InProgressGoals, m.progress.CompletionRate))
		out = append(out, "")
	}

	out = append(out, "Habits")
	if len(m.habits) == 0 {
		out = append(out, "(no active habits)")
	}
	for i, h := range m.habits {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		out = append(out, fmt.Sprintf("%s%s (streak %d, rate %.0f%%)", cursor, h.Title, h.CurrentStreak, h.CompletionRate))
	}

	out = append(out, "")
	out = append(out, "Insights")
	if len(m.insights) == 0 {
		out = append(out, "(none yet)")
	}
	top := m.insights
	if len(top) > 5 {
		top = top[:5]
	}
	for _, in := range top {
		out = append(out, fmt.Sprintf("- [%s] %s", in.Kind, in.Title))
	}
	return strings.Join(out, "\n")
}

func (m dashboardModel) renderFooter() string {
	return "\n" + m.lastLog
}

// scoreBar renders a 0..1 score as a fixed-width bar.
func scoreBar(score float64, width int) string {
	if width <= 3 {
		width = 3
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	filled := int(score * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// shortenCategory keeps the sidebar narrow: "Health & Fitness" -> "Health".
func shortenCategory(cat model.LifeCategory) string {
	s := string(cat)
	if head, _, ok := strings.Cut(s, " & "); ok {
		return head
	}
	return s
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
