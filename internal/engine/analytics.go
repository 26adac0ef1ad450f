package engine

import (
	"context"
	"sort"
	"time"

	"lifeplan/internal/model"
)

// ProgressAnalytics aggregates goal progress across the whole store.
type ProgressAnalytics struct {
	TotalGoals      int
	CompletedGoals  int
	InProgressGoals int
	CompletionRate  float64 // percent of goals completed

	// AverageCompletionDays is nil when no completed goal has a completion
	// timestamp.
	AverageCompletionDays *float64

	MostProductiveCategory  model.LifeCategory // empty when no goals
	LeastProductiveCategory model.LifeCategory

	DifficultyDistribution map[model.Difficulty]int

	// MonthlyTrend covers the trailing 12 buckets, most recent first.
	MonthlyTrend []TrendPoint
}

// TrendPoint is one bucket of the completion trend. Buckets are fixed 30-day
// windows stepped back from the first day of the current month, not true
// calendar months.
type TrendPoint struct {
	Month     string // "2006-01" label of the bucket start
	Completed int
}

// GenerateProgressAnalytics computes goal analytics from the store. With no
// goals it returns the zero report rather than an error.
func (s *Service) GenerateProgressAnalytics(ctx context.Context) (*ProgressAnalytics, error) {
	goals, err := s.goals.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return &ProgressAnalytics{DifficultyDistribution: map[model.Difficulty]int{}}, nil
	}

	report := &ProgressAnalytics{
		TotalGoals:             len(goals),
		DifficultyDistribution: map[model.Difficulty]int{},
	}

	var completed []model.Goal
	for _, g := range goals {
		report.DifficultyDistribution[g.Difficulty]++
		switch g.Status {
		case model.StatusCompleted:
			completed = append(completed, g)
		case model.StatusInProgress:
			report.InProgressGoals++
		}
	}
	report.CompletedGoals = len(completed)
	report.CompletionRate = float64(report.CompletedGoals) / float64(report.TotalGoals) * 100

	var completionDays []float64
	for _, g := range completed {
		if g.CompletionDate != nil {
			completionDays = append(completionDays, float64(daysBetween(g.CreatedAt, *g.CompletionDate)))
		}
	}
	if len(completionDays) > 0 {
		avg := mean(completionDays)
		report.AverageCompletionDays = &avg
	}

	report.MostProductiveCategory, report.LeastProductiveCategory = productivityExtremes(goals, completed)
	report.MonthlyTrend = monthlyTrend(completed, time.Now())
	return report, nil
}

// productivityExtremes finds the categories with the highest and lowest goal
// completion ratio, considering only categories that have goals. Ties go to
// the category declared first.
func productivityExtremes(goals, completed []model.Goal) (most, least model.LifeCategory) {
	totals := map[model.LifeCategory]int{}
	done := map[model.LifeCategory]int{}
	for _, g := range goals {
		totals[g.Category]++
	}
	for _, g := range completed {
		done[g.Category]++
	}

	first := true
	var bestRate, worstRate float64
	for _, cat := range model.AllCategories {
		if totals[cat] == 0 {
			continue
		}
		rate := float64(done[cat]) / float64(totals[cat]) * 100
		if first {
			most, least = cat, cat
			bestRate, worstRate = rate, rate
			first = false
			continue
		}
		if rate > bestRate {
			most, bestRate = cat, rate
		}
		if rate < worstRate {
			least, worstRate = cat, rate
		}
	}
	return most, least
}

// monthlyTrend counts completions per bucket for the trailing 12 buckets.
// Each bucket spans 30 days, stepped back from the first of the current
// month; both endpoints are inclusive. The windowing deliberately mirrors
// the historical report format instead of calendar months.
func monthlyTrend(completed []model.Goal, now time.Time) []TrendPoint {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	trend := make([]TrendPoint, 0, 12)
	for i := 0; i < 12; i++ {
		bucketStart := firstOfMonth.AddDate(0, 0, -i*30)
		bucketEnd := bucketStart.AddDate(0, 0, 30)

		count := 0
		for _, g := range completed {
			if g.CompletionDate == nil {
				continue
			}
			d := startOfDay(*g.CompletionDate)
			if !d.Before(bucketStart) && !d.After(bucketEnd) {
				count++
			}
		}
		trend = append(trend, TrendPoint{Month: bucketStart.Format("2006-01"), Completed: count})
	}
	return trend
}

// HabitAnalytics aggregates habit performance across the whole store.
type HabitAnalytics struct {
	TotalHabits  int
	ActiveHabits int

	AverageStreak float64 // mean current streak over active habits

	BestPerforming   []string // top 3 active habit titles by completion rate
	Struggling       []string // bottom 3 active habit titles below 60%
	RateByCategory   map[model.LifeCategory]float64
	RateByDifficulty map[model.Difficulty]float64

	// WeeklyConsistency is 0-100: how much of each active habit's lifetime
	// its current streak covers, averaged over habits with any completions.
	WeeklyConsistency float64
}

// GenerateHabitAnalytics computes habit analytics from the store. With no
// habits it returns the zero report rather than an error.
func (s *Service) GenerateHabitAnalytics(ctx context.Context) (*HabitAnalytics, error) {
	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return &HabitAnalytics{
			RateByCategory:   map[model.LifeCategory]float64{},
			RateByDifficulty: map[model.Difficulty]float64{},
		}, nil
	}

	var active []model.Habit
	for _, h := range habits {
		if h.IsActive {
			active = append(active, h)
		}
	}

	report := &HabitAnalytics{
		TotalHabits:      len(habits),
		ActiveHabits:     len(active),
		RateByCategory:   map[model.LifeCategory]float64{},
		RateByDifficulty: map[model.Difficulty]float64{},
	}

	var streaks []float64
	for _, h := range active {
		streaks = append(streaks, float64(h.CurrentStreak))
	}
	report.AverageStreak = mean(streaks)

	ranked := make([]model.Habit, len(active))
	copy(ranked, active)
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].CompletionRate > ranked[b].CompletionRate })
	for i := 0; i < len(ranked) && i < 3; i++ {
		report.BestPerforming = append(report.BestPerforming, ranked[i].Title)
	}
	tail := ranked
	if len(tail) > 3 {
		tail = tail[len(tail)-3:]
	}
	for _, h := range tail {
		if h.CompletionRate < 60 {
			report.Struggling = append(report.Struggling, h.Title)
		}
	}

	byCategory := map[model.LifeCategory][]float64{}
	byDifficulty := map[model.Difficulty][]float64{}
	var consistency []float64
	for _, h := range active {
		byCategory[h.Category] = append(byCategory[h.Category], h.CompletionRate)
		byDifficulty[h.Difficulty] = append(byDifficulty[h.Difficulty], h.CompletionRate)

		if h.CompletionRate > 0 {
			days := daysSince(h.CreatedAt)
			if days < 1 {
				days = 1
			}
			c := float64(h.CurrentStreak) / float64(days)
			if c > 1 {
				c = 1
			}
			consistency = append(consistency, c)
		}
	}
	for cat, rates := range byCategory {
		report.RateByCategory[cat] = mean(rates)
	}
	for diff, rates := range byDifficulty {
		report.RateByDifficulty[diff] = mean(rates)
	}
	report.WeeklyConsistency = mean(consistency) * 100

	return report, nil
}
