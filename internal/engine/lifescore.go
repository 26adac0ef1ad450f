package engine

import (
	"context"
	"sort"
	"time"

	"lifeplan/internal/model"
)

// LifeScore is the composite life-satisfaction measure. Scores are in [0,1].
type LifeScore struct {
	Overall        float64
	CategoryScores map[model.LifeCategory]float64
	Trend          string // "improving", "declining", "stable"
	Strengths      []model.LifeCategory
	FocusAreas     []model.LifeCategory
	BalanceScore   float64
}

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// CalculateLifeScore scores life satisfaction from the most recent
// assessment within 90 days; without one, it derives a score from goal and
// habit performance instead.
func (s *Service) CalculateLifeScore(ctx context.Context) (*LifeScore, error) {
	assessments, err := s.assessments.List(ctx, "")
	if err != nil {
		return nil, err
	}

	cutoff := startOfDay(time.Now()).AddDate(0, 0, -90)
	var recent []model.LifeAssessment
	for _, a := range assessments {
		if !startOfDay(a.Date).Before(cutoff) {
			recent = append(recent, a)
		}
	}

	if len(recent) == 0 {
		return s.lifeScoreFromPerformance(ctx)
	}
	return scoreFromAssessments(recent), nil
}

func scoreFromAssessments(recent []model.LifeAssessment) *LifeScore {
	// List order is date descending, so the first is the latest.
	latest := recent[0]

	scores := map[model.LifeCategory]float64{}
	var all []float64
	for _, cat := range model.AllCategories {
		if rating, ok := latest.CategoryRatings[cat]; ok {
			score := float64(rating) / 10.0
			scores[cat] = score
			all = append(all, score)
		}
	}

	overall := 0.5
	if len(all) > 0 {
		overall = mean(all)
	}

	trend := TrendStable
	if len(recent) >= 2 {
		var prev []float64
		for _, rating := range recent[1].CategoryRatings {
			prev = append(prev, float64(rating)/10.0)
		}
		prevScore := mean(prev)
		if overall > prevScore+0.1 {
			trend = TrendImproving
		} else if overall < prevScore-0.1 {
			trend = TrendDeclining
		}
	}

	// Rank rated categories best first; declaration order breaks ties.
	var ranked []model.LifeCategory
	for _, cat := range model.AllCategories {
		if _, ok := scores[cat]; ok {
			ranked = append(ranked, cat)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return scores[ranked[a]] > scores[ranked[b]] })

	var strengths []model.LifeCategory
	for i := 0; i < len(ranked) && i < 3; i++ {
		if scores[ranked[i]] > 0.7 {
			strengths = append(strengths, ranked[i])
		}
	}
	var focusAreas []model.LifeCategory
	tail := ranked
	if len(tail) > 3 {
		tail = tail[len(tail)-3:]
	}
	for _, cat := range tail {
		if scores[cat] < 0.6 {
			focusAreas = append(focusAreas, cat)
		}
	}

	balance := 0.0
	if len(all) > 0 {
		if m := mean(all); m > 0 {
			balance = clamp01(1.0 - stdev(all)/m)
		}
	}

	return &LifeScore{
		Overall:        overall,
		CategoryScores: scores,
		Trend:          trend,
		Strengths:      strengths,
		FocusAreas:     focusAreas,
		BalanceScore:   balance,
	}
}

// lifeScoreFromPerformance is the fallback scoring when no recent assessment
// exists: goal completion and habit consistency stand in for self-reported
// satisfaction.
func (s *Service) lifeScoreFromPerformance(ctx context.Context) (*LifeScore, error) {
	progress, err := s.GenerateProgressAnalytics(ctx)
	if err != nil {
		return nil, err
	}
	habitStats, err := s.GenerateHabitAnalytics(ctx)
	if err != nil {
		return nil, err
	}

	goalScore := 0.5
	if progress.CompletionRate > 0 {
		goalScore = progress.CompletionRate / 100.0
	}
	habitScore := 0.5
	if habitStats.WeeklyConsistency > 0 {
		habitScore = habitStats.WeeklyConsistency / 100.0
	}
	overall := mean([]float64{goalScore, habitScore})

	goals, err := s.goals.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	goalTotals := map[model.LifeCategory]int{}
	goalDone := map[model.LifeCategory]int{}
	for _, g := range goals {
		goalTotals[g.Category]++
		if g.Status == model.StatusCompleted {
			goalDone[g.Category]++
		}
	}
	habitTotals := map[model.LifeCategory]int{}
	for _, h := range habits {
		habitTotals[h.Category]++
	}

	scores := map[model.LifeCategory]float64{}
	for _, cat := range model.AllCategories {
		if goalTotals[cat] == 0 && habitTotals[cat] == 0 {
			continue
		}
		score := overall
		if goalTotals[cat] > 0 {
			rate := float64(goalDone[cat]) / float64(goalTotals[cat])
			score = mean([]float64{score, rate})
		}
		scores[cat] = score
	}

	return &LifeScore{
		Overall:        overall,
		CategoryScores: scores,
		Trend:          TrendStable,
		BalanceScore:   0.5,
	}, nil
}
