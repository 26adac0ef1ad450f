package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"lifeplan/internal/model"
)

// InsightKind classifies what a generated insight is telling the user.
type InsightKind string

const (
	InsightPattern        InsightKind = "pattern"
	InsightRecommendation InsightKind = "recommendation"
	InsightWarning        InsightKind = "warning"
	InsightCelebration    InsightKind = "celebration"
)

// Insight is one generated observation with suggested follow-ups.
type Insight struct {
	Title       string
	Description string
	Category    model.LifeCategory
	Priority    model.Priority
	ActionItems []string
	Confidence  float64 // 0.0 to 1.0
	Kind        InsightKind
}

// GenerateInsights pattern-matches over goals, habits, life score and recent
// journal entries, and returns the top insights ranked by priority then
// confidence. Every matching rule emits; the result is capped at ten.
func (s *Service) GenerateInsights(ctx context.Context) ([]Insight, error) {
	var insights []Insight

	goals, err := s.goals.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	insights = append(insights, goalInsights(goals)...)

	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	insights = append(insights, habitInsights(habits)...)

	score, err := s.CalculateLifeScore(ctx)
	if err != nil {
		return nil, err
	}
	insights = append(insights, balanceInsights(score)...)

	wellness, err := s.wellnessInsights(ctx)
	if err != nil {
		return nil, err
	}
	insights = append(insights, wellness...)

	sort.SliceStable(insights, func(a, b int) bool {
		if insights[a].Priority != insights[b].Priority {
			return insights[a].Priority > insights[b].Priority
		}
		return insights[a].Confidence > insights[b].Confidence
	})
	if len(insights) > 10 {
		insights = insights[:10]
	}
	return insights, nil
}

func goalInsights(goals []model.Goal) []Insight {
	var insights []Insight

	stalled := 0
	for _, g := range goals {
		if g.Status == model.StatusInProgress && daysSince(g.CreatedAt) > 30 && g.ProgressPercentage < 20 {
			stalled++
		}
	}
	if stalled > 0 {
		insights = append(insights, Insight{
			Title:       "Stalled Goals Detected",
			Description: fmt.Sprintf("You have %d goals that haven't progressed much in 30+ days", stalled),
			Category:    model.CategoryPersonalGrowth,
			Priority:    model.PriorityHigh,
			ActionItems: []string{
				"Review and break down stalled goals into smaller steps",
				"Consider if these goals are still relevant",
				"Set weekly progress checkpoints",
			},
			Confidence: 0.9,
			Kind:       InsightWarning,
		})
	}

	highPriority := 0
	for _, g := range goals {
		if g.Priority >= model.PriorityHigh &&
			(g.Status == model.StatusNotStarted || g.Status == model.StatusInProgress) {
			highPriority++
		}
	}
	if highPriority > 5 {
		insights = append(insights, Insight{
			Title:       "Potential Overcommitment",
			Description: fmt.Sprintf("You have %d high-priority goals active", highPriority),
			Category:    model.CategoryPersonalGrowth,
			Priority:    model.PriorityMedium,
			ActionItems: []string{
				"Consider reducing to 3-5 high-priority goals",
				"Move some goals to medium priority",
				"Focus on completing current goals before adding new ones",
			},
			Confidence: 0.8,
			Kind:       InsightRecommendation,
		})
	}

	return insights
}

func habitInsights(habits []model.Habit) []Insight {
	var insights []Insight

	struggling := 0
	excellent := 0
	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		if h.CompletionRate < 40 {
			struggling++
		}
		if h.CompletionRate > 85 {
			excellent++
		}
	}

	if struggling > 0 {
		insights = append(insights, Insight{
			Title:       "Struggling Habits Need Attention",
			Description: fmt.Sprintf("%d habits have completion rates below 40%%", struggling),
			Category:    model.CategoryPersonalGrowth,
			Priority:    model.PriorityHigh,
			ActionItems: []string{
				"Reduce difficulty of struggling habits",
				"Strengthen habit cues and rewards",
				"Consider habit stacking with existing routines",
			},
			Confidence: 0.85,
			Kind:       InsightRecommendation,
		})
	}

	if excellent > 0 {
		insights = append(insights, Insight{
			Title:       "Excellent Habit Performance!",
			Description: fmt.Sprintf("You're crushing it with %d habits above 85%% completion", excellent),
			Category:    model.CategoryPersonalGrowth,
			Priority:    model.PriorityLow,
			ActionItems: []string{
				"Consider adding complementary habits to successful ones",
				"Share your success strategies",
				"Gradually increase difficulty if desired",
			},
			Confidence: 0.9,
			Kind:       InsightCelebration,
		})
	}

	return insights
}

func balanceInsights(score *LifeScore) []Insight {
	var insights []Insight

	if score.BalanceScore < 0.6 {
		insights = append(insights, Insight{
			Title:       "Life Balance Opportunity",
			Description: "Your life satisfaction varies significantly across different areas",
			Category:    model.CategoryPersonalGrowth,
			Priority:    model.PriorityMedium,
			ActionItems: []string{
				"Focus more attention on neglected life areas",
				"Set goals in your lowest-scoring categories",
				"Consider reducing time in over-developed areas",
			},
			Confidence: 0.7,
			Kind:       InsightRecommendation,
		})
	}

	if len(score.FocusAreas) > 0 {
		names := make([]string, len(score.FocusAreas))
		for i, cat := range score.FocusAreas {
			names[i] = string(cat)
		}
		insights = append(insights, Insight{
			Title:       "Areas Needing Focus",
			Description: "These life areas could use more attention: " + strings.Join(names, ", "),
			Category:    score.FocusAreas[0],
			Priority:    model.PriorityMedium,
			ActionItems: []string{
				"Set specific goals in these areas",
				"Create habits to support these life domains",
				"Schedule regular time for these areas",
			},
			Confidence: 0.8,
			Kind:       InsightRecommendation,
		})
	}

	return insights
}

// wellnessInsights scans the trailing 30 days of journal entries for
// sustained low energy.
func (s *Service) wellnessInsights(ctx context.Context) ([]Insight, error) {
	now := time.Now()
	entries, err := s.entries.ListRange(ctx, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}

	var energies []float64
	for _, e := range entries {
		if e.EnergyLevel > 0 {
			energies = append(energies, float64(e.EnergyLevel))
		}
	}
	if len(energies) < 7 {
		return nil, nil
	}

	avg := mean(energies)
	if avg >= 6 {
		return nil, nil
	}
	return []Insight{{
		Title:       "Low Energy Levels Detected",
		Description: fmt.Sprintf("Your average energy level is %.1f/10 over the last 30 days", avg),
		Category:    model.CategoryHealthFitness,
		Priority:    model.PriorityHigh,
		ActionItems: []string{
			"Review sleep quality and duration",
			"Assess nutrition and exercise habits",
			"Consider stress management techniques",
			"Schedule energy-boosting activities",
		},
		Confidence: 0.8,
		Kind:       InsightWarning,
	}}, nil
}
