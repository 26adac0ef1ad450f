package engine

import (
	"context"
	"testing"
	"time"

	"lifeplan/internal/model"
)

func addGoal(t *testing.T, svc *Service, g model.Goal) {
	t.Helper()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	if err := svc.GoalRepo().Create(context.Background(), &g); err != nil {
		t.Fatalf("add goal %s: %v", g.ID, err)
	}
}

func addHabit(t *testing.T, svc *Service, h model.Habit) {
	t.Helper()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	if h.TargetDaysPerWeek == 0 {
		h.TargetDaysPerWeek = 7
	}
	if h.TargetTimesPerDay == 0 {
		h.TargetTimesPerDay = 1
	}
	if err := svc.HabitRepo().Create(context.Background(), &h); err != nil {
		t.Fatalf("add habit %s: %v", h.ID, err)
	}
}

func TestProgressAnalyticsEmpty(t *testing.T) {
	svc := newTestService(t)

	report, err := svc.GenerateProgressAnalytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if report.TotalGoals != 0 || report.CompletionRate != 0 {
		t.Fatalf("empty report=%+v", report)
	}
	if report.MostProductiveCategory != "" || report.AverageCompletionDays != nil {
		t.Fatalf("empty report carries values: %+v", report)
	}
}

func TestProgressAnalytics(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created := time.Now().UTC().AddDate(0, 0, -20)
	completed := time.Now().UTC().AddDate(0, 0, -10)
	addGoal(t, svc, model.Goal{
		ID: "done-health", Title: "Morning walks",
		Category: model.CategoryHealthFitness, Priority: model.PriorityMedium,
		Difficulty: model.DifficultyEasy, Status: model.StatusCompleted,
		CreatedAt: created, CompletionDate: &completed, ProgressPercentage: 100,
	})
	addGoal(t, svc, model.Goal{
		ID: "open-health", Title: "Marathon",
		Category: model.CategoryHealthFitness, Priority: model.PriorityHigh,
		Difficulty: model.DifficultyVeryHard, Status: model.StatusInProgress,
	})
	addGoal(t, svc, model.Goal{
		ID: "open-career", Title: "Certification",
		Category: model.CategoryCareerEducation, Priority: model.PriorityHigh,
		Difficulty: model.DifficultyHard, Status: model.StatusNotStarted,
	})

	report, err := svc.GenerateProgressAnalytics(ctx)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if report.TotalGoals != 3 || report.CompletedGoals != 1 || report.InProgressGoals != 1 {
		t.Fatalf("counts=%+v", report)
	}
	if want := 100.0 / 3.0; report.CompletionRate < want-0.01 || report.CompletionRate > want+0.01 {
		t.Fatalf("rate=%f, want ~%f", report.CompletionRate, want)
	}
	if report.AverageCompletionDays == nil || *report.AverageCompletionDays != 10 {
		t.Fatalf("avg days=%v, want 10", report.AverageCompletionDays)
	}
	// Health: 1/2 completed. Career: 0/1.
	if report.MostProductiveCategory != model.CategoryHealthFitness {
		t.Fatalf("most productive=%s", report.MostProductiveCategory)
	}
	if report.LeastProductiveCategory != model.CategoryCareerEducation {
		t.Fatalf("least productive=%s", report.LeastProductiveCategory)
	}
	if report.DifficultyDistribution[model.DifficultyVeryHard] != 1 {
		t.Fatalf("difficulty dist=%v", report.DifficultyDistribution)
	}

	if len(report.MonthlyTrend) != 12 {
		t.Fatalf("trend buckets=%d, want 12", len(report.MonthlyTrend))
	}
	totalInTrend := 0
	for _, tp := range report.MonthlyTrend {
		totalInTrend += tp.Completed
	}
	if totalInTrend < 1 {
		t.Fatalf("recent completion missing from trend: %+v", report.MonthlyTrend)
	}
}

func TestHabitAnalytics(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	old := time.Now().UTC().AddDate(0, 0, -30)
	addHabit(t, svc, model.Habit{
		ID: "star", Title: "Sleep by 11", Category: model.CategoryHealthFitness,
		Priority: model.PriorityMedium, Difficulty: model.DifficultyEasy,
		Frequency: model.FrequencyDaily, CreatedAt: old,
		CurrentStreak: 20, LongestStreak: 25, CompletionRate: 92, IsActive: true,
	})
	addHabit(t, svc, model.Habit{
		ID: "meh", Title: "Stretch", Category: model.CategoryHealthFitness,
		Priority: model.PriorityMedium, Difficulty: model.DifficultyModerate,
		Frequency: model.FrequencyDaily, CreatedAt: old,
		CurrentStreak: 2, LongestStreak: 8, CompletionRate: 55, IsActive: true,
	})
	addHabit(t, svc, model.Habit{
		ID: "flop", Title: "Journal in French", Category: model.CategoryPersonalGrowth,
		Priority: model.PriorityLow, Difficulty: model.DifficultyVeryHard,
		Frequency: model.FrequencyDaily, CreatedAt: old,
		CurrentStreak: 0, LongestStreak: 2, CompletionRate: 10, IsActive: true,
	})
	addHabit(t, svc, model.Habit{
		ID: "retired", Title: "Cold showers", Category: model.CategoryHealthFitness,
		Priority: model.PriorityLow, Difficulty: model.DifficultyHard,
		Frequency: model.FrequencyDaily, CreatedAt: old,
		CompletionRate: 80, IsActive: false,
	})

	report, err := svc.GenerateHabitAnalytics(ctx)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if report.TotalHabits != 4 || report.ActiveHabits != 3 {
		t.Fatalf("counts=%+v", report)
	}
	if len(report.BestPerforming) == 0 || report.BestPerforming[0] != "Sleep by 11" {
		t.Fatalf("best=%v", report.BestPerforming)
	}
	// Struggling only includes sub-60% habits; the inactive one is excluded.
	for _, title := range report.Struggling {
		if title == "Sleep by 11" || title == "Cold showers" {
			t.Fatalf("struggling=%v", report.Struggling)
		}
	}
	if report.RateByCategory[model.CategoryPersonalGrowth] != 10 {
		t.Fatalf("rate by category=%v", report.RateByCategory)
	}
	wantAvg := (20.0 + 2.0 + 0.0) / 3.0
	if report.AverageStreak != wantAvg {
		t.Fatalf("avg streak=%f, want %f", report.AverageStreak, wantAvg)
	}
	if report.WeeklyConsistency < 0 || report.WeeklyConsistency > 100 {
		t.Fatalf("consistency=%f out of range", report.WeeklyConsistency)
	}
}

func TestLifeScoreFromAssessments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	older := CreateAssessmentInput{
		Date:           time.Now().UTC().AddDate(0, 0, -30),
		AssessmentType: "monthly",
		CategoryRatings: map[model.LifeCategory]int{
			model.CategoryHealthFitness:   5,
			model.CategoryCareerEducation: 5,
			model.CategoryFinances:        5,
		},
	}
	latest := CreateAssessmentInput{
		Date:           time.Now().UTC().AddDate(0, 0, -1),
		AssessmentType: "monthly",
		CategoryRatings: map[model.LifeCategory]int{
			model.CategoryHealthFitness:   9,
			model.CategoryCareerEducation: 8,
			model.CategoryFinances:        4,
		},
	}
	if _, err := svc.CreateAssessment(ctx, older); err != nil {
		t.Fatalf("create older: %v", err)
	}
	if _, err := svc.CreateAssessment(ctx, latest); err != nil {
		t.Fatalf("create latest: %v", err)
	}

	score, err := svc.CalculateLifeScore(ctx)
	if err != nil {
		t.Fatalf("life score: %v", err)
	}

	want := (0.9 + 0.8 + 0.4) / 3.0
	if score.Overall < want-0.001 || score.Overall > want+0.001 {
		t.Fatalf("overall=%f, want %f", score.Overall, want)
	}
	if score.Trend != TrendImproving {
		t.Fatalf("trend=%s, want improving", score.Trend)
	}
	if len(score.Strengths) != 2 {
		t.Fatalf("strengths=%v, want health and career", score.Strengths)
	}
	if len(score.FocusAreas) != 1 || score.FocusAreas[0] != model.CategoryFinances {
		t.Fatalf("focus=%v, want finances", score.FocusAreas)
	}
	if score.BalanceScore < 0 || score.BalanceScore > 1 {
		t.Fatalf("balance=%f out of range", score.BalanceScore)
	}
}

func TestLifeScoreIgnoresStaleAssessments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	stale := CreateAssessmentInput{
		Date:           time.Now().UTC().AddDate(0, 0, -120),
		AssessmentType: "monthly",
		CategoryRatings: map[model.LifeCategory]int{
			model.CategoryHealthFitness: 10,
		},
	}
	if _, err := svc.CreateAssessment(ctx, stale); err != nil {
		t.Fatalf("create stale: %v", err)
	}

	// Performance fallback kicks in: no goals and no habit history means
	// both component scores default to 0.5.
	score, err := svc.CalculateLifeScore(ctx)
	if err != nil {
		t.Fatalf("life score: %v", err)
	}
	if score.Overall != 0.5 {
		t.Fatalf("overall=%f, want 0.5 fallback", score.Overall)
	}
	if score.Trend != TrendStable {
		t.Fatalf("trend=%s, want stable", score.Trend)
	}
	if score.BalanceScore != 0.5 {
		t.Fatalf("balance=%f, want 0.5", score.BalanceScore)
	}
}

func TestLifeScoreFallbackFromPerformance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	old := time.Now().UTC().AddDate(0, 0, -40)
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		addHabit(t, svc, model.Habit{
			ID: id, Title: id, Category: model.CategoryHealthFitness,
			Priority: model.PriorityMedium, Difficulty: model.DifficultyEasy,
			Frequency: model.FrequencyDaily, CreatedAt: old,
			CurrentStreak: 36, LongestStreak: 36, CompletionRate: 90, IsActive: true,
		})
	}

	score, err := svc.CalculateLifeScore(ctx)
	if err != nil {
		t.Fatalf("life score: %v", err)
	}
	if score.Trend != TrendStable {
		t.Fatalf("trend=%s, want stable in fallback", score.Trend)
	}
	// Strong habits should pull the overall above the neutral 0.5.
	if score.Overall <= 0.5 {
		t.Fatalf("overall=%f, want > 0.5 with consistent habits", score.Overall)
	}
	if _, ok := score.CategoryScores[model.CategoryHealthFitness]; !ok {
		t.Fatalf("category scores missing health: %v", score.CategoryScores)
	}
}

func TestGenerateInsightsRules(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// A stalled goal: in progress for 40 days with little movement.
	addGoal(t, svc, model.Goal{
		ID: "stalled", Title: "Write a novel",
		Category: model.CategoryCreativity, Priority: model.PriorityMedium,
		Difficulty: model.DifficultyHard, Status: model.StatusInProgress,
		CreatedAt: time.Now().UTC().AddDate(0, 0, -40), ProgressPercentage: 5,
	})
	// A struggling habit.
	addHabit(t, svc, model.Habit{
		ID: "struggling", Title: "Daily pages", Category: model.CategoryCreativity,
		Priority: model.PriorityMedium, Difficulty: model.DifficultyModerate,
		Frequency: model.FrequencyDaily,
		CreatedAt: time.Now().UTC().AddDate(0, 0, -30),
		CompletionRate: 20, IsActive: true,
	})

	insights, err := svc.GenerateInsights(ctx)
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if len(insights) == 0 || len(insights) > 10 {
		t.Fatalf("insights=%d, want 1..10", len(insights))
	}

	titles := map[string]bool{}
	for _, in := range insights {
		titles[in.Title] = true
		if in.Confidence < 0 || in.Confidence > 1 {
			t.Fatalf("confidence=%f out of range", in.Confidence)
		}
	}
	if !titles["Stalled Goals Detected"] {
		t.Fatalf("missing stalled-goal insight: %v", titles)
	}
	if !titles["Struggling Habits Need Attention"] {
		t.Fatalf("missing struggling-habit insight: %v", titles)
	}

	// High-priority insights sort ahead of lower ones.
	for i := 1; i < len(insights); i++ {
		if insights[i].Priority > insights[i-1].Priority {
			t.Fatalf("insights out of priority order at %d", i)
		}
	}
}

func TestGenerateInsightsCelebration(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	addHabit(t, svc, model.Habit{
		ID: "champ", Title: "Read nightly", Category: model.CategoryPersonalGrowth,
		Priority: model.PriorityMedium, Difficulty: model.DifficultyEasy,
		Frequency: model.FrequencyDaily,
		CreatedAt: time.Now().UTC().AddDate(0, 0, -60),
		CurrentStreak: 50, LongestStreak: 50, CompletionRate: 95, IsActive: true,
	})

	insights, err := svc.GenerateInsights(ctx)
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	found := false
	for _, in := range insights {
		if in.Kind == InsightCelebration {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a celebration insight, got %+v", insights)
	}
}

func TestWellnessInsightLowEnergy(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		e := &model.DailyEntry{
			Date:        time.Now().UTC().AddDate(0, 0, -i),
			EnergyLevel: 3,
		}
		if err := svc.SaveDailyEntry(ctx, e); err != nil {
			t.Fatalf("save entry %d: %v", i, err)
		}
	}

	insights, err := svc.GenerateInsights(ctx)
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	found := false
	for _, in := range insights {
		if in.Title == "Low Energy Levels Detected" {
			found = true
			if in.Kind != InsightWarning || in.Category != model.CategoryHealthFitness {
				t.Fatalf("wellness insight=%+v", in)
			}
		}
	}
	if !found {
		t.Fatalf("expected low-energy insight")
	}
}
