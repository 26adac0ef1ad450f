package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lifeplan/internal/model"
	"lifeplan/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewService(db)
}

func daysFromNow(n int) *time.Time {
	d := time.Now().UTC().AddDate(0, 0, n)
	return &d
}

func TestDifficultyScoreBounds(t *testing.T) {
	easy := model.Goal{Difficulty: model.DifficultyVeryEasy}
	if got := DifficultyScore(easy); got != 0.2 {
		t.Fatalf("easy score=%f, want 0.2", got)
	}

	steps := make([]string, 12)
	resources := make([]string, 4)
	hard := model.Goal{
		Difficulty:        model.DifficultyVeryHard,
		TargetDate:        daysFromNow(3),
		ActionSteps:       steps,
		RequiredResources: resources,
	}
	if got := DifficultyScore(hard); got != 1.0 {
		t.Fatalf("hard score=%f, want clamp at 1.0", got)
	}
}

func TestDifficultyScoreTimePressure(t *testing.T) {
	base := model.Goal{Difficulty: model.DifficultyModerate}
	near := base
	near.TargetDate = daysFromNow(5)
	far := base
	far.TargetDate = daysFromNow(200)

	if DifficultyScore(near) <= DifficultyScore(far) {
		t.Fatalf("near deadline should score higher: near=%f far=%f",
			DifficultyScore(near), DifficultyScore(far))
	}
}

func TestPrioritizeUrgentDeadlineFirst(t *testing.T) {
	leisurely := model.Goal{
		ID:         "leisurely",
		Priority:   model.PriorityLow,
		Difficulty: model.DifficultyModerate,
		Status:     model.StatusInProgress,
		CreatedAt:  time.Now().UTC(),
	}
	urgent := model.Goal{
		ID:         "urgent",
		Priority:   model.PriorityHigh,
		Difficulty: model.DifficultyModerate,
		Status:     model.StatusInProgress,
		CreatedAt:  time.Now().UTC(),
		TargetDate: daysFromNow(3),
	}

	ranked := Prioritize([]model.Goal{leisurely, urgent})
	if ranked[0].ID != "urgent" {
		t.Fatalf("ranked[0]=%s, want urgent", ranked[0].ID)
	}
}

func TestPrioritizeStableOnTies(t *testing.T) {
	mk := func(id string) model.Goal {
		return model.Goal{
			ID:         id,
			Priority:   model.PriorityMedium,
			Difficulty: model.DifficultyModerate,
			Status:     model.StatusInProgress,
			CreatedAt:  time.Now().UTC(),
		}
	}
	ranked := Prioritize([]model.Goal{mk("a"), mk("b"), mk("c")})
	if ranked[0].ID != "a" || ranked[1].ID != "b" || ranked[2].ID != "c" {
		t.Fatalf("tie order changed: %s %s %s", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}
}

func TestSuggestBreakdownCap(t *testing.T) {
	g := model.Goal{
		Category:   model.CategoryHealthFitness,
		Difficulty: model.DifficultyVeryHard,
		TargetDate: daysFromNow(120),
	}
	suggestions := SuggestBreakdown(g)
	if len(suggestions) == 0 || len(suggestions) > 5 {
		t.Fatalf("suggestions=%d, want 1..5", len(suggestions))
	}
}

func TestSuccessProbabilityBounds(t *testing.T) {
	fresh := model.Habit{
		Difficulty: model.DifficultyModerate,
		CreatedAt:  time.Now().UTC(),
	}
	p := SuccessProbability(fresh)
	if p < 0 || p > 1 {
		t.Fatalf("probability=%f out of range", p)
	}

	strong := model.Habit{
		Difficulty:       model.DifficultyEasy,
		CreatedAt:        time.Now().UTC().AddDate(0, 0, -90),
		CurrentStreak:    30,
		LongestStreak:    30,
		CompletionRate:   95,
		TriggerCue:       "after coffee",
		Reward:           "podcast",
		EnvironmentSetup: "shoes by the door",
	}
	if sp := SuccessProbability(strong); sp <= p {
		t.Fatalf("established habit %f should beat a fresh one %f", sp, p)
	}
}

func TestSuccessProbabilityZeroStreakHistory(t *testing.T) {
	// With no streak history the streak factor contributes 0, it is not
	// skipped, so a perfect rate still cannot reach 1.0.
	h := model.Habit{
		Difficulty:     model.DifficultyVeryEasy,
		CreatedAt:      time.Now().UTC().AddDate(0, 0, -90),
		CompletionRate: 100,
		TriggerCue:     "x", Reward: "y", EnvironmentSetup: "z",
	}
	if p := SuccessProbability(h); p >= 1.0 {
		t.Fatalf("probability=%f, want < 1.0 with zero streak factor", p)
	}
}

func TestTimeBuckets(t *testing.T) {
	cases := map[string]string{
		"07:30": bucketMorning,
		"12:00": bucketAfternoon,
		"18:45": bucketEvening,
		"23:10": bucketNight,
		"03:00": bucketNight,
		"":      "",
		"noon":  "",
	}
	for clock, want := range cases {
		if got := timeBucket(clock); got != want {
			t.Fatalf("timeBucket(%q)=%q, want %q", clock, got, want)
		}
	}
}

func TestRankTimeBuckets(t *testing.T) {
	completions := []model.HabitCompletion{
		{Time: "07:00"}, {Time: "08:15"}, {Time: "09:30"},
		{Time: "19:00"},
		{Time: "bogus"},
	}
	ranked := rankTimeBuckets(completions)
	if len(ranked) != 2 || ranked[0] != bucketMorning || ranked[1] != bucketEvening {
		t.Fatalf("ranked=%v", ranked)
	}
}

func TestOptimizeHabitCap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	h := model.Habit{
		ID:                "h1",
		Title:             "Meditate",
		Category:          model.CategorySpirituality,
		Priority:          model.PriorityMedium,
		Difficulty:        model.DifficultyVeryHard,
		Frequency:         model.FrequencyDaily,
		TargetDaysPerWeek: 7,
		TargetTimesPerDay: 1,
		CreatedAt:         time.Now().UTC().AddDate(0, 0, -60),
		CompletionRate:    15,
		CurrentStreak:     1,
		LongestStreak:     3,
		IsActive:          true,
	}
	if err := svc.HabitRepo().Create(ctx, &h); err != nil {
		t.Fatalf("create habit: %v", err)
	}

	suggestions, err := svc.OptimizeHabit(ctx, h)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if len(suggestions) == 0 || len(suggestions) > 4 {
		t.Fatalf("suggestions=%d, want 1..4", len(suggestions))
	}
}

func TestCreateGoalValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateGoal(ctx, CreateGoalInput{Title: "  ", Category: model.CategoryHealthFitness}); err == nil {
		t.Fatalf("expected error for blank title")
	}
	if _, err := svc.CreateGoal(ctx, CreateGoalInput{Title: "X", Category: "Underwater Basket Weaving"}); err == nil {
		t.Fatalf("expected error for unknown category")
	}

	// Out-of-range priority and difficulty fall back to the defaults.
	g, err := svc.CreateGoal(ctx, CreateGoalInput{
		Title:      "Learn Go",
		Category:   model.CategoryCareerEducation,
		Priority:   99,
		Difficulty: 0,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if g.Priority != model.PriorityMedium || g.Difficulty != model.DifficultyModerate {
		t.Fatalf("defaults not applied: priority=%v difficulty=%v", g.Priority, g.Difficulty)
	}
	if g.Status != model.StatusNotStarted || g.ID == "" {
		t.Fatalf("goal=%+v", g)
	}
}

func TestUpdateGoalProgressClampAndTransition(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	g, err := svc.CreateGoal(ctx, CreateGoalInput{Title: "Save money", Category: model.CategoryFinances})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateGoalProgress(ctx, g.ID, 150)
	if err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if updated.ProgressPercentage != 100 {
		t.Fatalf("progress=%f, want clamp at 100", updated.ProgressPercentage)
	}
	if updated.Status != model.StatusInProgress {
		t.Fatalf("status=%s, want In Progress", updated.Status)
	}

	if _, err := svc.UpdateGoalProgress(ctx, "missing", 50); err == nil {
		t.Fatalf("expected error for missing goal")
	}
}

func TestCompleteGoalOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	g, err := svc.CreateGoal(ctx, CreateGoalInput{Title: "Ship v1", Category: model.CategoryCareerEducation})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done, err := svc.CompleteGoal(ctx, g.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != model.StatusCompleted || done.CompletionDate == nil || done.ProgressPercentage != 100 {
		t.Fatalf("completed goal=%+v", done)
	}

	if _, err := svc.CompleteGoal(ctx, g.ID); err == nil {
		t.Fatalf("expected error completing twice")
	}
}

func TestSaveDailyEntryValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SaveDailyEntry(ctx, &model.DailyEntry{}); err == nil {
		t.Fatalf("expected error for zero date")
	}
	if err := svc.SaveDailyEntry(ctx, &model.DailyEntry{Date: time.Now(), EnergyLevel: 11}); err == nil {
		t.Fatalf("expected error for rating out of range")
	}
	if err := svc.SaveDailyEntry(ctx, &model.DailyEntry{Date: time.Now(), EnergyLevel: 7}); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestSetProfileDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	focuses := []model.LifeCategory{
		model.CategoryHealthFitness, model.CategoryCareerEducation, model.CategoryFinances,
		model.CategoryRelationships, model.CategoryHobbies, model.CategoryTravel,
	}
	if err := svc.SetProfile(ctx, &model.UserProfile{Name: "Ada", PrimaryLifeFocuses: focuses}); err != nil {
		t.Fatalf("set profile: %v", err)
	}

	p, err := svc.ProfileRepo().Get(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if len(p.PrimaryLifeFocuses) != 5 {
		t.Fatalf("focuses=%d, want trim to 5", len(p.PrimaryLifeFocuses))
	}
	if p.Timezone != "UTC" || p.WeeklyReviewDay != "Sunday" || p.MonthlyReviewDate != 1 {
		t.Fatalf("defaults not applied: %+v", p)
	}
}
