package storage

import (
	"context"
	"testing"
	"time"

	"lifeplan/internal/model"
)

func createTestHabit(t *testing.T, repo *HabitRepo, id string, createdDaysAgo int, targetPerWeek int) {
	t.Helper()
	err := repo.Create(context.Background(), &model.Habit{
		ID:                id,
		Title:             id,
		Category:          model.CategoryHealthFitness,
		Priority:          model.PriorityMedium,
		Difficulty:        model.DifficultyEasy,
		Frequency:         model.FrequencyDaily,
		TargetDaysPerWeek: targetPerWeek,
		TargetTimesPerDay: 1,
		CreatedAt:         time.Now().UTC().AddDate(0, 0, -createdDaysAgo),
		IsActive:          true,
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
}

func TestRecordCompletionStreak(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewHabitRepo(db)
	createTestHabit(t, repo, "h1", 10, 7)

	today := time.Now().UTC()
	var last *CompletionResult
	for i := 2; i >= 0; i-- {
		res, err := repo.RecordCompletion(ctx, "h1", today.AddDate(0, 0, -i), "", "")
		if err != nil {
			t.Fatalf("record day -%d: %v", i, err)
		}
		last = res
	}

	if last.CurrentStreak != 3 {
		t.Fatalf("streak=%d, want 3", last.CurrentStreak)
	}
	if last.LongestStreak < last.CurrentStreak {
		t.Fatalf("longest=%d < current=%d", last.LongestStreak, last.CurrentStreak)
	}
	if last.TotalCompletions != 3 {
		t.Fatalf("total=%d, want 3", last.TotalCompletions)
	}
	if last.CompletionRate < 0 || last.CompletionRate > 100 {
		t.Fatalf("rate=%f out of range", last.CompletionRate)
	}

	h, err := repo.Get(ctx, "h1")
	if err != nil {
		t.Fatalf("get habit: %v", err)
	}
	if h.CurrentStreak != 3 || h.TotalCompletions != 3 {
		t.Fatalf("persisted stats=%+v, want streak 3 / total 3", h)
	}
}

func TestRecordCompletionGapResetsStreak(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewHabitRepo(db)
	createTestHabit(t, repo, "h1", 10, 7)

	today := time.Now().UTC()
	if _, err := repo.RecordCompletion(ctx, "h1", today.AddDate(0, 0, -5), "", ""); err != nil {
		t.Fatalf("record old day: %v", err)
	}
	res, err := repo.RecordCompletion(ctx, "h1", today, "", "")
	if err != nil {
		t.Fatalf("record today: %v", err)
	}

	if res.CurrentStreak != 1 {
		t.Fatalf("streak=%d, want 1 after gap", res.CurrentStreak)
	}
	if res.TotalCompletions != 2 {
		t.Fatalf("total=%d, want 2", res.TotalCompletions)
	}
}

func TestRecordCompletionIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewHabitRepo(db)
	createTestHabit(t, repo, "h1", 3, 7)

	today := time.Now().UTC()
	first, err := repo.RecordCompletion(ctx, "h1", today, "07:30", "morning run")
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if first.AlreadyRecorded {
		t.Fatalf("first record flagged as duplicate")
	}

	second, err := repo.RecordCompletion(ctx, "h1", today, "07:30", "again")
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if !second.AlreadyRecorded {
		t.Fatalf("duplicate not detected")
	}
	if second.TotalCompletions != first.TotalCompletions {
		t.Fatalf("total changed on duplicate: %d -> %d", first.TotalCompletions, second.TotalCompletions)
	}

	// An untimed completion on the same day is also deduplicated against
	// itself, not against the timed one.
	untimed, err := repo.RecordCompletion(ctx, "h1", today, "", "")
	if err != nil {
		t.Fatalf("untimed record: %v", err)
	}
	if untimed.AlreadyRecorded {
		t.Fatalf("untimed record on same day should be a new log row")
	}
	untimedDup, err := repo.RecordCompletion(ctx, "h1", today, "", "")
	if err != nil {
		t.Fatalf("untimed duplicate: %v", err)
	}
	if !untimedDup.AlreadyRecorded {
		t.Fatalf("untimed duplicate not detected")
	}
	// Two completions on one calendar day still count as one streak day.
	if untimedDup.CurrentStreak != 1 {
		t.Fatalf("streak=%d, want 1", untimedDup.CurrentStreak)
	}
}

func TestRecordCompletionUnknownHabit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewHabitRepo(db)

	if _, err := repo.RecordCompletion(ctx, "nope", time.Now(), "", ""); err == nil {
		t.Fatalf("expected error for unknown habit")
	}
}

func TestRecordCompletionRateScalesWithTarget(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewHabitRepo(db)

	// 7 days old, completed once: a 7x/week habit expects ~8 completions, a
	// 1x/week habit is ahead of schedule and caps at 100.
	createTestHabit(t, repo, "daily", 7, 7)
	createTestHabit(t, repo, "weekly", 7, 1)

	today := time.Now().UTC()
	dres, err := repo.RecordCompletion(ctx, "daily", today, "", "")
	if err != nil {
		t.Fatalf("record daily: %v", err)
	}
	wres, err := repo.RecordCompletion(ctx, "weekly", today, "", "")
	if err != nil {
		t.Fatalf("record weekly: %v", err)
	}

	if dres.CompletionRate >= wres.CompletionRate {
		t.Fatalf("daily rate %.1f should be below weekly rate %.1f", dres.CompletionRate, wres.CompletionRate)
	}
	if wres.CompletionRate > 100 {
		t.Fatalf("rate=%f exceeds cap", wres.CompletionRate)
	}
}

func TestCompletionListByHabitRange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	habits := NewHabitRepo(db)
	completions := NewCompletionRepo(db)
	createTestHabit(t, habits, "h1", 30, 7)

	today := time.Now().UTC()
	for _, daysAgo := range []int{0, 1, 2, 10} {
		if _, err := habits.RecordCompletion(ctx, "h1", today.AddDate(0, 0, -daysAgo), "", ""); err != nil {
			t.Fatalf("record -%d: %v", daysAgo, err)
		}
	}

	all, err := completions.ListByHabit(ctx, "h1", "", "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("all=%d, want 4", len(all))
	}
	// Newest first.
	if all[0].Date != today.Format(DateOnly) {
		t.Fatalf("first=%s, want today", all[0].Date)
	}

	start := today.AddDate(0, 0, -2).Format(DateOnly)
	end := today.Format(DateOnly)
	recent, err := completions.ListByHabit(ctx, "h1", start, end)
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("range=%d, want 3", len(recent))
	}
}
