package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CompletionResult carries the derived stats recomputed by RecordCompletion.
type CompletionResult struct {
	HabitID          string
	Date             string
	AlreadyRecorded  bool
	CurrentStreak    int
	LongestStreak    int
	TotalCompletions int
	CompletionRate   float64
}

// RecordCompletion appends a completion for habitID on day (at is an optional
// "HH:MM" clock time, empty when untimed) and recomputes the habit's derived
// stats from the completion log. The insert, recompute and habit update
// commit or roll back as one transaction; the log stays the source of truth
// and the materialized stats are always recomputable from it.
//
// Re-recording an identical (habit, date, time) triple is a no-op for the
// log; the stats recompute is idempotent either way.
func (r *HabitRepo) RecordCompletion(ctx context.Context, habitID string, day time.Time, at string, note string) (*CompletionResult, error) {
	res := &CompletionResult{HabitID: habitID, Date: day.Format(DateOnly)}

	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var (
			createdAt     string
			targetPerWeek int
			longest       int
		)
		row := tx.QueryRowContext(ctx,
			`SELECT created_at, target_days_per_week, longest_streak FROM habits WHERE id = ?`, habitID)
		if err := row.Scan(&createdAt, &targetPerWeek, &longest); err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("habit %s not found", habitID)
			}
			return fmt.Errorf("habit lookup: %w", err)
		}
		created, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return fmt.Errorf("habit created_at parse: %w", err)
		}

		ins, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO habit_completions (habit_id, completion_date, completion_time, notes)
			VALUES (?, ?, ?, ?)
		`, habitID, res.Date, at, note)
		if err != nil {
			return fmt.Errorf("completion insert: %w", err)
		}
		if n, err := ins.RowsAffected(); err == nil && n == 0 {
			res.AlreadyRecorded = true
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT completion_date FROM habit_completions WHERE habit_id = ?`, habitID)
		if err != nil {
			return fmt.Errorf("completion dates: %w", err)
		}
		defer rows.Close()

		total := 0
		dates := map[string]bool{}
		for rows.Next() {
			var d string
			if err := rows.Scan(&d); err != nil {
				return fmt.Errorf("completion date scan: %w", err)
			}
			total++
			dates[d] = true
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("completion date rows: %w", err)
		}

		res.TotalCompletions = total
		res.CurrentStreak = currentStreak(dates, day)
		res.LongestStreak = longest
		if res.CurrentStreak > res.LongestStreak {
			res.LongestStreak = res.CurrentStreak
		}
		res.CompletionRate = completionRate(total, created, day, targetPerWeek)

		_, err = tx.ExecContext(ctx, `
			UPDATE habits
			SET current_streak = ?, longest_streak = ?, total_completions = ?, completion_rate = ?
			WHERE id = ?
		`, res.CurrentStreak, res.LongestStreak, res.TotalCompletions, res.CompletionRate, habitID)
		if err != nil {
			return fmt.Errorf("habit stats update: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// currentStreak counts consecutive calendar days with at least one
// completion, walking backward from asOf (inclusive) and stopping at the
// first gap. Multiple completions on one day count once.
func currentStreak(dates map[string]bool, asOf time.Time) int {
	if len(dates) == 0 {
		if asOf.Format(DateOnly) == time.Now().Format(DateOnly) {
			return 1
		}
		return 0
	}

	streak := 0
	check := truncateToDay(asOf)
	for dates[check.Format(DateOnly)] {
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}

// completionRate is actual vs expected completions since creation as a
// percentage, capped at 100. Expected completions scale with the weekly
// target; a non-positive expectation yields 0 rather than dividing by zero.
func completionRate(total int, created, asOf time.Time, targetPerWeek int) float64 {
	days := int(truncateToDay(asOf).Sub(truncateToDay(created)).Hours()/24) + 1
	expected := float64(days) * (float64(targetPerWeek) / 7.0)
	if expected <= 0 {
		return 0
	}
	rate := float64(total) / expected * 100
	if rate > 100 {
		rate = 100
	}
	return rate
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
