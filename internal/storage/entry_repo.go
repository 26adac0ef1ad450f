package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lifeplan/internal/model"
)

type EntryRepo struct {
	db *sql.DB
}

func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

const entryColumns = `date, completed_habits, goal_progress, daily_wins, challenges_faced,
	lessons_learned, gratitude_items, energy_level, mood_rating, stress_level,
	sleep_hours, exercise_minutes, tomorrow_priorities, notes, created_at`

// Upsert writes the entry for its date. A second write for the same date
// replaces the prior entry wholesale; there is no merging.
func (r *EntryRepo) Upsert(ctx context.Context, e *model.DailyEntry) error {
	completed, err := encodeJSON(e.CompletedHabits)
	if err != nil {
		return err
	}
	progress, err := encodeJSON(e.GoalProgress)
	if err != nil {
		return err
	}
	wins, err := encodeJSON(e.DailyWins)
	if err != nil {
		return err
	}
	challenges, err := encodeJSON(e.Challenges)
	if err != nil {
		return err
	}
	lessons, err := encodeJSON(e.Lessons)
	if err != nil {
		return err
	}
	gratitude, err := encodeJSON(e.GratitudeItems)
	if err != nil {
		return err
	}
	priorities, err := encodeJSON(e.TomorrowPriorities)
	if err != nil {
		return err
	}

	var energy, mood, stress any
	if e.EnergyLevel > 0 {
		energy = e.EnergyLevel
	}
	if e.MoodRating > 0 {
		mood = e.MoodRating
	}
	if e.StressLevel > 0 {
		stress = e.StressLevel
	}
	var sleep, exercise any
	if e.SleepHours != nil {
		sleep = *e.SleepHours
	}
	if e.ExerciseMinutes != nil {
		exercise = *e.ExerciseMinutes
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO daily_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.Date.Format(DateOnly), completed, progress, wins, challenges,
		lessons, gratitude, energy, mood, stress,
		sleep, exercise, priorities, e.Notes, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("daily entry upsert: %w", err)
	}
	return nil
}

func (r *EntryRepo) Get(ctx context.Context, day time.Time) (*model.DailyEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM daily_entries WHERE date = ?`, day.Format(DateOnly))
	return scanEntry(row)
}

// ListRange returns entries with start <= date <= end, newest first.
func (r *EntryRepo) ListRange(ctx context.Context, start, end time.Time) ([]model.DailyEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM daily_entries
		WHERE date >= ? AND date <= ?
		ORDER BY date DESC
	`, start.Format(DateOnly), end.Format(DateOnly))
	if err != nil {
		return nil, fmt.Errorf("daily entry list: %w", err)
	}
	defer rows.Close()

	var out []model.DailyEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily entry rows: %w", err)
	}
	return out, nil
}

func scanEntry(row scanner) (*model.DailyEntry, error) {
	var (
		e          model.DailyEntry
		day        string
		completed  sql.NullString
		progress   sql.NullString
		wins       sql.NullString
		challenges sql.NullString
		lessons    sql.NullString
		gratitude  sql.NullString
		energy     sql.NullInt64
		mood       sql.NullInt64
		stress     sql.NullInt64
		sleep      sql.NullFloat64
		exercise   sql.NullInt64
		priorities sql.NullString
		notes      sql.NullString
		createdAt  string
	)

	if err := row.Scan(
		&day, &completed, &progress, &wins, &challenges,
		&lessons, &gratitude, &energy, &mood, &stress,
		&sleep, &exercise, &priorities, &notes, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("daily entry scan: %w", err)
	}

	d, err := time.Parse(DateOnly, day)
	if err != nil {
		return nil, fmt.Errorf("daily entry date parse: %w", err)
	}
	e.Date = d
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("daily entry created_at parse: %w", err)
	}
	e.CreatedAt = created

	e.EnergyLevel = int(energy.Int64)
	e.MoodRating = int(mood.Int64)
	e.StressLevel = int(stress.Int64)
	if sleep.Valid {
		v := sleep.Float64
		e.SleepHours = &v
	}
	if exercise.Valid {
		v := int(exercise.Int64)
		e.ExerciseMinutes = &v
	}
	e.Notes = notes.String

	if err := decodeJSON(completed, &e.CompletedHabits); err != nil {
		return nil, err
	}
	if err := decodeJSON(progress, &e.GoalProgress); err != nil {
		return nil, err
	}
	if err := decodeJSON(wins, &e.DailyWins); err != nil {
		return nil, err
	}
	if err := decodeJSON(challenges, &e.Challenges); err != nil {
		return nil, err
	}
	if err := decodeJSON(lessons, &e.Lessons); err != nil {
		return nil, err
	}
	if err := decodeJSON(gratitude, &e.GratitudeItems); err != nil {
		return nil, err
	}
	if err := decodeJSON(priorities, &e.TomorrowPriorities); err != nil {
		return nil, err
	}
	return &e, nil
}
