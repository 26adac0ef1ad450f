package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lifeplan/internal/model"
)

type HabitRepo struct {
	db *sql.DB
}

func NewHabitRepo(db *sql.DB) *HabitRepo {
	return &HabitRepo{db: db}
}

const habitColumns = `id, title, description, category, priority, difficulty, frequency,
	target_days_per_week, target_times_per_day, preferred_time, duration_minutes,
	created_at, current_streak, longest_streak, total_completions, completion_rate,
	why_important, trigger_cue, reward, environment_setup,
	is_active, reminder_enabled, tags, notes`

func (r *HabitRepo) Create(ctx context.Context, h *model.Habit) error {
	args, err := habitArgs(h)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		return fmt.Errorf("habit insert: %w", err)
	}
	return nil
}

func (r *HabitRepo) Get(ctx context.Context, id string) (*model.Habit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	return scanHabit(row)
}

// ListAll returns every habit, active first, then highest priority, then
// newest.
func (r *HabitRepo) ListAll(ctx context.Context) ([]model.Habit, error) {
	return r.list(ctx, `SELECT `+habitColumns+` FROM habits ORDER BY is_active DESC, priority DESC, created_at DESC`)
}

func (r *HabitRepo) ListActive(ctx context.Context) ([]model.Habit, error) {
	return r.list(ctx, `SELECT `+habitColumns+` FROM habits WHERE is_active = 1 ORDER BY priority DESC, created_at DESC`)
}

func (r *HabitRepo) Update(ctx context.Context, h *model.Habit) error {
	args, err := habitArgs(h)
	if err != nil {
		return err
	}
	args = append(args[1:], args[0])
	res, err := r.db.ExecContext(ctx, `
		UPDATE habits SET title=?, description=?, category=?, priority=?, difficulty=?, frequency=?,
			target_days_per_week=?, target_times_per_day=?, preferred_time=?, duration_minutes=?,
			created_at=?, current_streak=?, longest_streak=?, total_completions=?, completion_rate=?,
			why_important=?, trigger_cue=?, reward=?, environment_setup=?,
			is_active=?, reminder_enabled=?, tags=?, notes=?
		WHERE id=?
	`, args...)
	if err != nil {
		return fmt.Errorf("habit update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("habit update rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("habit %s not found", h.ID)
	}
	return nil
}

func (r *HabitRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id); err != nil {
		return fmt.Errorf("habit delete: %w", err)
	}
	return nil
}

func (r *HabitRepo) list(ctx context.Context, query string, args ...any) ([]model.Habit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("habit list: %w", err)
	}
	defer rows.Close()

	var out []model.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit list rows: %w", err)
	}
	return out, nil
}

func habitArgs(h *model.Habit) ([]any, error) {
	tags, err := encodeJSON(h.Tags)
	if err != nil {
		return nil, err
	}
	var duration any
	if h.DurationMinutes != nil {
		duration = *h.DurationMinutes
	}

	return []any{
		h.ID, h.Title, h.Description, string(h.Category), int(h.Priority), int(h.Difficulty), string(h.Frequency),
		h.TargetDaysPerWeek, h.TargetTimesPerDay, h.PreferredTime, duration,
		h.CreatedAt.Format(time.RFC3339), h.CurrentStreak, h.LongestStreak, h.TotalCompletions, h.CompletionRate,
		h.WhyImportant, h.TriggerCue, h.Reward, h.EnvironmentSetup,
		boolToInt(h.IsActive), boolToInt(h.ReminderEnabled), tags, h.Notes,
	}, nil
}

func scanHabit(row scanner) (*model.Habit, error) {
	var (
		h         model.Habit
		desc      sql.NullString
		preferred sql.NullString
		duration  sql.NullInt64
		createdAt string
		why       sql.NullString
		cue       sql.NullString
		reward    sql.NullString
		env       sql.NullString
		active    int
		reminder  int
		tags      sql.NullString
		notes     sql.NullString
	)

	if err := row.Scan(
		&h.ID, &h.Title, &desc, &h.Category, &h.Priority, &h.Difficulty, &h.Frequency,
		&h.TargetDaysPerWeek, &h.TargetTimesPerDay, &preferred, &duration,
		&createdAt, &h.CurrentStreak, &h.LongestStreak, &h.TotalCompletions, &h.CompletionRate,
		&why, &cue, &reward, &env,
		&active, &reminder, &tags, &notes,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("habit scan: %w", err)
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("habit created_at parse: %w", err)
	}
	h.CreatedAt = created
	h.Description = desc.String
	h.PreferredTime = preferred.String
	if duration.Valid {
		v := int(duration.Int64)
		h.DurationMinutes = &v
	}
	h.WhyImportant = why.String
	h.TriggerCue = cue.String
	h.Reward = reward.String
	h.EnvironmentSetup = env.String
	h.IsActive = active != 0
	h.ReminderEnabled = reminder != 0
	h.Notes = notes.String

	if err := decodeJSON(tags, &h.Tags); err != nil {
		return nil, err
	}
	return &h, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
