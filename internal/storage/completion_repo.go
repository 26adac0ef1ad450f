package storage

import (
	"context"
	"database/sql"
	"fmt"

	"lifeplan/internal/model"
)

type CompletionRepo struct {
	db *sql.DB
}

func NewCompletionRepo(db *sql.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

// Insert appends a completion record. A repeated (habit, date, time) triple
// is ignored, so the log never carries duplicates.
func (r *CompletionRepo) Insert(ctx context.Context, c model.HabitCompletion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO habit_completions (habit_id, completion_date, completion_time, notes)
		VALUES (?, ?, ?, ?)
	`, c.HabitID, c.Date, c.Time, c.Note)
	if err != nil {
		return fmt.Errorf("completion insert: %w", err)
	}
	return nil
}

// ListByHabit returns completions for a habit, newest date first. Either
// bound may be empty ("" = unbounded); bounds are inclusive DateOnly strings.
func (r *CompletionRepo) ListByHabit(ctx context.Context, habitID, startDate, endDate string) ([]model.HabitCompletion, error) {
	query := `SELECT id, habit_id, completion_date, completion_time, notes FROM habit_completions WHERE habit_id = ?`
	args := []any{habitID}
	if startDate != "" {
		query += ` AND completion_date >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		query += ` AND completion_date <= ?`
		args = append(args, endDate)
	}
	query += ` ORDER BY completion_date DESC, completion_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	return scanCompletions(rows)
}

func scanCompletions(rows *sql.Rows) ([]model.HabitCompletion, error) {
	var out []model.HabitCompletion
	for rows.Next() {
		var (
			c    model.HabitCompletion
			note sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Date, &c.Time, &note); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		c.Note = note.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}
