package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lifeplan/internal/model"
)

type GoalRepo struct {
	db *sql.DB
}

func NewGoalRepo(db *sql.DB) *GoalRepo {
	return &GoalRepo{db: db}
}

const goalColumns = `id, title, description, category, priority, difficulty, status,
	created_at, target_date, completion_date, progress_percentage,
	milestones, action_steps, required_resources, potential_obstacles,
	why_important, success_metrics, rewards, estimated_hours, tags, notes`

func (r *GoalRepo) Create(ctx context.Context, g *model.Goal) error {
	args, err := goalArgs(g)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		return fmt.Errorf("goal insert: %w", err)
	}
	return nil
}

func (r *GoalRepo) Get(ctx context.Context, id string) (*model.Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	return scanGoal(row)
}

// ListAll returns every goal, highest priority first, newest first within a
// priority.
func (r *GoalRepo) ListAll(ctx context.Context) ([]model.Goal, error) {
	return r.list(ctx, `SELECT `+goalColumns+` FROM goals ORDER BY priority DESC, created_at DESC`)
}

func (r *GoalRepo) ListByCategory(ctx context.Context, category model.LifeCategory) ([]model.Goal, error) {
	return r.list(ctx, `SELECT `+goalColumns+` FROM goals WHERE category = ? ORDER BY priority DESC, created_at DESC`, string(category))
}

func (r *GoalRepo) ListByStatus(ctx context.Context, status model.GoalStatus) ([]model.Goal, error) {
	return r.list(ctx, `SELECT `+goalColumns+` FROM goals WHERE status = ? ORDER BY priority DESC, created_at DESC`, string(status))
}

func (r *GoalRepo) Update(ctx context.Context, g *model.Goal) error {
	args, err := goalArgs(g)
	if err != nil {
		return err
	}
	// goalArgs puts id first; rotate it to the WHERE position.
	args = append(args[1:], args[0])
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals SET title=?, description=?, category=?, priority=?, difficulty=?, status=?,
			created_at=?, target_date=?, completion_date=?, progress_percentage=?,
			milestones=?, action_steps=?, required_resources=?, potential_obstacles=?,
			why_important=?, success_metrics=?, rewards=?, estimated_hours=?, tags=?, notes=?
		WHERE id=?
	`, args...)
	if err != nil {
		return fmt.Errorf("goal update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("goal update rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("goal %s not found", g.ID)
	}
	return nil
}

func (r *GoalRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("goal delete: %w", err)
	}
	return nil
}

func (r *GoalRepo) list(ctx context.Context, query string, args ...any) ([]model.Goal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("goal list: %w", err)
	}
	defer rows.Close()

	var out []model.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goal list rows: %w", err)
	}
	return out, nil
}

func goalArgs(g *model.Goal) ([]any, error) {
	milestones, err := encodeJSON(g.Milestones)
	if err != nil {
		return nil, err
	}
	actionSteps, err := encodeJSON(g.ActionSteps)
	if err != nil {
		return nil, err
	}
	resources, err := encodeJSON(g.RequiredResources)
	if err != nil {
		return nil, err
	}
	obstacles, err := encodeJSON(g.PotentialObstacles)
	if err != nil {
		return nil, err
	}
	metrics, err := encodeJSON(g.SuccessMetrics)
	if err != nil {
		return nil, err
	}
	rewards, err := encodeJSON(g.Rewards)
	if err != nil {
		return nil, err
	}
	tags, err := encodeJSON(g.Tags)
	if err != nil {
		return nil, err
	}

	var target, completion any
	if g.TargetDate != nil {
		target = g.TargetDate.Format(DateOnly)
	}
	if g.CompletionDate != nil {
		completion = g.CompletionDate.Format(time.RFC3339)
	}
	var estimated any
	if g.EstimatedHours != nil {
		estimated = *g.EstimatedHours
	}

	return []any{
		g.ID, g.Title, g.Description, string(g.Category), int(g.Priority), int(g.Difficulty), string(g.Status),
		g.CreatedAt.Format(time.RFC3339), target, completion, g.ProgressPercentage,
		milestones, actionSteps, resources, obstacles,
		g.WhyImportant, metrics, rewards, estimated, tags, g.Notes,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner) (*model.Goal, error) {
	var (
		g          model.Goal
		desc       sql.NullString
		createdAt  string
		target     sql.NullString
		completion sql.NullString
		milestones sql.NullString
		steps      sql.NullString
		resources  sql.NullString
		obstacles  sql.NullString
		why        sql.NullString
		metrics    sql.NullString
		rewards    sql.NullString
		estimated  sql.NullFloat64
		tags       sql.NullString
		notes      sql.NullString
	)

	if err := row.Scan(
		&g.ID, &g.Title, &desc, &g.Category, &g.Priority, &g.Difficulty, &g.Status,
		&createdAt, &target, &completion, &g.ProgressPercentage,
		&milestones, &steps, &resources, &obstacles,
		&why, &metrics, &rewards, &estimated, &tags, &notes,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("goal scan: %w", err)
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("goal created_at parse: %w", err)
	}
	g.CreatedAt = created
	if target.Valid && target.String != "" {
		d, err := time.Parse(DateOnly, target.String)
		if err != nil {
			return nil, fmt.Errorf("goal target_date parse: %w", err)
		}
		g.TargetDate = &d
	}
	if completion.Valid && completion.String != "" {
		ts, err := time.Parse(time.RFC3339, completion.String)
		if err != nil {
			return nil, fmt.Errorf("goal completion_date parse: %w", err)
		}
		g.CompletionDate = &ts
	}
	if estimated.Valid {
		v := estimated.Float64
		g.EstimatedHours = &v
	}
	g.Description = desc.String
	g.WhyImportant = why.String
	g.Notes = notes.String

	if err := decodeJSON(milestones, &g.Milestones); err != nil {
		return nil, err
	}
	if err := decodeJSON(steps, &g.ActionSteps); err != nil {
		return nil, err
	}
	if err := decodeJSON(resources, &g.RequiredResources); err != nil {
		return nil, err
	}
	if err := decodeJSON(obstacles, &g.PotentialObstacles); err != nil {
		return nil, err
	}
	if err := decodeJSON(metrics, &g.SuccessMetrics); err != nil {
		return nil, err
	}
	if err := decodeJSON(rewards, &g.Rewards); err != nil {
		return nil, err
	}
	if err := decodeJSON(tags, &g.Tags); err != nil {
		return nil, err
	}
	return &g, nil
}
