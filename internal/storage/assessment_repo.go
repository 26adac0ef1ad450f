package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lifeplan/internal/model"
)

type AssessmentRepo struct {
	db *sql.DB
}

func NewAssessmentRepo(db *sql.DB) *AssessmentRepo {
	return &AssessmentRepo{db: db}
}

const assessmentColumns = `id, date, assessment_type, category_ratings, overall_satisfaction,
	biggest_wins, main_challenges, key_learnings, focus_areas,
	new_goal_ideas, habits_to_start, habits_to_stop,
	goals_completed, goals_abandoned, notes, created_at`

func (r *AssessmentRepo) Create(ctx context.Context, a *model.LifeAssessment) error {
	ratings := map[string]int{}
	for cat, rating := range a.CategoryRatings {
		ratings[string(cat)] = rating
	}
	ratingsJSON, err := encodeJSON(ratings)
	if err != nil {
		return err
	}
	wins, err := encodeJSON(a.BiggestWins)
	if err != nil {
		return err
	}
	challenges, err := encodeJSON(a.MainChallenges)
	if err != nil {
		return err
	}
	learnings, err := encodeJSON(a.KeyLearnings)
	if err != nil {
		return err
	}
	focus, err := encodeJSON(a.FocusAreas)
	if err != nil {
		return err
	}
	ideas, err := encodeJSON(a.NewGoalIdeas)
	if err != nil {
		return err
	}
	toStart, err := encodeJSON(a.HabitsToStart)
	if err != nil {
		return err
	}
	toStop, err := encodeJSON(a.HabitsToStop)
	if err != nil {
		return err
	}
	completed, err := encodeJSON(a.GoalsCompleted)
	if err != nil {
		return err
	}
	abandoned, err := encodeJSON(a.GoalsAbandoned)
	if err != nil {
		return err
	}

	var overall any
	if a.OverallSatisfaction != nil {
		overall = *a.OverallSatisfaction
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO life_assessments (`+assessmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, a.Date.Format(DateOnly), a.AssessmentType, ratingsJSON, overall,
		wins, challenges, learnings, focus,
		ideas, toStart, toStop,
		completed, abandoned, a.Notes, a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("assessment insert: %w", err)
	}
	return nil
}

// List returns assessments newest first. assessmentType filters when
// non-empty.
func (r *AssessmentRepo) List(ctx context.Context, assessmentType string) ([]model.LifeAssessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM life_assessments`
	var args []any
	if assessmentType != "" {
		query += ` WHERE assessment_type = ?`
		args = append(args, assessmentType)
	}
	query += ` ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("assessment list: %w", err)
	}
	defer rows.Close()

	var out []model.LifeAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("assessment rows: %w", err)
	}
	return out, nil
}

func scanAssessment(row scanner) (*model.LifeAssessment, error) {
	var (
		a          model.LifeAssessment
		day        string
		ratings    sql.NullString
		overall    sql.NullInt64
		wins       sql.NullString
		challenges sql.NullString
		learnings  sql.NullString
		focus      sql.NullString
		ideas      sql.NullString
		toStart    sql.NullString
		toStop     sql.NullString
		completed  sql.NullString
		abandoned  sql.NullString
		notes      sql.NullString
		createdAt  string
	)

	if err := row.Scan(
		&a.ID, &day, &a.AssessmentType, &ratings, &overall,
		&wins, &challenges, &learnings, &focus,
		&ideas, &toStart, &toStop,
		&completed, &abandoned, &notes, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("assessment scan: %w", err)
	}

	d, err := time.Parse(DateOnly, day)
	if err != nil {
		return nil, fmt.Errorf("assessment date parse: %w", err)
	}
	a.Date = d
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("assessment created_at parse: %w", err)
	}
	a.CreatedAt = created

	rawRatings := map[string]int{}
	if err := decodeJSON(ratings, &rawRatings); err != nil {
		return nil, err
	}
	if len(rawRatings) > 0 {
		a.CategoryRatings = make(map[model.LifeCategory]int, len(rawRatings))
		for cat, rating := range rawRatings {
			a.CategoryRatings[model.LifeCategory(cat)] = rating
		}
	}
	if overall.Valid {
		v := int(overall.Int64)
		a.OverallSatisfaction = &v
	}
	a.Notes = notes.String

	if err := decodeJSON(wins, &a.BiggestWins); err != nil {
		return nil, err
	}
	if err := decodeJSON(challenges, &a.MainChallenges); err != nil {
		return nil, err
	}
	if err := decodeJSON(learnings, &a.KeyLearnings); err != nil {
		return nil, err
	}
	if err := decodeJSON(focus, &a.FocusAreas); err != nil {
		return nil, err
	}
	if err := decodeJSON(ideas, &a.NewGoalIdeas); err != nil {
		return nil, err
	}
	if err := decodeJSON(toStart, &a.HabitsToStart); err != nil {
		return nil, err
	}
	if err := decodeJSON(toStop, &a.HabitsToStop); err != nil {
		return nil, err
	}
	if err := decodeJSON(completed, &a.GoalsCompleted); err != nil {
		return nil, err
	}
	if err := decodeJSON(abandoned, &a.GoalsAbandoned); err != nil {
		return nil, err
	}
	return &a, nil
}
