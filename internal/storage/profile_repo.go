package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lifeplan/internal/model"
)

// profileRowID pins the singleton profile to one row.
const profileRowID = 1

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Set creates or replaces the singleton profile.
func (r *ProfileRepo) Set(ctx context.Context, p *model.UserProfile) error {
	reminders, err := encodeJSON(p.PreferredReminderTimes)
	if err != nil {
		return err
	}
	notifications, err := encodeJSON(p.NotificationPreferences)
	if err != nil {
		return err
	}
	focuses, err := encodeJSON(p.PrimaryLifeFocuses)
	if err != nil {
		return err
	}
	values, err := encodeJSON(p.CoreValues)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO user_profile (id, name, timezone, preferred_reminder_times,
			notification_preferences, primary_life_focuses, life_vision, core_values,
			weekly_review_day, monthly_review_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		profileRowID, p.Name, p.Timezone, reminders,
		notifications, focuses, p.LifeVision, values,
		p.WeeklyReviewDay, p.MonthlyReviewDate, p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("profile set: %w", err)
	}
	return nil
}

// Get returns the profile, or nil when none has been created yet.
func (r *ProfileRepo) Get(ctx context.Context) (*model.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, timezone, preferred_reminder_times, notification_preferences,
			primary_life_focuses, life_vision, core_values,
			weekly_review_day, monthly_review_date, created_at
		FROM user_profile WHERE id = ?
	`, profileRowID)

	var (
		p             model.UserProfile
		reminders     sql.NullString
		notifications sql.NullString
		focuses       sql.NullString
		vision        sql.NullString
		values        sql.NullString
		createdAt     string
	)
	if err := row.Scan(
		&p.Name, &p.Timezone, &reminders, &notifications,
		&focuses, &vision, &values,
		&p.WeeklyReviewDay, &p.MonthlyReviewDate, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("profile created_at parse: %w", err)
	}
	p.CreatedAt = created
	p.LifeVision = vision.String

	if err := decodeJSON(reminders, &p.PreferredReminderTimes); err != nil {
		return nil, err
	}
	if err := decodeJSON(notifications, &p.NotificationPreferences); err != nil {
		return nil, err
	}
	if err := decodeJSON(focuses, &p.PrimaryLifeFocuses); err != nil {
		return nil, err
	}
	if err := decodeJSON(values, &p.CoreValues); err != nil {
		return nil, err
	}
	return &p, nil
}
