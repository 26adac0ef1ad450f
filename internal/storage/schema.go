package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL,
			priority INTEGER NOT NULL,
			difficulty INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'Not Started',
			created_at TEXT NOT NULL,
			target_date TEXT,
			completion_date TEXT,
			progress_percentage REAL DEFAULT 0.0,
			milestones TEXT,
			action_steps TEXT,
			required_resources TEXT,
			potential_obstacles TEXT,
			why_important TEXT,
			success_metrics TEXT,
			rewards TEXT,
			estimated_hours REAL,
			tags TEXT,
			notes TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS habits (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL,
			priority INTEGER NOT NULL,
			difficulty INTEGER NOT NULL,
			frequency TEXT NOT NULL,
			target_days_per_week INTEGER DEFAULT 7,
			target_times_per_day INTEGER DEFAULT 1,
			preferred_time TEXT,
			duration_minutes INTEGER,
			created_at TEXT NOT NULL,
			current_streak INTEGER DEFAULT 0,
			longest_streak INTEGER DEFAULT 0,
			total_completions INTEGER DEFAULT 0,
			completion_rate REAL DEFAULT 0.0,
			why_important TEXT,
			trigger_cue TEXT,
			reward TEXT,
			environment_setup TEXT,
			is_active INTEGER DEFAULT 1,
			reminder_enabled INTEGER DEFAULT 1,
			tags TEXT,
			notes TEXT
		);`,
		// completion_time defaults to '' rather than NULL so the UNIQUE
		// triple also dedupes untimed completions (NULLs are distinct in
		// sqlite unique constraints).
		`CREATE TABLE IF NOT EXISTS habit_completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			habit_id TEXT NOT NULL,
			completion_date TEXT NOT NULL,
			completion_time TEXT NOT NULL DEFAULT '',
			notes TEXT,
			FOREIGN KEY (habit_id) REFERENCES habits (id),
			UNIQUE(habit_id, completion_date, completion_time)
		);`,
		`CREATE TABLE IF NOT EXISTS daily_entries (
			date TEXT PRIMARY KEY,
			completed_habits TEXT,
			goal_progress TEXT,
			daily_wins TEXT,
			challenges_faced TEXT,
			lessons_learned TEXT,
			gratitude_items TEXT,
			energy_level INTEGER,
			mood_rating INTEGER,
			stress_level INTEGER,
			sleep_hours REAL,
			exercise_minutes INTEGER,
			tomorrow_priorities TEXT,
			notes TEXT,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS life_assessments (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			assessment_type TEXT NOT NULL,
			category_ratings TEXT,
			overall_satisfaction INTEGER,
			biggest_wins TEXT,
			main_challenges TEXT,
			key_learnings TEXT,
			focus_areas TEXT,
			new_goal_ideas TEXT,
			habits_to_start TEXT,
			habits_to_stop TEXT,
			goals_completed TEXT,
			goals_abandoned TEXT,
			notes TEXT,
			created_at TEXT NOT NULL
		);`,
		// Single-row table; the id=1 row is the profile.
		`CREATE TABLE IF NOT EXISTS user_profile (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			timezone TEXT DEFAULT 'UTC',
			preferred_reminder_times TEXT,
			notification_preferences TEXT,
			primary_life_focuses TEXT,
			life_vision TEXT,
			core_values TEXT,
			weekly_review_day TEXT DEFAULT 'Sunday',
			monthly_review_date INTEGER DEFAULT 1,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_goals_status ON goals(status);`,
		`CREATE INDEX IF NOT EXISTS idx_goals_category ON goals(category);`,
		`CREATE INDEX IF NOT EXISTS idx_habits_active ON habits(is_active);`,
		`CREATE INDEX IF NOT EXISTS idx_habit_completions_habit_date ON habit_completions(habit_id, completion_date);`,
		`CREATE INDEX IF NOT EXISTS idx_life_assessments_date ON life_assessments(date);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
