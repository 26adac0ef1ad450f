package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lifeplan/internal/model"
)

type CreateGoalInput struct {
	Title       string
	Description string
	Category    model.LifeCategory
	Priority    model.Priority
	Difficulty  model.Difficulty
	TargetDate  *time.Time

	Milestones        []string
	ActionSteps       []string
	RequiredResources []string
	WhyImportant      string
	EstimatedHours    *float64
	Tags              []string
}

func (s *Service) CreateGoal(ctx context.Context, in CreateGoalInput) (*model.Goal, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if !in.Category.IsValid() {
		return nil, ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", in.Category)}
	}
	if !in.Priority.IsValid() {
		in.Priority = model.PriorityMedium
	}
	if !in.Difficulty.IsValid() {
		in.Difficulty = model.DifficultyModerate
	}

	g := &model.Goal{
		ID:                uuid.NewString(),
		Title:             title,
		Description:       in.Description,
		Category:          in.Category,
		Priority:          in.Priority,
		Difficulty:        in.Difficulty,
		Status:            model.StatusNotStarted,
		CreatedAt:         time.Now().UTC(),
		TargetDate:        in.TargetDate,
		Milestones:        in.Milestones,
		ActionSteps:       in.ActionSteps,
		RequiredResources: in.RequiredResources,
		WhyImportant:      in.WhyImportant,
		EstimatedHours:    in.EstimatedHours,
		Tags:              in.Tags,
	}
	if err := s.goals.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateGoalProgress sets a goal's progress percentage, clamped to [0,100].
// A not-started goal moves to in-progress; reaching 100 does not complete
// the goal on its own, CompleteGoal does that.
func (s *Service) UpdateGoalProgress(ctx context.Context, id string, progress float64) (*model.Goal, error) {
	g, err := s.goals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("goal %s not found", id)
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	g.ProgressPercentage = progress
	if g.Status == model.StatusNotStarted && progress > 0 {
		g.Status = model.StatusInProgress
	}
	if err := s.goals.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// CompleteGoal marks a goal completed, stamping the completion time and
// forcing progress to 100.
func (s *Service) CompleteGoal(ctx context.Context, id string) (*model.Goal, error) {
	g, err := s.goals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("goal %s not found", id)
	}
	if g.Status == model.StatusCompleted {
		return nil, fmt.Errorf("goal %s is already completed", id)
	}

	now := time.Now().UTC()
	g.Status = model.StatusCompleted
	g.CompletionDate = &now
	g.ProgressPercentage = 100
	if err := s.goals.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

type CreateHabitInput struct {
	Title       string
	Description string
	Category    model.LifeCategory
	Priority    model.Priority
	Difficulty  model.Difficulty
	Frequency   model.HabitFrequency

	TargetDaysPerWeek int
	TargetTimesPerDay int
	PreferredTime     string
	DurationMinutes   *int

	WhyImportant     string
	TriggerCue       string
	Reward           string
	EnvironmentSetup string
	Tags             []string
}

func (s *Service) CreateHabit(ctx context.Context, in CreateHabitInput) (*model.Habit, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if !in.Category.IsValid() {
		return nil, ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", in.Category)}
	}
	if !in.Priority.IsValid() {
		in.Priority = model.PriorityMedium
	}
	if !in.Difficulty.IsValid() {
		in.Difficulty = model.DifficultyModerate
	}
	if !in.Frequency.IsValid() {
		in.Frequency = model.FrequencyDaily
	}
	if in.TargetDaysPerWeek < 1 || in.TargetDaysPerWeek > 7 {
		in.TargetDaysPerWeek = 7
	}
	if in.TargetTimesPerDay < 1 {
		in.TargetTimesPerDay = 1
	}

	h := &model.Habit{
		ID:                uuid.NewString(),
		Title:             title,
		Description:       in.Description,
		Category:          in.Category,
		Priority:          in.Priority,
		Difficulty:        in.Difficulty,
		Frequency:         in.Frequency,
		TargetDaysPerWeek: in.TargetDaysPerWeek,
		TargetTimesPerDay: in.TargetTimesPerDay,
		PreferredTime:     in.PreferredTime,
		DurationMinutes:   in.DurationMinutes,
		CreatedAt:         time.Now().UTC(),
		WhyImportant:      in.WhyImportant,
		TriggerCue:        in.TriggerCue,
		Reward:            in.Reward,
		EnvironmentSetup:  in.EnvironmentSetup,
		IsActive:          true,
		ReminderEnabled:   true,
		Tags:              in.Tags,
	}
	if err := s.habits.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// SaveDailyEntry validates and upserts the journal entry for its date.
// Wellness ratings must be 1-10 when set (0 = unset).
func (s *Service) SaveDailyEntry(ctx context.Context, e *model.DailyEntry) error {
	if e.Date.IsZero() {
		return ValidationError{Field: "date", Reason: "required"}
	}
	for _, r := range []struct {
		name  string
		value int
	}{
		{"energy level", e.EnergyLevel},
		{"mood rating", e.MoodRating},
		{"stress level", e.StressLevel},
	} {
		if r.value < 0 || r.value > 10 {
			return ValidationError{Field: r.name, Reason: "must be between 1 and 10"}
		}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return s.entries.Upsert(ctx, e)
}

type CreateAssessmentInput struct {
	Date            time.Time
	AssessmentType  string
	CategoryRatings map[model.LifeCategory]int
	Overall         *int
	FocusAreas      []model.LifeCategory
	Notes           string
}

func (s *Service) CreateAssessment(ctx context.Context, in CreateAssessmentInput) (*model.LifeAssessment, error) {
	if in.Date.IsZero() {
		return nil, ValidationError{Field: "date", Reason: "required"}
	}
	assessmentType := strings.TrimSpace(in.AssessmentType)
	if assessmentType == "" {
		return nil, ValidationError{Field: "assessment type", Reason: "required"}
	}
	for cat, rating := range in.CategoryRatings {
		if !cat.IsValid() {
			return nil, ValidationError{Field: "category rating", Reason: fmt.Sprintf("unknown category %q", cat)}
		}
		if rating < 1 || rating > 10 {
			return nil, ValidationError{Field: "category rating", Reason: "must be between 1 and 10"}
		}
	}

	a := &model.LifeAssessment{
		ID:                  uuid.NewString(),
		Date:                in.Date,
		AssessmentType:      assessmentType,
		CategoryRatings:     in.CategoryRatings,
		OverallSatisfaction: in.Overall,
		FocusAreas:          in.FocusAreas,
		Notes:               in.Notes,
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.assessments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SetProfile creates or replaces the singleton profile. At most five primary
// life focuses are kept.
func (s *Service) SetProfile(ctx context.Context, p *model.UserProfile) error {
	name, err := normalizeTitle(p.Name)
	if err != nil {
		return ValidationError{Field: "name", Reason: "required"}
	}
	p.Name = name
	if len(p.PrimaryLifeFocuses) > 5 {
		p.PrimaryLifeFocuses = p.PrimaryLifeFocuses[:5]
	}
	if p.Timezone == "" {
		p.Timezone = "UTC"
	}
	if p.WeeklyReviewDay == "" {
		p.WeeklyReviewDay = "Sunday"
	}
	if p.MonthlyReviewDate < 1 || p.MonthlyReviewDate > 28 {
		p.MonthlyReviewDate = 1
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return s.profile.Set(ctx, p)
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "required"}
	}
	return t, nil
}
