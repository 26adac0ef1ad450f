package engine

import (
	"database/sql"

	"lifeplan/internal/storage"
)

// Service bundles the store repositories behind the analytics and
// create/update operations. It keeps no state of its own: every computation
// re-reads from the store, so results always reflect the latest writes.
type Service struct {
	db          *sql.DB
	goals       *storage.GoalRepo
	habits      *storage.HabitRepo
	completions *storage.CompletionRepo
	entries     *storage.EntryRepo
	assessments *storage.AssessmentRepo
	profile     *storage.ProfileRepo
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:          db,
		goals:       storage.NewGoalRepo(db),
		habits:      storage.NewHabitRepo(db),
		completions: storage.NewCompletionRepo(db),
		entries:     storage.NewEntryRepo(db),
		assessments: storage.NewAssessmentRepo(db),
		profile:     storage.NewProfileRepo(db),
	}
}

func (s *Service) GoalRepo() *storage.GoalRepo             { return s.goals }
func (s *Service) HabitRepo() *storage.HabitRepo           { return s.habits }
func (s *Service) CompletionRepo() *storage.CompletionRepo { return s.completions }
func (s *Service) EntryRepo() *storage.EntryRepo           { return s.entries }
func (s *Service) AssessmentRepo() *storage.AssessmentRepo { return s.assessments }
func (s *Service) ProfileRepo() *storage.ProfileRepo       { return s.profile }
