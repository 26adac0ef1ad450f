package model

import "time"

// Goal is a single life goal. Derived scoring over goals lives in the engine
// package; the struct itself is plain data.
//
// ProgressPercentage stays within [0,100]. Status Completed should come with
// CompletionDate set; the store does not enforce that, the caller does.
type Goal struct {
	ID          string
	Title       string
	Description string
	Category    LifeCategory
	Priority    Priority
	Difficulty  Difficulty
	Status      GoalStatus

	CreatedAt          time.Time
	TargetDate         *time.Time
	CompletionDate     *time.Time
	ProgressPercentage float64

	Milestones         []string
	ActionSteps        []string
	RequiredResources  []string
	PotentialObstacles []string

	WhyImportant   string
	SuccessMetrics []string
	Rewards        []string

	EstimatedHours *float64
	Tags           []string
	Notes          string
}

// Habit is a recurring practice. CurrentStreak, LongestStreak,
// TotalCompletions and CompletionRate are materialized views over the
// completion log; the store recomputes them when a completion is recorded
// and they are never edited directly. CurrentStreak <= LongestStreak holds
// after every recompute.
type Habit struct {
	ID          string
	Title       string
	Description string
	Category    LifeCategory
	Priority    Priority
	Difficulty  Difficulty
	Frequency   HabitFrequency

	TargetDaysPerWeek int
	TargetTimesPerDay int
	PreferredTime     string
	DurationMinutes   *int

	CreatedAt        time.Time
	CurrentStreak    int
	LongestStreak    int
	TotalCompletions int
	CompletionRate   float64 // percent, capped at 100

	WhyImportant     string
	TriggerCue       string
	Reward           string
	EnvironmentSetup string

	IsActive        bool
	ReminderEnabled bool
	Tags            []string
	Notes           string
}

// HabitCompletion is one row of the append-only completion log.
// Date is a calendar date ("2006-01-02"); Time is "HH:MM" or empty when the
// completion was not timed. The (HabitID, Date, Time) triple is unique and
// repeated identical inserts are no-ops.
type HabitCompletion struct {
	ID      int64
	HabitID string
	Date    string
	Time    string
	Note    string
}

// DailyEntry is the journal record for one calendar date. Writing a second
// entry for the same date replaces the first entirely.
type DailyEntry struct {
	Date time.Time

	CompletedHabits []string
	GoalProgress    map[string]float64

	DailyWins       []string
	Challenges      []string
	Lessons         []string
	GratitudeItems  []string

	// Wellness ratings on a 1-10 scale; 0 means not recorded.
	EnergyLevel     int
	MoodRating      int
	StressLevel     int
	SleepHours      *float64
	ExerciseMinutes *int

	TomorrowPriorities []string
	Notes              string

	CreatedAt time.Time
}

// LifeAssessment is a periodic self-review (weekly, monthly, ...).
type LifeAssessment struct {
	ID             string
	Date           time.Time
	AssessmentType string

	CategoryRatings     map[LifeCategory]int // 1-10 per rated category
	OverallSatisfaction *int

	BiggestWins    []string
	MainChallenges []string
	KeyLearnings   []string

	FocusAreas    []LifeCategory
	NewGoalIdeas  []string
	HabitsToStart []string
	HabitsToStop  []string

	GoalsCompleted []string
	GoalsAbandoned []string

	Notes     string
	CreatedAt time.Time
}

// UserProfile is a singleton: exactly one per installation.
type UserProfile struct {
	Name     string
	Timezone string

	PreferredReminderTimes  []string
	NotificationPreferences map[string]bool

	PrimaryLifeFocuses []LifeCategory // at most 5
	LifeVision         string
	CoreValues         []string

	WeeklyReviewDay   string
	MonthlyReviewDate int

	CreatedAt time.Time
}
