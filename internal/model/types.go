package model

import (
	"fmt"
	"strings"
)

// LifeCategory tags every goal, habit and assessment rating with the area of
// life it belongs to. The set is closed; stored values are the display labels.
type LifeCategory string

const (
	CategoryHealthFitness   LifeCategory = "Health & Fitness"
	CategoryCareerEducation LifeCategory = "Career & Education"
	CategoryRelationships   LifeCategory = "Relationships & Social"
	CategoryFinances        LifeCategory = "Finances & Money"
	CategoryPersonalGrowth  LifeCategory = "Personal Growth & Learning"
	CategoryHobbies         LifeCategory = "Hobbies & Recreation"
	CategorySpirituality    LifeCategory = "Spirituality & Mindfulness"
	CategoryHome            LifeCategory = "Home & Environment"
	CategoryFamily          LifeCategory = "Family & Parenting"
	CategoryCreativity      LifeCategory = "Creativity & Arts"
	CategoryCommunity       LifeCategory = "Community & Service"
	CategoryTravel          LifeCategory = "Travel & Adventure"
)

// AllCategories lists every category in declaration order.
var AllCategories = []LifeCategory{
	CategoryHealthFitness,
	CategoryCareerEducation,
	CategoryRelationships,
	CategoryFinances,
	CategoryPersonalGrowth,
	CategoryHobbies,
	CategorySpirituality,
	CategoryHome,
	CategoryFamily,
	CategoryCreativity,
	CategoryCommunity,
	CategoryTravel,
}

func (c LifeCategory) IsValid() bool {
	for _, v := range AllCategories {
		if c == v {
			return true
		}
	}
	return false
}

// ParseCategory accepts either the full label or a short keyword
// (health, career, relationships, finances, growth, hobbies, spirituality,
// home, family, creativity, community, travel).
func ParseCategory(input string) (LifeCategory, error) {
	s := strings.TrimSpace(input)
	if c := LifeCategory(s); c.IsValid() {
		return c, nil
	}
	switch strings.ToLower(s) {
	case "health", "fitness":
		return CategoryHealthFitness, nil
	case "career", "education", "work":
		return CategoryCareerEducation, nil
	case "relationships", "social":
		return CategoryRelationships, nil
	case "finances", "money", "finance":
		return CategoryFinances, nil
	case "growth", "learning":
		return CategoryPersonalGrowth, nil
	case "hobbies", "recreation":
		return CategoryHobbies, nil
	case "spirituality", "mindfulness":
		return CategorySpirituality, nil
	case "home", "environment":
		return CategoryHome, nil
	case "family", "parenting":
		return CategoryFamily, nil
	case "creativity", "arts", "art":
		return CategoryCreativity, nil
	case "community", "service":
		return CategoryCommunity, nil
	case "travel", "adventure":
		return CategoryTravel, nil
	default:
		return "", fmt.Errorf("invalid life category: %q", input)
	}
}

// Priority is ordered; scoring formulas depend on the integer values.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
	PriorityUrgent Priority = 4
)

func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Difficulty is ordered 1..5; scoring formulas depend on the integer values.
type Difficulty int

const (
	DifficultyVeryEasy Difficulty = 1
	DifficultyEasy     Difficulty = 2
	DifficultyModerate Difficulty = 3
	DifficultyHard     Difficulty = 4
	DifficultyVeryHard Difficulty = 5
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyVeryEasy && d <= DifficultyVeryHard
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyVeryEasy:
		return "Very Easy"
	case DifficultyEasy:
		return "Easy"
	case DifficultyModerate:
		return "Moderate"
	case DifficultyHard:
		return "Hard"
	case DifficultyVeryHard:
		return "Very Hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

type GoalStatus string

const (
	StatusNotStarted GoalStatus = "Not Started"
	StatusInProgress GoalStatus = "In Progress"
	StatusCompleted  GoalStatus = "Completed"
	StatusOnHold     GoalStatus = "On Hold"
	StatusCancelled  GoalStatus = "Cancelled"
)

func (s GoalStatus) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled:
		return true
	default:
		return false
	}
}

type HabitFrequency string

const (
	FrequencyDaily   HabitFrequency = "Daily"
	FrequencyWeekly  HabitFrequency = "Weekly"
	FrequencyMonthly HabitFrequency = "Monthly"
	FrequencyCustom  HabitFrequency = "Custom"
)

func (f HabitFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
		return true
	default:
		return false
	}
}

func ParseFrequency(input string) (HabitFrequency, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "daily":
		return FrequencyDaily, nil
	case "weekly":
		return FrequencyWeekly, nil
	case "monthly":
		return FrequencyMonthly, nil
	case "custom":
		return FrequencyCustom, nil
	default:
		return "", fmt.Errorf("invalid habit frequency: %q", input)
	}
}
