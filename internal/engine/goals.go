package engine

import (
	"sort"

	"lifeplan/internal/model"
)

// DifficultyScore rates how demanding a goal currently is, in [0,1]. The
// declared difficulty sets the base; approaching target dates, long action
// lists and heavy resource needs push it up.
func DifficultyScore(g model.Goal) float64 {
	score := float64(g.Difficulty) * 0.2

	if g.TargetDate != nil {
		remaining := daysUntil(*g.TargetDate)
		switch {
		case remaining < 7:
			score += 0.3
		case remaining < 30:
			score += 0.2
		case remaining < 90:
			score += 0.1
		}
	}

	switch steps := len(g.ActionSteps); {
	case steps > 10:
		score += 0.2
	case steps > 5:
		score += 0.1
	}

	if len(g.RequiredResources) > 3 {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

var categoryBreakdownTips = map[model.LifeCategory][]string{
	model.CategoryHealthFitness: {
		"Set specific, measurable targets (e.g., walk 10,000 steps daily)",
		"Plan your workout schedule in advance",
		"Track nutrition and sleep patterns",
	},
	model.CategoryCareerEducation: {
		"Identify required skills and create a learning plan",
		"Network with professionals in your target field",
		"Set up regular progress reviews with a mentor or supervisor",
	},
	model.CategoryFinances: {
		"Create a detailed budget breakdown",
		"Set up automatic savings transfers",
		"Track expenses weekly",
	},
	model.CategoryRelationships: {
		"Schedule regular quality time",
		"Practice active listening techniques",
		"Express appreciation daily",
	},
}

// SuggestBreakdown proposes up to five concrete steps for splitting a goal
// into something actionable, based on remaining time, difficulty tier and
// category.
func SuggestBreakdown(g model.Goal) []string {
	var suggestions []string

	if g.TargetDate != nil {
		remaining := daysUntil(*g.TargetDate)
		switch {
		case remaining > 90:
			suggestions = append(suggestions, "Break this long-term goal into quarterly milestones")
		case remaining > 30:
			suggestions = append(suggestions, "Create weekly checkpoints to track progress")
		default:
			suggestions = append(suggestions, "Define daily actions to achieve this goal")
		}
	}

	switch g.Difficulty {
	case model.DifficultyVeryHard:
		suggestions = append(suggestions,
			"Start with the smallest possible step to build momentum",
			"Identify potential obstacles and create contingency plans",
			"Consider finding an accountability partner or mentor",
		)
	case model.DifficultyHard:
		suggestions = append(suggestions,
			"Break into 3-5 major milestones",
			"Allocate buffer time for unexpected challenges",
		)
	}

	if tips, ok := categoryBreakdownTips[g.Category]; ok {
		suggestions = append(suggestions, tips[:2]...)
	}

	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}

// Prioritize orders goals by composite urgency, best first. The sort is
// stable: goals with equal scores keep their input order.
func Prioritize(goals []model.Goal) []model.Goal {
	out := make([]model.Goal, len(goals))
	copy(out, goals)

	scores := make([]float64, len(out))
	for i := range out {
		scores[i] = priorityScore(out[i])
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	ranked := make([]model.Goal, len(out))
	for i, j := range idx {
		ranked[i] = out[j]
	}
	return ranked
}

func priorityScore(g model.Goal) float64 {
	score := float64(g.Priority) * 25

	if g.TargetDate != nil {
		remaining := daysUntil(*g.TargetDate)
		switch {
		case remaining <= 7:
			score += 50
		case remaining <= 30:
			score += 30
		case remaining <= 90:
			score += 15
		}
	}

	if g.ProgressPercentage > 50 {
		score += 20
	} else if g.ProgressPercentage > 0 {
		score += 10
	}

	// Easier goals get a slight boost.
	score += float64(6-int(g.Difficulty)) * 5

	if g.Status == model.StatusOnHold {
		score -= 30
	} else if g.Status == model.StatusNotStarted && daysSince(g.CreatedAt) > 30 {
		score -= 20
	}

	return score
}
