package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lifeplan/internal/model"
)

// SuccessProbability estimates how likely a habit is to stick, in [0,1].
// It averages five factors: completion rate, streak momentum, how the rate
// compares to what the difficulty predicts, habit age (66 days to full
// formation), and environment design (cue, reward, setup).
func SuccessProbability(h model.Habit) float64 {
	rateFactor := h.CompletionRate / 100.0

	streakFactor := 0.0
	if h.LongestStreak > 0 {
		streakFactor = float64(h.CurrentStreak) / float64(h.LongestStreak)
		if streakFactor > 1 {
			streakFactor = 1
		}
	}

	expectedRate := 1.0 - float64(int(h.Difficulty)-1)*0.15
	if expectedRate < 0.2 {
		expectedRate = 0.2
	}
	alignmentFactor := h.CompletionRate / (expectedRate * 100)
	if alignmentFactor > 1 {
		alignmentFactor = 1
	}

	ageFactor := float64(daysSince(h.CreatedAt)) / 66.0
	if ageFactor > 1 {
		ageFactor = 1
	}
	if ageFactor < 0 {
		ageFactor = 0
	}

	envFactor := 0.7
	if h.TriggerCue != "" {
		envFactor += 0.1
	}
	if h.Reward != "" {
		envFactor += 0.1
	}
	if h.EnvironmentSetup != "" {
		envFactor += 0.1
	}
	if envFactor > 1 {
		envFactor = 1
	}

	return mean([]float64{rateFactor, streakFactor, alignmentFactor, ageFactor, envFactor})
}

// Time-of-day buckets for completion clock times.
const (
	bucketMorning   = "morning"   // 05:00-11:59
	bucketAfternoon = "afternoon" // 12:00-16:59
	bucketEvening   = "evening"   // 17:00-20:59
	bucketNight     = "night"
)

var bucketOrder = []string{bucketMorning, bucketAfternoon, bucketEvening, bucketNight}

func timeBucket(clock string) string {
	hourStr, _, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok {
		return ""
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return ""
	}
	switch {
	case hour >= 5 && hour < 12:
		return bucketMorning
	case hour >= 12 && hour < 17:
		return bucketAfternoon
	case hour >= 17 && hour < 21:
		return bucketEvening
	default:
		return bucketNight
	}
}

// rankTimeBuckets orders buckets by completion count, highest first.
// Malformed or missing clock times are ignored; buckets with no completions
// are omitted. Ties resolve in fixed bucket order for determinism.
func rankTimeBuckets(completions []model.HabitCompletion) []string {
	counts := map[string]int{}
	for _, c := range completions {
		if b := timeBucket(c.Time); b != "" {
			counts[b]++
		}
	}

	var ranked []string
	for _, b := range bucketOrder {
		if counts[b] > 0 {
			ranked = append(ranked, b)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return counts[ranked[a]] > counts[ranked[b]] })
	return ranked
}

// OptimizeHabit suggests up to four adjustments for a habit, drawn from its
// completion rate, streak history, difficulty-success mismatch and the
// time-of-day pattern of its completion log.
func (s *Service) OptimizeHabit(ctx context.Context, h model.Habit) ([]string, error) {
	var suggestions []string

	if h.CompletionRate < 30 {
		suggestions = append(suggestions,
			"Start smaller - reduce the habit to just 1-2 minutes",
			"Attach this habit to an existing strong habit (habit stacking)",
			"Remove all friction - make it as easy as possible",
		)
	} else if h.CompletionRate < 60 {
		suggestions = append(suggestions,
			"Optimize your environment to make the habit obvious",
			"Set up a clear reward system",
			"Track your progress visually (calendar, chart)",
		)
	}

	if h.LongestStreak < 7 {
		suggestions = append(suggestions, "Focus on building a 7-day streak before increasing intensity")
	} else if float64(h.CurrentStreak) < float64(h.LongestStreak)*0.5 {
		suggestions = append(suggestions, "Review what made your longest streak successful and replicate it")
	}

	if h.CompletionRate/(float64(h.Difficulty)*20) < 0.8 {
		suggestions = append(suggestions, "Consider reducing the difficulty level to build consistency first")
	}

	if h.PreferredTime != "" {
		completions, err := s.completions.ListByHabit(ctx, h.ID, "", "")
		if err != nil {
			return nil, err
		}
		if best := rankTimeBuckets(completions); len(best) > 0 && !inTopTwo(best, preferredBucket(h.PreferredTime)) {
			suggestions = append(suggestions,
				fmt.Sprintf("Consider shifting to %s - your most successful time", best[0]))
		}
	}

	if len(suggestions) > 4 {
		suggestions = suggestions[:4]
	}
	return suggestions, nil
}

// preferredBucket normalizes a preferred-time value, which may be either a
// bucket name ("morning") or a clock time ("07:30").
func preferredBucket(preferred string) string {
	p := strings.ToLower(strings.TrimSpace(preferred))
	for _, b := range bucketOrder {
		if p == b {
			return b
		}
	}
	return timeBucket(preferred)
}

func inTopTwo(ranked []string, bucket string) bool {
	for i, b := range ranked {
		if i >= 2 {
			break
		}
		if b == bucket {
			return true
		}
	}
	return false
}
