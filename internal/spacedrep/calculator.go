package spacedrep

import (
	"math"
	"time"

	"github.com/abhisek/cadence/internal/calendar"
)

// ReviewInput is the slice of a study item the calculators read.
type ReviewInput struct {
	RecallScore   int
	LastReviewed  time.Time // zero means "now"
	SuccessStreak int
}

// normalize clamps out-of-range inputs instead of rejecting them.
func (in ReviewInput) normalize(now time.Time) ReviewInput {
	in.RecallScore = ClampScore(in.RecallScore)
	if in.SuccessStreak < 0 {
		in.SuccessStreak = 0
	}
	if in.LastReviewed.IsZero() {
		in.LastReviewed = now
	}
	return in
}

// ClampScore bounds a recall score to [0, 100].
func ClampScore(score int) int {
	return min(max(score, MinRecallScore), MaxRecallScore)
}

// ScoreFactor maps a recall score to a multiplier in [0.5, 1.5].
// Higher confidence stretches the interval.
func ScoreFactor(score int) float64 {
	return 0.5 + float64(ClampScore(score))/100.0
}

// BaseInterval returns the unscaled interval in days for a success streak.
func BaseInterval(streak int) int {
	if streak < 0 {
		streak = 0
	}
	if streak < TableStreakLimit {
		return BaseIntervals[streak]
	}
	return max(LinearFloorDays, streak*DaysPerStreakStep)
}

// IntervalDays returns the number of days until the next review. Never less
// than one, so the next review always lands on a later day.
func IntervalDays(in ReviewInput) int {
	in = in.normalize(time.Time{})
	raw := float64(BaseInterval(in.SuccessStreak)) * ScoreFactor(in.RecallScore)
	return max(1, int(math.Round(raw)))
}

// NextReviewDate computes the day of the next review from the last review.
// The result is midnight of that day in LastReviewed's location.
func NextReviewDate(in ReviewInput, now time.Time) time.Time {
	in = in.normalize(now)
	return calendar.AddDays(in.LastReviewed, IntervalDays(in))
}
