package spacedrep

import (
	"time"

	"github.com/abhisek/cadence/internal/calendar"
)

// ReviewOutcome is what a recorded review produced.
type ReviewOutcome struct {
	NextReview   time.Time
	Plan         ReviewPlan // nil unless the deadline path was used
	UsedDeadline bool
}

// RecordReview applies a self-assessed recall score to the item and
// reschedules it. Only the item's fields are mutated; the caller commits
// them. A perfect score extends the success streak, anything lower resets
// it. Items with a future target date get a deadline plan and their next
// review is the plan's first day.
func RecordReview(item *StudyItem, score int, now time.Time) ReviewOutcome {
	item.RecallScore = ClampScore(score)
	if item.RecallScore >= PerfectRecallScore {
		item.SuccessStreak++
	} else {
		item.SuccessStreak = 0
	}
	item.LastReviewed = calendar.Day(now)
	return Schedule(item, now)
}

// Schedule computes the next review from the item's current fields without
// recording a review, e.g. for a newly added item or a changed target date.
// The item's NextReview is updated.
func Schedule(item *StudyItem, now time.Time) ReviewOutcome {
	if item.HasDeadline(now) {
		plan := PlanReviews(item.TargetDate, item.Input(), now)
		item.NextReview = plan[0]
		return ReviewOutcome{NextReview: item.NextReview, Plan: plan, UsedDeadline: true}
	}
	item.NextReview = NextReviewDate(item.Input(), now)
	return ReviewOutcome{NextReview: item.NextReview}
}
