package spacedrep

import (
	"time"

	"github.com/abhisek/cadence/internal/calendar"
)

// StudyItem holds the scheduling fields of a learner's study item. The item
// itself lives in the host's store; this package only reads and updates
// these fields. Zero times mean "not set".
type StudyItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	RecallScore   int       `json:"recall_score"`
	LastReviewed  time.Time `json:"last_reviewed"`
	NextReview    time.Time `json:"next_review"`
	SuccessStreak int       `json:"success_streak"`
	TargetDate    time.Time `json:"target_date"`
}

// Input returns the calculator input for the item's current fields.
func (it *StudyItem) Input() ReviewInput {
	return ReviewInput{
		RecallScore:   it.RecallScore,
		LastReviewed:  it.LastReviewed,
		SuccessStreak: it.SuccessStreak,
	}
}

// HasDeadline reports whether the item has a target date after now's day.
func (it *StudyItem) HasDeadline(now time.Time) bool {
	return !it.TargetDate.IsZero() && calendar.DayDiff(now, it.TargetDate) > 0
}

// IsDue returns true if the item is due for review (on or past the review day).
func (it *StudyItem) IsDue(now time.Time) bool {
	if it.NextReview.IsZero() {
		return false
	}
	return calendar.DayDiff(it.NextReview, now) >= 0
}

// OverdueDays returns how many days past due the item is. Returns 0 if not yet due.
func (it *StudyItem) OverdueDays(now time.Time) int {
	if !it.IsDue(now) {
		return 0
	}
	return calendar.DayDiff(it.NextReview, now)
}

// CurrentIntervalDays returns the gap between the last and next review.
func (it *StudyItem) CurrentIntervalDays() int {
	if it.LastReviewed.IsZero() || it.NextReview.IsZero() {
		return BaseInterval(it.SuccessStreak)
	}
	return max(1, calendar.DayDiff(it.LastReviewed, it.NextReview))
}

// ReviewStatus describes an item's review status for display.
type ReviewStatus string

const (
	ReviewUnscheduled ReviewStatus = "unscheduled"
	ReviewNotDue      ReviewStatus = "not_due"
	ReviewDue         ReviewStatus = "due"
	ReviewOverdue     ReviewStatus = "overdue"
)

// Status returns the review status. An item is overdue once it is past due
// by more than half of its current interval.
func (it *StudyItem) Status(now time.Time) ReviewStatus {
	switch {
	case it.NextReview.IsZero():
		return ReviewUnscheduled
	case !it.IsDue(now):
		return ReviewNotDue
	case float64(it.OverdueDays(now)) > float64(it.CurrentIntervalDays())*0.5:
		return ReviewOverdue
	default:
		return ReviewDue
	}
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due or unscheduled.
func (it *StudyItem) DaysUntilReview(now time.Time) int {
	if it.NextReview.IsZero() || it.IsDue(now) {
		return 0
	}
	return calendar.DayDiff(now, it.NextReview)
}
