package spacedrep

import (
	"math"
	"time"

	"github.com/abhisek/cadence/internal/calendar"
)

// ReviewPlan is an ordered list of review days ending on or before a
// deadline. Always non-empty and strictly increasing.
type ReviewPlan []time.Time

// Last returns the final review day of the plan.
func (p ReviewPlan) Last() time.Time {
	if len(p) == 0 {
		return time.Time{}
	}
	return p[len(p)-1]
}

// PlanReviews schedules reviews so the item is rehearsed before target.
// Review days count forward from now's day; LastReviewed plays no part in
// the dates. A deadline that is today or already past yields a single
// review today.
func PlanReviews(target time.Time, in ReviewInput, now time.Time) ReviewPlan {
	in = in.normalize(now)
	today := calendar.Day(now)

	days := calendar.DayDiff(today, target)
	if days <= 0 {
		return ReviewPlan{today}
	}

	n := RequiredReviews(in.RecallScore, in.SuccessStreak, days)
	if n <= 0 {
		return ReviewPlan{today}
	}

	intervals := SpacedIntervals(days, n)
	plan := make(ReviewPlan, 0, len(intervals))
	offset := 0
	for _, iv := range intervals {
		offset += iv
		plan = append(plan, calendar.AddDays(today, offset))
	}
	return plan
}

// RequiredReviews estimates how many reviews fit before the deadline.
// Weak recall, little experience and a close deadline all raise the count.
// The result is clamped to [1, daysUntilTarget].
func RequiredReviews(score, streak, daysUntilTarget int) int {
	if daysUntilTarget <= 0 {
		return 0
	}
	score = ClampScore(score)
	if streak < 0 {
		streak = 0
	}

	var baseCount float64
	switch {
	case score >= 80:
		baseCount = 1.0
	case score >= 50:
		baseCount = 2.0
	default:
		baseCount = 3.0
	}

	experienceFactor := math.Max(0.5, 1.0-float64(streak)*0.1)

	var daysFactor float64
	switch {
	case daysUntilTarget <= 3:
		daysFactor = 1.2
	case daysUntilTarget <= 7:
		daysFactor = 1.0
	default:
		daysFactor = 0.8
	}

	n := int(math.Round(baseCount * experienceFactor * daysFactor))
	return min(max(n, 1), daysUntilTarget)
}

// SpacedIntervals splits totalDays into count gaps that grow geometrically,
// so early reviews sit close together and later ones spread out. Every gap
// is at least one day and the gaps never sum past totalDays; the plan may
// come back shorter than count when the days run out.
func SpacedIntervals(totalDays, count int) []int {
	if totalDays <= 0 || count <= 0 {
		return nil
	}

	ratio := math.Pow(float64(totalDays), 1.0/float64(count))
	intervals := make([]int, 0, count)
	cumulative := 0
	for i := 1; i <= count; i++ {
		target := int(math.Round(math.Pow(ratio, float64(i))))
		iv := max(1, target-cumulative)
		intervals = append(intervals, iv)
		cumulative += iv
	}

	return trimToBudget(intervals, totalDays)
}

// trimToBudget shrinks the largest gap one day at a time until the gaps fit
// in budget. A gap that would drop below one day is removed.
func trimToBudget(intervals []int, budget int) []int {
	sum := 0
	for _, iv := range intervals {
		sum += iv
	}

	for sum > budget && len(intervals) > 1 {
		largest := 0
		for i, iv := range intervals {
			if iv > intervals[largest] {
				largest = i
			}
		}
		if intervals[largest]-1 < 1 {
			intervals = append(intervals[:largest], intervals[largest+1:]...)
			sum--
			continue
		}
		intervals[largest]--
		sum--
	}

	if len(intervals) == 1 && intervals[0] > budget {
		intervals[0] = budget
	}
	return intervals
}
