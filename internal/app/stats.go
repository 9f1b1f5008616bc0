package app

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/cadence/internal/awards"
	"github.com/abhisek/cadence/internal/calendar"
	"github.com/abhisek/cadence/internal/session"
	"github.com/abhisek/cadence/internal/store"
)

// weekDays is the window WeekMinutes covers, today included.
const weekDays = 7

// Stats is a point-in-time overview of the learner's progress.
type Stats struct {
	Today       *session.Summary
	WeekMinutes int
	Streaks     StreakReport
	AwardCounts map[awards.Kind]int
	AwardTotal  int
	Items       int
	DueItems    int
}

// Stats collects today's sessions, the last week's minutes, both streaks,
// award totals and the review backlog.
func (a *App) Stats(ctx context.Context) (*Stats, error) {
	now := a.Now()
	start, end := calendar.Bounds(now)

	recs, err := a.events.ActivitiesBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("today's activities: %w", err)
	}

	week, err := a.events.MinutesBetween(ctx, calendar.AddDays(start, -(weekDays-1)), end)
	if err != nil {
		return nil, fmt.Errorf("week minutes: %w", err)
	}

	counts, total, err := a.awards.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("award counts: %w", err)
	}

	items, err := a.Items(ctx)
	if err != nil {
		return nil, err
	}
	due := 0
	for _, it := range items {
		if it.IsDue(now) {
			due++
		}
	}

	return &Stats{
		Today:       session.BuildSummary(toActivities(recs)),
		WeekMinutes: week,
		Streaks:     a.Streaks(),
		AwardCounts: counts,
		AwardTotal:  total,
		Items:       len(items),
		DueItems:    due,
	}, nil
}

// Activities returns the sessions that ended on the given day.
func (a *App) Activities(ctx context.Context, day time.Time) ([]session.Activity, error) {
	start, end := calendar.Bounds(day.In(a.loc))
	recs, err := a.events.ActivitiesBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return toActivities(recs), nil
}

func toActivities(recs []store.ActivityEventRecord) []session.Activity {
	out := make([]session.Activity, len(recs))
	for i, r := range recs {
		out[i] = session.Activity{
			Handle:    session.Handle(r.Handle),
			Kind:      session.Kind(r.Kind),
			Subject:   r.Subject,
			Note:      r.Note,
			Minutes:   r.Minutes,
			StartedAt: r.StartedAt,
			EndedAt:   r.EndedAt,
		}
	}
	return out
}
