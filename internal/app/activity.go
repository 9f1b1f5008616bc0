package app

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/cadence/internal/awards"
	"github.com/abhisek/cadence/internal/calendar"
	"github.com/abhisek/cadence/internal/session"
	"github.com/abhisek/cadence/internal/store"
	"github.com/abhisek/cadence/internal/streak"
)

// ActivityOutcome is what recording one session did to the streaks.
type ActivityOutcome struct {
	Activity     session.Activity
	TodayMinutes int
	Engagement   streak.Result
	Habit        streak.HabitResult
	Awards       []awards.Award
}

// StreakReport is a read-only view of both streaks.
type StreakReport struct {
	Engagement  streak.State
	Habit       streak.HabitState
	GoalMinutes int
}

// StartStudy opens a timed session.
func (a *App) StartStudy(kind session.Kind, subject string) session.Handle {
	return a.timer.Start(kind, subject)
}

// EndStudy closes a timed session and records it. The outcome carries the
// minutes actually credited. Unknown handles are ignored and yield a nil
// outcome.
func (a *App) EndStudy(ctx context.Context, h session.Handle, subject, note string) (*ActivityOutcome, error) {
	err := a.timer.End(ctx, h, subject, note)

	a.endedMu.Lock()
	out := a.ended[h]
	delete(a.ended, h)
	a.endedMu.Unlock()

	return out, err
}

// Elapsed returns the whole minutes an open session has run.
func (a *App) Elapsed(h session.Handle) int {
	return a.timer.Elapsed(h)
}

// CancelStudy drops an open session without recording it.
func (a *App) CancelStudy(h session.Handle) bool {
	return a.timer.Cancel(h)
}

// ActiveSessions returns the number of open sessions.
func (a *App) ActiveSessions() int {
	return a.timer.Active()
}

// RecordActivity implements session.Recorder.
func (a *App) RecordActivity(ctx context.Context, act session.Activity) error {
	out, err := a.record(ctx, act)
	if out != nil {
		a.endedMu.Lock()
		a.ended[act.Handle] = out
		a.endedMu.Unlock()
	}
	return err
}

// LogActivity records a session that was not timed, e.g. entered by hand.
// The minutes are clamped the same way timed sessions are.
func (a *App) LogActivity(ctx context.Context, kind session.Kind, subject, note string, minutes int) (*ActivityOutcome, error) {
	end := a.now()
	d := time.Duration(minutes) * time.Minute
	act := session.Activity{
		Handle:    session.Handle("manual"),
		Kind:      kind,
		Subject:   subject,
		Note:      note,
		Minutes:   session.CreditedMinutes(d),
		StartedAt: end.Add(-d),
		EndedAt:   end,
	}
	return a.record(ctx, act)
}

func (a *App) record(ctx context.Context, act session.Activity) (*ActivityOutcome, error) {
	a.recordMu.Lock()
	defer a.recordMu.Unlock()

	err := a.events.AppendActivityEvent(ctx, store.ActivityEventData{
		Handle:    string(act.Handle),
		Kind:      string(act.Kind),
		Subject:   act.Subject,
		Note:      act.Note,
		Minutes:   act.Minutes,
		StartedAt: act.StartedAt,
		EndedAt:   act.EndedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}

	day := act.EndedAt.In(a.loc)
	total, err := a.minutesOn(ctx, day)
	if err != nil {
		return nil, err
	}

	out := &ActivityOutcome{
		Activity:     act,
		TodayMinutes: total,
		Engagement:   a.engagement.RecordMinutes(total, day),
		Habit:        a.habit.RecordMinutes(total, day),
	}

	for _, days := range out.Engagement.Milestones {
		award, err := a.awards.AwardMilestone(ctx, days, act.EndedAt)
		if err != nil {
			a.logger.Warn().Err(err).Int("days", days).Msg("milestone not persisted")
		}
		out.Awards = append(out.Awards, *award)
	}
	for _, tier := range out.Habit.Unlocked {
		award, err := a.awards.AwardHabitTier(ctx, tier, act.EndedAt)
		if err != nil {
			a.logger.Warn().Err(err).Str("tier", string(tier)).Msg("habit tier not persisted")
		}
		out.Awards = append(out.Awards, *award)
	}
	if a.onAward != nil {
		for _, aw := range out.Awards {
			a.onAward(aw)
		}
	}

	if changed(out.Engagement.Transition) || changed(out.Habit.Transition) {
		if err := a.saveSnapshot(ctx); err != nil {
			return out, err
		}
	}

	a.logger.Debug().
		Str("subject", act.Subject).
		Int("minutes", act.Minutes).
		Int("today", total).
		Str("engagement", string(out.Engagement.Transition)).
		Str("habit", string(out.Habit.Transition)).
		Msg("activity recorded")
	return out, nil
}

// CheckStreaks runs the foreground decay check on both streaks.
func (a *App) CheckStreaks(ctx context.Context) (StreakReport, error) {
	a.recordMu.Lock()
	defer a.recordMu.Unlock()

	now := a.Now()
	e := a.engagement.CheckDecay(now)
	h := a.habit.CheckDecay(now)
	if e.Transition == streak.TransitionDecayed || h.Transition == streak.TransitionDecayed {
		if err := a.saveSnapshot(ctx); err != nil {
			return a.Streaks(), err
		}
	}
	return a.Streaks(), nil
}

// Streaks returns both streak states.
func (a *App) Streaks() StreakReport {
	return StreakReport{
		Engagement:  a.engagement.State(),
		Habit:       a.habit.State(),
		GoalMinutes: a.engagement.GoalMinutes(),
	}
}

// TodayMinutes returns the minutes credited so far today.
func (a *App) TodayMinutes(ctx context.Context) (int, error) {
	return a.minutesOn(ctx, a.Now())
}

// ResetHabit clears the habit challenge and its tiers.
func (a *App) ResetHabit(ctx context.Context) error {
	a.recordMu.Lock()
	defer a.recordMu.Unlock()
	a.habit.Reset()
	return a.saveSnapshot(ctx)
}

// ResetEngagement clears the engagement streak.
func (a *App) ResetEngagement(ctx context.Context) error {
	a.recordMu.Lock()
	defer a.recordMu.Unlock()
	a.engagement.Reset()
	return a.saveSnapshot(ctx)
}

func (a *App) minutesOn(ctx context.Context, day time.Time) (int, error) {
	from, to := calendar.Bounds(day)
	total, err := a.events.MinutesBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("sum minutes: %w", err)
	}
	return total, nil
}

func changed(t streak.Transition) bool {
	return t != streak.TransitionNone && t != streak.TransitionUnchanged
}
