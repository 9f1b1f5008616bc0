// Package app wires the session timer, streak machines, awards and review
// scheduling to the store for one running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/cadence/internal/awards"
	"github.com/abhisek/cadence/internal/session"
	"github.com/abhisek/cadence/internal/store"
	"github.com/abhisek/cadence/internal/streak"
)

// snapshotVersion is written into every snapshot.
const snapshotVersion = 1

// Options holds the dependencies for New.
type Options struct {
	EventRepo    store.EventRepo
	ItemRepo     store.ItemRepo
	SnapshotRepo store.SnapshotRepo

	// DailyGoalMinutes is the engagement streak goal. Zero uses the default.
	DailyGoalMinutes int

	// SnapshotKeep is how many snapshots to retain. Zero keeps 5.
	SnapshotKeep int

	// Location decides where a day starts. Nil means time.Local.
	Location *time.Location

	// Clock is the time source. Nil means time.Now.
	Clock func() time.Time

	Logger zerolog.Logger

	// OnAward, if set, is called for every award as it is earned.
	OnAward func(awards.Award)
}

// App is the host object. Construct one per process and share it.
type App struct {
	events    store.EventRepo
	items     store.ItemRepo
	snapshots store.SnapshotRepo

	timer      *session.Timer
	engagement *streak.Tracker
	habit      *streak.Habit
	awards     *awards.Service

	loc     *time.Location
	now     func() time.Time
	keep    int
	onAward func(awards.Award)
	logger  zerolog.Logger

	// recordMu serializes activity recording so snapshots follow tracker order.
	recordMu sync.Mutex

	endedMu sync.Mutex
	ended   map[session.Handle]*ActivityOutcome // timed sessions recorded but not yet collected by EndStudy
}

// New builds an App and restores the streaks from the latest snapshot.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.EventRepo == nil || opts.ItemRepo == nil || opts.SnapshotRepo == nil {
		return nil, errors.New("app: event, item and snapshot repos are required")
	}

	a := &App{
		events:    opts.EventRepo,
		items:     opts.ItemRepo,
		snapshots: opts.SnapshotRepo,
		loc:       opts.Location,
		now:       opts.Clock,
		keep:      opts.SnapshotKeep,
		onAward:   opts.OnAward,
		ended:     make(map[session.Handle]*ActivityOutcome),
		logger:    opts.Logger.With().Str("component", "app").Logger(),
	}
	if a.loc == nil {
		a.loc = time.Local
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.keep <= 0 {
		a.keep = 5
	}

	var (
		engagement *streak.State
		habit      *streak.HabitState
	)
	snap, err := a.snapshots.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap != nil {
		engagement, habit = a.restore(snap.Data)
		a.logger.Debug().Int64("sequence", snap.Sequence).Msg("restored streaks from snapshot")
	}

	a.engagement = streak.NewTracker(opts.DailyGoalMinutes, engagement, streak.WithLogger(opts.Logger))
	a.habit = streak.NewHabit(habit, streak.WithLogger(opts.Logger))
	a.awards = awards.NewService(opts.EventRepo, opts.Logger)
	a.timer = session.NewTimer(
		session.WithClock(a.now),
		session.WithRecorder(a),
		session.WithLogger(opts.Logger),
	)
	return a, nil
}

// Awards returns the award service.
func (a *App) Awards() *awards.Service {
	return a.awards
}

// Location returns the timezone days are computed in.
func (a *App) Location() *time.Location {
	return a.loc
}

// Now returns the current time in the app's timezone.
func (a *App) Now() time.Time {
	return a.now().In(a.loc)
}

func (a *App) restore(data store.SnapshotData) (*streak.State, *streak.HabitState) {
	var (
		engagement *streak.State
		habit      *streak.HabitState
	)
	if e := data.Engagement; e != nil {
		engagement = &streak.State{Current: e.Current, Longest: e.Longest, LastActive: a.inLoc(e.LastActive)}
	}
	if h := data.Habit; h != nil {
		habit = &streak.HabitState{
			State:  streak.State{Current: h.Current, Longest: h.Longest, LastActive: a.inLoc(h.LastActive)},
			Bronze: h.Bronze,
			Silver: h.Silver,
			Gold:   h.Gold,
		}
	}
	return engagement, habit
}

// saveSnapshot persists both streaks and prunes old snapshots.
func (a *App) saveSnapshot(ctx context.Context) error {
	seq, err := a.events.LatestSequence(ctx)
	if err != nil {
		return fmt.Errorf("latest sequence: %w", err)
	}

	e := a.engagement.State()
	h := a.habit.State()
	snap := &store.Snapshot{
		Sequence:  seq,
		Timestamp: a.now(),
		Data: store.SnapshotData{
			Version:    snapshotVersion,
			Engagement: &store.StreakSnapshot{Current: e.Current, Longest: e.Longest, LastActive: e.LastActive},
			Habit: &store.HabitSnapshot{
				StreakSnapshot: store.StreakSnapshot{Current: h.Current, Longest: h.Longest, LastActive: h.LastActive},
				Bronze:         h.Bronze,
				Silver:         h.Silver,
				Gold:           h.Gold,
			},
			Awards: a.awards.SnapshotData(ctx),
		},
	}
	if err := a.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := a.snapshots.Prune(ctx, a.keep); err != nil {
		a.logger.Warn().Err(err).Msg("snapshot prune failed")
	}
	return nil
}

// inLoc moves a stored time into the app's timezone. Zero stays zero.
func (a *App) inLoc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(a.loc)
}
