package streak

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultGoalMinutes is the daily engagement goal when none is configured.
const DefaultGoalMinutes = 15

// Result is the outcome of one Tracker update.
type Result struct {
	Transition Transition
	State      State
	Milestones []int // streak lengths reached by this update, if any
}

// Option configures a Tracker or Habit.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(component string, opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With().Str("component", component).Logger()
	return o
}

// Tracker is the engagement streak: consecutive days on which the learner
// met the daily goal. Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	state  State
	goal   int
	logger zerolog.Logger
}

// NewTracker creates a tracker with the given daily goal. A non-positive
// goal uses DefaultGoalMinutes. restore, if non-nil, seeds the state.
func NewTracker(goalMinutes int, restore *State, opts ...Option) *Tracker {
	if goalMinutes <= 0 {
		goalMinutes = DefaultGoalMinutes
	}
	o := buildOptions("engagement-streak", opts)
	t := &Tracker{goal: goalMinutes, logger: o.logger}
	if restore != nil {
		t.state = *restore
	}
	return t
}

// GoalMinutes returns the daily goal.
func (t *Tracker) GoalMinutes() int {
	return t.goal
}

// RecordMinutes feeds the day's running total of study minutes.
func (t *Tracker) RecordMinutes(totalToday int, now time.Time) Result {
	return t.Record(totalToday >= t.goal, now)
}

// Record applies one day's outcome. A day that does not qualify changes
// nothing.
func (t *Tracker) Record(qualifies bool, now time.Time) Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !qualifies {
		return Result{Transition: TransitionNone, State: t.state}
	}

	next, tr := t.state.advance(now)
	t.state = next

	res := Result{Transition: tr, State: next}
	if tr == TransitionExtended && IsMilestone(next.Current) {
		res.Milestones = []int{next.Current}
		t.logger.Info().Int("days", next.Current).Msg("streak milestone reached")
	}
	if tr != TransitionUnchanged {
		t.logger.Debug().Str("transition", string(tr)).Int("current", next.Current).Int("longest", next.Longest).Msg("streak updated")
	}
	return res
}

// CheckDecay zeroes the streak if a whole day passed without qualifying
// activity. Meant for app start or foreground, not for activity.
func (t *Tracker) CheckDecay(now time.Time) Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, tr := t.state.decay(now)
	if tr == TransitionDecayed {
		t.logger.Info().Int("lost", t.state.Current).Msg("streak decayed")
	}
	t.state = next
	return Result{Transition: tr, State: next}
}

// Reset clears all counters.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.state = State{}
	t.mu.Unlock()
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
