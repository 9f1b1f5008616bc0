// Package streak tracks consecutive days of study. Tracker follows the daily
// engagement goal and Habit runs the same machine against a small fixed
// threshold with bronze, silver and gold tiers on top.
package streak

import (
	"time"

	"github.com/abhisek/cadence/internal/calendar"
)

// Transition names what a single update did to a streak.
type Transition string

const (
	TransitionNone      Transition = "none"      // nothing qualified or nothing to do
	TransitionStarted   Transition = "started"   // first qualifying day ever
	TransitionUnchanged Transition = "unchanged" // already counted today
	TransitionExtended  Transition = "extended"  // qualified the day after the last one
	TransitionRestarted Transition = "restarted" // qualified after a gap, back to 1
	TransitionDecayed   Transition = "decayed"   // missed a day, dropped to 0
)

// State is a streak's persisted counters. A zero LastActive means the
// streak has no history yet.
type State struct {
	Current    int       `json:"current"`
	Longest    int       `json:"longest"`
	LastActive time.Time `json:"last_active"`
}

// advance applies a qualifying day.
func (s State) advance(now time.Time) (State, Transition) {
	today := calendar.Day(now)
	if s.LastActive.IsZero() {
		s.Current = 1
		s.Longest = max(s.Longest, s.Current)
		s.LastActive = today
		return s, TransitionStarted
	}

	var tr Transition
	switch diff := calendar.DayDiff(s.LastActive, today); {
	case diff <= 0:
		// Same day, or a clock that went backwards.
		return s, TransitionUnchanged
	case diff == 1:
		s.Current++
		tr = TransitionExtended
	default:
		s.Current = 1
		tr = TransitionRestarted
	}

	s.Longest = max(s.Longest, s.Current)
	s.LastActive = today
	return s, tr
}

// decay drops the current streak to zero once a whole day has been missed.
// LastActive is kept so a later qualifying day restarts at 1.
func (s State) decay(now time.Time) (State, Transition) {
	if s.LastActive.IsZero() || s.Current == 0 {
		return s, TransitionNone
	}
	if calendar.DayDiff(s.LastActive, now) > 1 {
		s.Current = 0
		return s, TransitionDecayed
	}
	return s, TransitionNone
}

// ActiveToday reports whether today has already been counted.
func (s State) ActiveToday(now time.Time) bool {
	return !s.LastActive.IsZero() && calendar.SameDay(s.LastActive, now)
}

// DaysUntilBreak returns how many days are left to keep the streak going:
// 2 when today is already counted, 1 when today still needs activity, and
// 0 when there is no live streak.
func (s State) DaysUntilBreak(now time.Time) int {
	if s.LastActive.IsZero() || s.Current == 0 {
		return 0
	}
	switch calendar.DayDiff(s.LastActive, now) {
	case 0:
		return 2
	case 1:
		return 1
	default:
		return 0
	}
}
