package streak

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HabitDailyMinutes is the fixed daily threshold of the habit challenge.
const HabitDailyMinutes = 5

// HabitState is the habit streak plus its one-shot tier flags.
type HabitState struct {
	State
	Bronze bool `json:"bronze"`
	Silver bool `json:"silver"`
	Gold   bool `json:"gold"`
}

// Has reports whether tier t has been unlocked.
func (s HabitState) Has(t Tier) bool {
	switch t {
	case TierBronze:
		return s.Bronze
	case TierSilver:
		return s.Silver
	case TierGold:
		return s.Gold
	default:
		return false
	}
}

func (s *HabitState) unlock(t Tier) {
	switch t {
	case TierBronze:
		s.Bronze = true
	case TierSilver:
		s.Silver = true
	case TierGold:
		s.Gold = true
	}
}

// NextTier returns the lowest tier not yet unlocked, or false when all are.
func (s HabitState) NextTier() (Tier, bool) {
	for _, t := range AllTiers() {
		if !s.Has(t) {
			return t, true
		}
	}
	return "", false
}

// HabitResult is the outcome of one Habit update.
type HabitResult struct {
	Transition Transition
	State      HabitState
	Unlocked   []Tier // tiers unlocked by this update
}

// Habit is the habit challenge: a streak of days with at least
// HabitDailyMinutes of study. Safe for concurrent use.
type Habit struct {
	mu     sync.Mutex
	state  HabitState
	logger zerolog.Logger
}

// NewHabit creates a habit challenge, seeded from restore when non-nil.
func NewHabit(restore *HabitState, opts ...Option) *Habit {
	o := buildOptions("habit-challenge", opts)
	h := &Habit{logger: o.logger}
	if restore != nil {
		h.state = *restore
	}
	return h
}

// RecordMinutes feeds the day's running total of study minutes.
func (h *Habit) RecordMinutes(totalToday int, now time.Time) HabitResult {
	return h.Record(totalToday >= HabitDailyMinutes, now)
}

// Record applies one day's outcome. Tiers are only checked when the streak
// was extended, right after the counter moved.
func (h *Habit) Record(qualifies bool, now time.Time) HabitResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !qualifies {
		return HabitResult{Transition: TransitionNone, State: h.state}
	}

	next, tr := h.state.State.advance(now)
	h.state.State = next

	res := HabitResult{Transition: tr}
	if tr == TransitionExtended {
		for _, t := range AllTiers() {
			if next.Current >= t.Days() && !h.state.Has(t) {
				h.state.unlock(t)
				res.Unlocked = append(res.Unlocked, t)
				h.logger.Info().Str("tier", string(t)).Int("days", next.Current).Msg("habit tier unlocked")
			}
		}
	}
	res.State = h.state
	return res
}

// CheckDecay zeroes the streak if a whole day passed without qualifying
// activity. Tier flags are kept.
func (h *Habit) CheckDecay(now time.Time) HabitResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	next, tr := h.state.State.decay(now)
	if tr == TransitionDecayed {
		h.logger.Info().Int("lost", h.state.Current).Msg("habit streak decayed")
	}
	h.state.State = next
	return HabitResult{Transition: tr, State: h.state}
}

// Reset clears the counters and all tier flags together.
func (h *Habit) Reset() {
	h.mu.Lock()
	h.state = HabitState{}
	h.mu.Unlock()
	h.logger.Info().Msg("habit challenge reset")
}

// State returns a copy of the current state.
func (h *Habit) State() HabitState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}
