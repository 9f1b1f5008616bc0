package awards

import "time"

// Award is a single milestone or tier the learner earned.
type Award struct {
	Kind      Kind
	Tier      string // Rarity for milestones, streak.Tier for habit tiers
	Days      int    // streak length that earned it
	Reason    string // e.g. "7-day study streak"
	AwardedAt time.Time
}
