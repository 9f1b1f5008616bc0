package streak

// engagementMilestones are the streak lengths that raise a milestone. Past
// the last entry every multiple of 100 counts.
var engagementMilestones = []int{3, 7, 14, 30, 60, 100}

// IsMilestone reports whether a streak of n days is a milestone.
func IsMilestone(n int) bool {
	if n <= 0 {
		return false
	}
	for _, m := range engagementMilestones {
		if n == m {
			return true
		}
	}
	return n > 100 && n%100 == 0
}

// NextMilestone returns the next milestone above the current streak length.
func NextMilestone(current int) int {
	for _, m := range engagementMilestones {
		if m > current {
			return m
		}
	}
	return (current/100 + 1) * 100
}

// Tier is a habit challenge achievement.
type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// AllTiers returns the tiers from lowest to highest.
func AllTiers() []Tier {
	return []Tier{TierBronze, TierSilver, TierGold}
}

// Days returns the streak length that unlocks the tier.
func (t Tier) Days() int {
	switch t {
	case TierBronze:
		return 7
	case TierSilver:
		return 21
	case TierGold:
		return 66
	default:
		return 0
	}
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBronze:
		return "Bronze"
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the tier.
func (t Tier) Icon() string {
	switch t {
	case TierBronze:
		return "🥉"
	case TierSilver:
		return "🥈"
	case TierGold:
		return "🥇"
	default:
		return "✦"
	}
}

// ParseTier maps a stored tier name back to a Tier.
func ParseTier(s string) (Tier, bool) {
	for _, t := range AllTiers() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}
