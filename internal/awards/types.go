package awards

// Kind identifies the category of award.
type Kind string

const (
	KindMilestone Kind = "engagement_milestone"
	KindHabitTier Kind = "habit_tier"
)

// AllKinds returns all award kinds in display order.
func AllKinds() []Kind {
	return []Kind{KindMilestone, KindHabitTier}
}

// DisplayName returns a human-readable label for the award kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindMilestone:
		return "Streak milestone"
	case KindHabitTier:
		return "Habit challenge"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the award kind.
func (k Kind) Icon() string {
	switch k {
	case KindMilestone:
		return "🔥"
	case KindHabitTier:
		return "🏆"
	default:
		return "✦"
	}
}

// Rarity grades an engagement milestone by streak length.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// MilestoneTier returns the rarity for a streak milestone of the given length.
func MilestoneTier(days int) Rarity {
	switch {
	case days >= 100:
		return RarityLegendary
	case days >= 30:
		return RarityEpic
	case days >= 7:
		return RarityRare
	default:
		return RarityCommon
	}
}
