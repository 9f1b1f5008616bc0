package streak

import "testing"

func TestIsMilestone(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{0, false},
		{1, false},
		{3, true},
		{7, true},
		{8, false},
		{14, true},
		{30, true},
		{60, true},
		{100, true},
		{150, false},
		{200, true},
		{700, true},
	}
	for _, tt := range tests {
		if got := IsMilestone(tt.n); got != tt.want {
			t.Errorf("IsMilestone(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestNextMilestone(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 3},
		{2, 3},
		{3, 7},
		{13, 14},
		{59, 60},
		{60, 100},
		{100, 200},
		{250, 300},
	}
	for _, tt := range tests {
		if got := NextMilestone(tt.current); got != tt.want {
			t.Errorf("NextMilestone(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

func TestTierDays(t *testing.T) {
	want := map[Tier]int{TierBronze: 7, TierSilver: 21, TierGold: 66}
	for _, tier := range AllTiers() {
		if tier.Days() != want[tier] {
			t.Errorf("%s.Days() = %d, want %d", tier, tier.Days(), want[tier])
		}
		if tier.DisplayName() == string(tier) {
			t.Errorf("%s has no display name", tier)
		}
	}
}

func TestParseTier(t *testing.T) {
	if tier, ok := ParseTier("silver"); !ok || tier != TierSilver {
		t.Errorf("ParseTier(silver) = %q, %v", tier, ok)
	}
	if _, ok := ParseTier("platinum"); ok {
		t.Error("ParseTier(platinum) should fail")
	}
}
