package spacedrep

import "testing"

func TestBaseIntervals_Values(t *testing.T) {
	expected := []int{1, 3, 7, 14, 30, 60, 120}
	if len(BaseIntervals) != len(expected) {
		t.Fatalf("expected %d base intervals, got %d", len(expected), len(BaseIntervals))
	}
	for i, v := range expected {
		if BaseIntervals[i] != v {
			t.Errorf("BaseIntervals[%d] = %d, want %d", i, BaseIntervals[i], v)
		}
	}
}

func TestConstants(t *testing.T) {
	if TableStreakLimit != len(BaseIntervals) {
		t.Errorf("TableStreakLimit = %d, want %d", TableStreakLimit, len(BaseIntervals))
	}
	if PerfectRecallScore != MaxRecallScore {
		t.Errorf("PerfectRecallScore = %d, want %d", PerfectRecallScore, MaxRecallScore)
	}
}

func TestBaseInterval_EachStreak(t *testing.T) {
	tests := []struct {
		streak   int
		expected int
	}{
		{-3, 1},
		{0, 1},
		{1, 3},
		{2, 7},
		{3, 14},
		{4, 30},
		{5, 60},
		{6, 120},
		{7, 49},
		{8, 56},
		{10, 70},
		{52, 364},
	}
	for _, tt := range tests {
		got := BaseInterval(tt.streak)
		if got != tt.expected {
			t.Errorf("streak %d: BaseInterval() = %d, want %d", tt.streak, got, tt.expected)
		}
	}
}
