package spacedrep

import (
	"testing"
	"time"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNextReviewDate_WorkedExample(t *testing.T) {
	// scoreFactor 1.3, table[2] = 7, round(9.1) = 9
	in := ReviewInput{RecallScore: 80, SuccessStreak: 2, LastReviewed: day0}
	got := NextReviewDate(in, day0)
	want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextReviewDate() = %v, want %v", got, want)
	}
}

func TestIntervalDays(t *testing.T) {
	tests := []struct {
		name   string
		score  int
		streak int
		want   int
	}{
		{"minimum exposure never rounds to zero", 0, 0, 1},
		{"perfect score first review", 100, 0, 2},
		{"half score keeps base", 50, 3, 14},
		{"last table entry", 50, 6, 120},
		{"first linear step", 50, 7, 49},
		{"linear step scaled", 100, 10, 105},
		{"score above range clamps", 250, 1, 5},
		{"score below range clamps", -40, 1, 2},
		{"negative streak clamps", 50, -2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntervalDays(ReviewInput{RecallScore: tt.score, SuccessStreak: tt.streak})
			if got != tt.want {
				t.Errorf("IntervalDays(score=%d, streak=%d) = %d, want %d", tt.score, tt.streak, got, tt.want)
			}
		})
	}
}

func TestNextReviewDate_StreakTableBoundary(t *testing.T) {
	at6 := NextReviewDate(ReviewInput{RecallScore: 50, SuccessStreak: 6, LastReviewed: day0}, day0)
	at7 := NextReviewDate(ReviewInput{RecallScore: 50, SuccessStreak: 7, LastReviewed: day0}, day0)

	if want := day0.AddDate(0, 0, 120); !at6.Equal(want) {
		t.Errorf("streak 6: got %v, want %v", at6, want)
	}
	if want := day0.AddDate(0, 0, 49); !at7.Equal(want) {
		t.Errorf("streak 7: got %v, want %v", at7, want)
	}
}

func TestNextReviewDate_DefaultsToNow(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)
	got := NextReviewDate(ReviewInput{RecallScore: 50}, now)
	want := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextReviewDate() = %v, want %v", got, want)
	}
}

func TestNextReviewDate_AlwaysAfterLastReview(t *testing.T) {
	last := time.Date(2024, 2, 28, 23, 59, 0, 0, time.UTC)
	for streak := 0; streak <= 20; streak++ {
		for score := 0; score <= 100; score++ {
			got := NextReviewDate(ReviewInput{RecallScore: score, SuccessStreak: streak, LastReviewed: last}, last)
			if !got.After(last) {
				t.Fatalf("score=%d streak=%d: %v not after %v", score, streak, got, last)
			}
		}
	}
}

func TestNextReviewDate_MonotonicInScore(t *testing.T) {
	for streak := 0; streak <= 12; streak++ {
		prev := time.Time{}
		for score := 0; score <= 100; score++ {
			got := NextReviewDate(ReviewInput{RecallScore: score, SuccessStreak: streak, LastReviewed: day0}, day0)
			if got.Before(prev) {
				t.Fatalf("streak=%d: score %d gave %v, earlier than %v", streak, score, got, prev)
			}
			prev = got
		}
	}
}

func TestScoreFactor_Range(t *testing.T) {
	if got := ScoreFactor(0); got != 0.5 {
		t.Errorf("ScoreFactor(0) = %f, want 0.5", got)
	}
	if got := ScoreFactor(100); got != 1.5 {
		t.Errorf("ScoreFactor(100) = %f, want 1.5", got)
	}
	if got := ScoreFactor(1000); got != 1.5 {
		t.Errorf("ScoreFactor(1000) = %f, want 1.5", got)
	}
}
