package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type captureRecorder struct {
	mu   sync.Mutex
	got  []Activity
	fail error
}

func (r *captureRecorder) RecordActivity(_ context.Context, a Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, a)
	return r.fail
}

func (r *captureRecorder) activities() []Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Activity(nil), r.got...)
}

func newTestTimer() (*Timer, *fakeClock, *captureRecorder) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	rec := &captureRecorder{}
	return NewTimer(WithClock(clock.Now), WithRecorder(rec)), clock, rec
}

func TestEnd_ShortSessionCreditsOneMinute(t *testing.T) {
	timer, clock, rec := newTestTimer()
	h := timer.Start(KindStudy, "algebra")
	clock.Advance(10 * time.Second)

	require.NoError(t, timer.End(context.Background(), h, "", ""))

	got := rec.activities()
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Minutes)
	assert.Equal(t, "algebra", got[0].Subject)
	assert.Equal(t, KindStudy, got[0].Kind)
	assert.Equal(t, h, got[0].Handle)
}

func TestEnd_TruncatesToWholeMinutes(t *testing.T) {
	timer, clock, rec := newTestTimer()
	h := timer.Start(KindReview, "kanji")
	clock.Advance(25*time.Minute + 59*time.Second)

	require.NoError(t, timer.End(context.Background(), h, "", "deck 3"))

	got := rec.activities()
	require.Len(t, got, 1)
	assert.Equal(t, 25, got[0].Minutes)
	assert.Equal(t, "deck 3", got[0].Note)
	assert.Equal(t, got[0].StartedAt.Add(25*time.Minute+59*time.Second), got[0].EndedAt)
}

func TestEnd_CapsLongSessions(t *testing.T) {
	timer, clock, rec := newTestTimer()
	h := timer.Start(KindStudy, "history")
	clock.Advance(3 * time.Hour)

	require.NoError(t, timer.End(context.Background(), h, "", ""))
	assert.Equal(t, MaxCreditedMinutes, rec.activities()[0].Minutes)
}

func TestEnd_SubjectOverride(t *testing.T) {
	timer, clock, rec := newTestTimer()
	h := timer.Start(KindStudy, "math")
	clock.Advance(5 * time.Minute)

	require.NoError(t, timer.End(context.Background(), h, "geometry", ""))
	assert.Equal(t, "geometry", rec.activities()[0].Subject)
}

func TestEnd_IsIdempotent(t *testing.T) {
	timer, _, rec := newTestTimer()
	h := timer.Start(KindStudy, "math")

	require.NoError(t, timer.End(context.Background(), h, "", ""))
	require.NoError(t, timer.End(context.Background(), h, "", ""))

	assert.Len(t, rec.activities(), 1)
	assert.False(t, timer.IsActive(h))
}

func TestEnd_UnknownHandle(t *testing.T) {
	timer, _, rec := newTestTimer()
	assert.NoError(t, timer.End(context.Background(), Handle("nope"), "", ""))
	assert.Empty(t, rec.activities())
}

func TestEnd_ReturnsRecorderError(t *testing.T) {
	timer, _, rec := newTestTimer()
	rec.fail = errors.New("disk full")
	h := timer.Start(KindStudy, "math")

	err := timer.End(context.Background(), h, "", "")
	assert.EqualError(t, err, "disk full")
	assert.False(t, timer.IsActive(h), "handle is released even when recording fails")
}

func TestEnd_ConcurrentEndsRecordOnce(t *testing.T) {
	timer, _, rec := newTestTimer()
	h := timer.Start(KindStudy, "math")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = timer.End(context.Background(), h, "", "")
		}()
	}
	wg.Wait()

	assert.Len(t, rec.activities(), 1)
}

func TestTimer_ManyConcurrentSessions(t *testing.T) {
	var recorded atomic.Int64
	timer := NewTimer(WithRecorder(RecorderFunc(func(_ context.Context, a Activity) error {
		recorded.Add(int64(a.Minutes))
		return nil
	})))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := timer.Start(KindStudy, "topic")
			_ = timer.Elapsed(h)
			_ = timer.End(context.Background(), h, "", "")
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, timer.Active())
	assert.Equal(t, int64(50*MinCreditedMinutes), recorded.Load())
}

func TestElapsed(t *testing.T) {
	timer, clock, rec := newTestTimer()
	h := timer.Start(KindStudy, "math")

	assert.Equal(t, 0, timer.Elapsed(h), "a fresh session has not earned a minute yet")

	clock.Advance(7*time.Minute + 30*time.Second)
	assert.Equal(t, 7, timer.Elapsed(h))

	clock.Advance(5 * time.Hour)
	assert.Equal(t, MaxCreditedMinutes, timer.Elapsed(h))

	assert.True(t, timer.IsActive(h), "Elapsed does not end the session")
	assert.Empty(t, rec.activities())
	assert.Equal(t, 0, timer.Elapsed(Handle("unknown")))
}

func TestCancel(t *testing.T) {
	timer, _, rec := newTestTimer()
	h := timer.Start(KindStudy, "math")
	other := timer.Start(KindReview, "french")
	assert.Equal(t, 2, timer.Active())

	assert.True(t, timer.Cancel(h))
	assert.False(t, timer.Cancel(h))
	assert.False(t, timer.IsActive(h))
	assert.True(t, timer.IsActive(other))

	require.NoError(t, timer.End(context.Background(), h, "", ""))
	assert.Empty(t, rec.activities())
}

func TestStart_UniqueHandles(t *testing.T) {
	timer := NewTimer()
	seen := make(map[Handle]bool)
	for i := 0; i < 100; i++ {
		h := timer.Start(KindStudy, "")
		assert.False(t, seen[h], "duplicate handle %s", h)
		seen[h] = true
	}
	assert.Equal(t, 100, timer.Active())
}

func TestEnd_WithoutRecorder(t *testing.T) {
	timer := NewTimer()
	h := timer.Start(KindStudy, "math")
	assert.NoError(t, timer.End(context.Background(), h, "", ""))
	assert.Equal(t, 0, timer.Active())
}

func TestCreditedMinutes(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{-time.Minute, 1},
		{0, 1},
		{59 * time.Second, 1},
		{2*time.Minute + 59*time.Second, 2},
		{120 * time.Minute, 120},
		{121 * time.Minute, 120},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CreditedMinutes(tt.d), "CreditedMinutes(%v)", tt.d)
	}
}

func TestKindValid(t *testing.T) {
	assert.True(t, KindStudy.Valid())
	assert.True(t, KindReview.Valid())
	assert.False(t, Kind("nap").Valid())
}
