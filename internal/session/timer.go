package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// MinCreditedMinutes is the least a finished session is credited with.
	MinCreditedMinutes = 1

	// MaxCreditedMinutes caps a single session, so a forgotten timer cannot
	// inflate the day's total.
	MaxCreditedMinutes = 120
)

// Handle identifies an open session.
type Handle string

type entry struct {
	kind      Kind
	subject   string
	startedAt time.Time
}

// Timer measures study sessions. Any number of sessions may be open at once
// and all methods are safe for concurrent use.
type Timer struct {
	mu       sync.Mutex
	open     map[Handle]entry
	now      func() time.Time
	recorder Recorder
	logger   zerolog.Logger
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// WithRecorder sets where finished sessions are sent.
func WithRecorder(r Recorder) Option {
	return func(t *Timer) { t.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Timer) { t.logger = l.With().Str("component", "session-timer").Logger() }
}

// NewTimer creates a Timer with no open sessions.
func NewTimer(opts ...Option) *Timer {
	t := &Timer{
		open:   make(map[Handle]entry),
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start opens a session and returns its handle.
func (t *Timer) Start(kind Kind, subject string) Handle {
	h := Handle(uuid.NewString())
	now := t.now()

	t.mu.Lock()
	t.open[h] = entry{kind: kind, subject: subject, startedAt: now}
	t.mu.Unlock()

	t.logger.Debug().Str("handle", string(h)).Str("kind", string(kind)).Str("subject", subject).Msg("session started")
	return h
}

// End closes the session and hands the credited activity to the recorder.
// Ending an unknown or already ended handle does nothing. When two callers
// race to end the same handle only one of them records. A non-empty subject
// replaces the one given to Start. The returned error is the recorder's.
func (t *Timer) End(ctx context.Context, h Handle, subject, note string) error {
	now := t.now()

	t.mu.Lock()
	e, ok := t.open[h]
	if ok {
		delete(t.open, h)
	}
	t.mu.Unlock()

	if !ok {
		t.logger.Debug().Str("handle", string(h)).Msg("end for unknown session ignored")
		return nil
	}

	if subject == "" {
		subject = e.subject
	}
	a := Activity{
		Handle:    h,
		Kind:      e.kind,
		Subject:   subject,
		Note:      note,
		Minutes:   CreditedMinutes(now.Sub(e.startedAt)),
		StartedAt: e.startedAt,
		EndedAt:   now,
	}

	t.logger.Info().Str("handle", string(h)).Str("subject", subject).Int("minutes", a.Minutes).Msg("session ended")

	if t.recorder == nil {
		return nil
	}
	return t.recorder.RecordActivity(ctx, a)
}

// Elapsed returns the whole minutes the session has been open so far,
// capped at MaxCreditedMinutes. Unknown handles read 0.
func (t *Timer) Elapsed(h Handle) int {
	t.mu.Lock()
	e, ok := t.open[h]
	t.mu.Unlock()
	if !ok {
		return 0
	}
	return min(wholeMinutes(t.now().Sub(e.startedAt)), MaxCreditedMinutes)
}

// IsActive reports whether h is an open session.
func (t *Timer) IsActive(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.open[h]
	return ok
}

// Cancel discards an open session without crediting it. Returns false if
// the handle was not open.
func (t *Timer) Cancel(h Handle) bool {
	t.mu.Lock()
	_, ok := t.open[h]
	delete(t.open, h)
	t.mu.Unlock()

	if ok {
		t.logger.Debug().Str("handle", string(h)).Msg("session cancelled")
	}
	return ok
}

// Active returns the number of open sessions.
func (t *Timer) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.open)
}

// CreditedMinutes converts a session duration into credited minutes:
// truncated to whole minutes and clamped to [MinCreditedMinutes, MaxCreditedMinutes].
func CreditedMinutes(d time.Duration) int {
	return min(max(wholeMinutes(d), MinCreditedMinutes), MaxCreditedMinutes)
}

func wholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
