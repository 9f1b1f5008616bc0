package session

import (
	"context"
	"time"
)

// Kind is the type of learning activity a session represents.
type Kind string

const (
	KindStudy  Kind = "study"
	KindReview Kind = "review"
)

// Valid reports whether k is a known activity kind.
func (k Kind) Valid() bool {
	return k == KindStudy || k == KindReview
}

// Activity is a finished session credited to the learner.
type Activity struct {
	Handle    Handle
	Kind      Kind
	Subject   string
	Note      string
	Minutes   int
	StartedAt time.Time
	EndedAt   time.Time
}

// Recorder receives every activity a Timer credits.
type Recorder interface {
	RecordActivity(ctx context.Context, a Activity) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(ctx context.Context, a Activity) error

// RecordActivity calls f(ctx, a).
func (f RecorderFunc) RecordActivity(ctx context.Context, a Activity) error {
	return f(ctx, a)
}
