package store

import (
	"context"
	"errors"
	"time"
)

// ErrItemNotFound is returned when a study item does not exist.
var ErrItemNotFound = errors.New("study item not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// StreakSnapshot is a persisted streak counter.
type StreakSnapshot struct {
	Current    int       `json:"current"`
	Longest    int       `json:"longest"`
	LastActive time.Time `json:"last_active"`
}

// HabitSnapshot is the persisted habit challenge.
type HabitSnapshot struct {
	StreakSnapshot
	Bronze bool `json:"bronze"`
	Silver bool `json:"silver"`
	Gold   bool `json:"gold"`
}

// AwardsSnapshotData holds award totals at snapshot time.
type AwardsSnapshotData struct {
	TotalCount  int            `json:"total_count"`
	CountByKind map[string]int `json:"count_by_kind,omitempty"`
}

// SnapshotData captures the learner's streak state at a point in time.
type SnapshotData struct {
	Version    int                 `json:"version"`
	Engagement *StreakSnapshot     `json:"engagement,omitempty"`
	Habit      *HabitSnapshot      `json:"habit,omitempty"`
	Awards     *AwardsSnapshotData `json:"awards,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// ActivityEventData is a credited study or review session.
type ActivityEventData struct {
	Handle    string
	Kind      string
	Subject   string
	Note      string
	Minutes   int
	StartedAt time.Time
	EndedAt   time.Time
}

// ActivityEventRecord is an ActivityEventData read back with its event fields.
type ActivityEventRecord struct {
	ActivityEventData
	Sequence  int64
	Timestamp time.Time
}

// ReviewEventData is one recorded review of a study item.
type ReviewEventData struct {
	ItemID         string
	Score          int
	SuccessStreak  int
	NextReview     time.Time
	UsedDeadline   bool
	PlannedReviews int
}

// ReviewEventRecord is a ReviewEventData read back with its event fields.
type ReviewEventRecord struct {
	ReviewEventData
	Sequence  int64
	Timestamp time.Time
}

// AwardEventData is a streak milestone or habit tier the learner earned.
type AwardEventData struct {
	Kind   string
	Tier   string
	Days   int
	Reason string
}

// AwardEventRecord is an AwardEventData read back with its event fields.
type AwardEventRecord struct {
	AwardEventData
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendActivityEvent records a finished session.
	AppendActivityEvent(ctx context.Context, data ActivityEventData) error

	// QueryActivityEvents returns sessions newest first.
	QueryActivityEvents(ctx context.Context, opts QueryOpts) ([]ActivityEventRecord, error)

	// ActivitiesBetween returns sessions that ended in [from, to), oldest first.
	ActivitiesBetween(ctx context.Context, from, to time.Time) ([]ActivityEventRecord, error)

	// MinutesBetween sums credited minutes of sessions that ended in [from, to).
	MinutesBetween(ctx context.Context, from, to time.Time) (int, error)

	// AppendReviewEvent records a review of a study item.
	AppendReviewEvent(ctx context.Context, data ReviewEventData) error

	// QueryReviewEvents returns reviews newest first, optionally for one item.
	QueryReviewEvents(ctx context.Context, itemID string, opts QueryOpts) ([]ReviewEventRecord, error)

	// AppendAwardEvent records an award.
	AppendAwardEvent(ctx context.Context, data AwardEventData) error

	// QueryAwardEvents returns awards newest first.
	QueryAwardEvents(ctx context.Context, opts QueryOpts) ([]AwardEventRecord, error)

	// AwardCounts returns award counts by kind and the total.
	AwardCounts(ctx context.Context) (map[string]int, int, error)

	// LatestSequence returns the last sequence number handed out.
	LatestSequence(ctx context.Context) (int64, error)
}

// ItemRecord is a persisted study item.
type ItemRecord struct {
	ID            string
	Title         string
	RecallScore   int
	SuccessStreak int
	LastReviewed  time.Time // zero when never reviewed
	NextReview    time.Time // zero when unscheduled
	TargetDate    time.Time // zero when there is no deadline
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ItemRepo stores study items.
type ItemRepo interface {
	// SaveItem inserts the item or replaces its mutable fields.
	SaveItem(ctx context.Context, item ItemRecord) error

	// GetItem returns ErrItemNotFound when id does not exist.
	GetItem(ctx context.Context, id string) (*ItemRecord, error)

	// ListItems returns all items ordered by next review, unscheduled last.
	ListItems(ctx context.Context) ([]ItemRecord, error)

	// DeleteItem returns ErrItemNotFound when id does not exist.
	DeleteItem(ctx context.Context, id string) error
}
