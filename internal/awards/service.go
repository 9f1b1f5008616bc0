package awards

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/cadence/internal/store"
	"github.com/abhisek/cadence/internal/streak"
)

// Service records awards and keeps the ones not yet shown to the learner.
type Service struct {
	eventRepo store.EventRepo
	logger    zerolog.Logger

	mu      sync.Mutex
	pending []Award
}

// NewService creates a Service. eventRepo may be nil, in which case awards
// are only kept in memory.
func NewService(eventRepo store.EventRepo, logger zerolog.Logger) *Service {
	return &Service{
		eventRepo: eventRepo,
		logger:    logger.With().Str("component", "awards").Logger(),
	}
}

// AwardMilestone awards an engagement streak milestone.
func (s *Service) AwardMilestone(ctx context.Context, days int, now time.Time) (*Award, error) {
	award := &Award{
		Kind:      KindMilestone,
		Tier:      string(MilestoneTier(days)),
		Days:      days,
		Reason:    fmt.Sprintf("%d-day study streak", days),
		AwardedAt: now,
	}
	return award, s.record(ctx, award)
}

// AwardHabitTier awards an unlocked habit challenge tier.
func (s *Service) AwardHabitTier(ctx context.Context, tier streak.Tier, now time.Time) (*Award, error) {
	award := &Award{
		Kind:      KindHabitTier,
		Tier:      string(tier),
		Days:      tier.Days(),
		Reason:    fmt.Sprintf("%s habit: %d days in a row", tier.DisplayName(), tier.Days()),
		AwardedAt: now,
	}
	return award, s.record(ctx, award)
}

// Drain returns the awards earned since the last call and clears them.
func (s *Service) Drain() []Award {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

// Counts returns how many awards of each kind were earned, and the total.
func (s *Service) Counts(ctx context.Context) (map[Kind]int, int, error) {
	if s.eventRepo == nil {
		return map[Kind]int{}, 0, nil
	}
	raw, total, err := s.eventRepo.AwardCounts(ctx)
	if err != nil {
		return nil, 0, err
	}
	counts := make(map[Kind]int, len(raw))
	for k, n := range raw {
		counts[Kind(k)] = n
	}
	return counts, total, nil
}

// History returns the most recent awards, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]Award, error) {
	if s.eventRepo == nil {
		return nil, nil
	}
	records, err := s.eventRepo.QueryAwardEvents(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]Award, len(records))
	for i, r := range records {
		out[i] = Award{
			Kind:      Kind(r.Kind),
			Tier:      r.Tier,
			Days:      r.Days,
			Reason:    r.Reason,
			AwardedAt: r.Timestamp,
		}
	}
	return out, nil
}

// SnapshotData builds the award counts for snapshot persistence.
func (s *Service) SnapshotData(ctx context.Context) *store.AwardsSnapshotData {
	if s.eventRepo == nil {
		return nil
	}
	counts, total, err := s.eventRepo.AwardCounts(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("award counts unavailable for snapshot")
		return nil
	}
	return &store.AwardsSnapshotData{TotalCount: total, CountByKind: counts}
}

func (s *Service) record(ctx context.Context, award *Award) error {
	s.mu.Lock()
	s.pending = append(s.pending, *award)
	s.mu.Unlock()

	s.logger.Info().Str("kind", string(award.Kind)).Str("tier", award.Tier).Int("days", award.Days).Msg("award earned")

	if s.eventRepo == nil {
		return nil
	}
	err := s.eventRepo.AppendAwardEvent(ctx, store.AwardEventData{
		Kind:   string(award.Kind),
		Tier:   award.Tier,
		Days:   award.Days,
		Reason: award.Reason,
	})
	if err != nil {
		return fmt.Errorf("persist award: %w", err)
	}
	return nil
}
