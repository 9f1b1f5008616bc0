package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/cadence/internal/calendar"
	"github.com/abhisek/cadence/internal/spacedrep"
	"github.com/abhisek/cadence/internal/store"
)

// ErrEmptyTitle is returned when an item is added without a title.
var ErrEmptyTitle = errors.New("item title is required")

// ReviewResult is a recorded review and the item as saved.
type ReviewResult struct {
	Item    spacedrep.StudyItem
	Outcome spacedrep.ReviewOutcome
}

// AddItem creates a study item and schedules its first review. target may
// be zero for an item without a deadline.
func (a *App) AddItem(ctx context.Context, title string, target time.Time) (*spacedrep.StudyItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	id, err := a.newItemID(ctx)
	if err != nil {
		return nil, err
	}

	item := &spacedrep.StudyItem{ID: id, Title: title}
	if !target.IsZero() {
		item.TargetDate = calendar.Day(target.In(a.loc))
	}
	spacedrep.Schedule(item, a.Now())

	if err := a.items.SaveItem(ctx, toRecord(item)); err != nil {
		return nil, err
	}
	a.logger.Info().Str("item", id).Str("next_review", calendar.Format(item.NextReview)).Msg("item added")
	return item, nil
}

// Item returns one study item.
func (a *App) Item(ctx context.Context, id string) (*spacedrep.StudyItem, error) {
	rec, err := a.items.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item := a.fromRecord(*rec)
	return &item, nil
}

// Items returns all study items, soonest review first.
func (a *App) Items(ctx context.Context) ([]spacedrep.StudyItem, error) {
	recs, err := a.items.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]spacedrep.StudyItem, len(recs))
	for i, r := range recs {
		out[i] = a.fromRecord(r)
	}
	return out, nil
}

// DueItems returns the items due for review today or earlier.
func (a *App) DueItems(ctx context.Context) ([]spacedrep.StudyItem, error) {
	all, err := a.Items(ctx)
	if err != nil {
		return nil, err
	}
	now := a.Now()
	var due []spacedrep.StudyItem
	for _, it := range all {
		if it.IsDue(now) {
			due = append(due, it)
		}
	}
	return due, nil
}

// RemoveItem deletes a study item.
func (a *App) RemoveItem(ctx context.Context, id string) error {
	return a.items.DeleteItem(ctx, id)
}

// RecordReview applies a recall score to the item, reschedules it and
// persists both the item and a review event.
func (a *App) RecordReview(ctx context.Context, id string, score int) (*ReviewResult, error) {
	item, err := a.Item(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome := spacedrep.RecordReview(item, score, a.Now())

	if err := a.items.SaveItem(ctx, toRecord(item)); err != nil {
		return nil, err
	}
	err = a.events.AppendReviewEvent(ctx, store.ReviewEventData{
		ItemID:         item.ID,
		Score:          item.RecallScore,
		SuccessStreak:  item.SuccessStreak,
		NextReview:     item.NextReview,
		UsedDeadline:   outcome.UsedDeadline,
		PlannedReviews: len(outcome.Plan),
	})
	if err != nil {
		return nil, fmt.Errorf("record review event: %w", err)
	}

	a.logger.Info().
		Str("item", item.ID).
		Int("score", item.RecallScore).
		Int("success_streak", item.SuccessStreak).
		Str("next_review", calendar.Format(item.NextReview)).
		Bool("deadline", outcome.UsedDeadline).
		Msg("review recorded")
	return &ReviewResult{Item: *item, Outcome: outcome}, nil
}

// SetTarget changes or clears (zero target) an item's deadline and
// reschedules its next review.
func (a *App) SetTarget(ctx context.Context, id string, target time.Time) (*ReviewResult, error) {
	item, err := a.Item(ctx, id)
	if err != nil {
		return nil, err
	}

	item.TargetDate = time.Time{}
	if !target.IsZero() {
		item.TargetDate = calendar.Day(target.In(a.loc))
	}
	outcome := spacedrep.Schedule(item, a.Now())

	if err := a.items.SaveItem(ctx, toRecord(item)); err != nil {
		return nil, err
	}
	return &ReviewResult{Item: *item, Outcome: outcome}, nil
}

// Plan returns the upcoming review days for an item: the full deadline plan
// when it has a future target date, otherwise just its stored next review.
func (a *App) Plan(ctx context.Context, id string) (spacedrep.ReviewPlan, error) {
	item, err := a.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	now := a.Now()
	switch {
	case item.HasDeadline(now):
		return spacedrep.PlanReviews(item.TargetDate, item.Input(), now), nil
	case !item.NextReview.IsZero():
		return spacedrep.ReviewPlan{item.NextReview}, nil
	default:
		return spacedrep.ReviewPlan{spacedrep.NextReviewDate(item.Input(), now)}, nil
	}
}

// newItemID returns a short id that is not yet taken.
func (a *App) newItemID(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		_, err := a.items.GetItem(ctx, id)
		if errors.Is(err, store.ErrItemNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not allocate an item id")
}

func toRecord(it *spacedrep.StudyItem) store.ItemRecord {
	return store.ItemRecord{
		ID:            it.ID,
		Title:         it.Title,
		RecallScore:   it.RecallScore,
		SuccessStreak: it.SuccessStreak,
		LastReviewed:  it.LastReviewed,
		NextReview:    it.NextReview,
		TargetDate:    it.TargetDate,
	}
}

func (a *App) fromRecord(r store.ItemRecord) spacedrep.StudyItem {
	return spacedrep.StudyItem{
		ID:            r.ID,
		Title:         r.Title,
		RecallScore:   r.RecallScore,
		SuccessStreak: r.SuccessStreak,
		LastReviewed:  a.inLoc(r.LastReviewed),
		NextReview:    a.inLoc(r.NextReview),
		TargetDate:    a.inLoc(r.TargetDate),
	}
}
