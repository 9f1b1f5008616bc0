package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendReviewEvent(ctx context.Context, data ReviewEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := builder.Insert(tableReviews).
		Columns(colSequence, colTimestamp, "item_id", "score", "success_streak", "next_review", "used_deadline", "planned_reviews").
		Values(seqNum, time.Now().UTC(), data.ItemID, data.Score, data.SuccessStreak,
			data.NextReview.UTC(), data.UsedDeadline, data.PlannedReviews)
	if _, err := exec(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryReviewEvents(ctx context.Context, itemID string, opts QueryOpts) ([]ReviewEventRecord, error) {
	sel := builder.Select(colSequence, colTimestamp, "item_id", "score", "success_streak", "next_review", "used_deadline", "planned_reviews").
		From(builder.Table(tableReviews))
	if itemID != "" {
		sel.Where(entsql.EQ("item_id", itemID))
	}
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	defer rows.Close()

	var records []ReviewEventRecord
	for rows.Next() {
		var rec ReviewEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.ItemID, &rec.Score, &rec.SuccessStreak,
			&rec.NextReview, &rec.UsedDeadline, &rec.PlannedReviews); err != nil {
			return nil, fmt.Errorf("scan review event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	return records, nil
}
