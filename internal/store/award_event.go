package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAwardEvent(ctx context.Context, data AwardEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := builder.Insert(tableAwards).
		Columns(colSequence, colTimestamp, "kind", "tier", "days", "reason").
		Values(seqNum, time.Now().UTC(), data.Kind, data.Tier, data.Days, data.Reason)
	if _, err := exec(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save award event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAwardEvents(ctx context.Context, opts QueryOpts) ([]AwardEventRecord, error) {
	sel := builder.Select(colSequence, colTimestamp, "kind", "tier", "days", "reason").
		From(builder.Table(tableAwards))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query award events: %w", err)
	}
	defer rows.Close()

	var records []AwardEventRecord
	for rows.Next() {
		var rec AwardEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.Kind, &rec.Tier, &rec.Days, &rec.Reason); err != nil {
			return nil, fmt.Errorf("scan award event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query award events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) AwardCounts(ctx context.Context) (map[string]int, int, error) {
	query, args := builder.Select("kind", entsql.Count("*")).
		From(builder.Table(tableAwards)).
		GroupBy("kind").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query award counts: %w", err)
	}
	defer rows.Close()

	byKind := make(map[string]int)
	total := 0
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, 0, fmt.Errorf("scan award count: %w", err)
		}
		byKind[kind] = n
		total += n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("query award counts: %w", err)
	}
	return byKind, total, nil
}
