package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the raw database handle.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) LatestSequence(ctx context.Context) (int64, error) {
	return r.seq.Current(ctx)
}

func (r *eventRepo) AppendActivityEvent(ctx context.Context, data ActivityEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := builder.Insert(tableActivity).
		Columns(colSequence, colTimestamp, "handle", "kind", "subject", "note", "minutes", "started_at", "ended_at").
		Values(seqNum, time.Now().UTC(), data.Handle, data.Kind, data.Subject, data.Note,
			data.Minutes, data.StartedAt.UTC(), data.EndedAt.UTC())
	if _, err := exec(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save activity event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryActivityEvents(ctx context.Context, opts QueryOpts) ([]ActivityEventRecord, error) {
	sel := builder.Select(colSequence, colTimestamp, "handle", "kind", "subject", "note", "minutes", "started_at", "ended_at").
		From(builder.Table(tableActivity))
	query, args := applyQueryOpts(sel, opts).Query()

	return r.scanActivities(ctx, query, args)
}

func (r *eventRepo) ActivitiesBetween(ctx context.Context, from, to time.Time) ([]ActivityEventRecord, error) {
	query, args := builder.Select(colSequence, colTimestamp, "handle", "kind", "subject", "note", "minutes", "started_at", "ended_at").
		From(builder.Table(tableActivity)).
		Where(entsql.And(
			entsql.GTE("ended_at", from.UTC()),
			entsql.LT("ended_at", to.UTC()),
		)).
		OrderBy("ended_at", colSequence).
		Query()
	return r.scanActivities(ctx, query, args)
}

func (r *eventRepo) scanActivities(ctx context.Context, query string, args []any) ([]ActivityEventRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity events: %w", err)
	}
	defer rows.Close()

	var records []ActivityEventRecord
	for rows.Next() {
		var rec ActivityEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.Handle, &rec.Kind, &rec.Subject,
			&rec.Note, &rec.Minutes, &rec.StartedAt, &rec.EndedAt); err != nil {
			return nil, fmt.Errorf("scan activity event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query activity events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) MinutesBetween(ctx context.Context, from, to time.Time) (int, error) {
	query, args := builder.Select(entsql.Sum("minutes")).
		From(builder.Table(tableActivity)).
		Where(entsql.And(
			entsql.GTE("ended_at", from.UTC()),
			entsql.LT("ended_at", to.UTC()),
		)).
		Query()

	var total sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum activity minutes: %w", err)
	}
	return int(total.Int64), nil
}
