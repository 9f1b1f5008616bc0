package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo.
type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	ins := builder.Insert(tableSnapshots).
		Columns(colSequence, colTimestamp, "data").
		Values(snap.Sequence, snap.Timestamp.UTC(), data)
	if _, err := exec(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query, args := builder.Select(colID, colSequence, colTimestamp, "data").
		From(builder.Table(tableSnapshots)).
		OrderBy(entsql.Desc(colTimestamp), entsql.Desc(colID)).
		Limit(1).
		Query()

	var (
		snap Snapshot
		raw  []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&snap.ID, &snap.Sequence, &snap.Timestamp, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the newest snapshot that falls outside the kept window.
	query, args := builder.Select(colID).
		From(builder.Table(tableSnapshots)).
		OrderBy(entsql.Desc(colTimestamp), entsql.Desc(colID)).
		Limit(1).
		Offset(keep).
		Query()

	var threshold int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	del := builder.Delete(tableSnapshots).Where(entsql.LTE(colID, threshold))
	if _, err := exec(ctx, r.db, del); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
