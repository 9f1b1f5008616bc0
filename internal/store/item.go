package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var itemSelectColumns = []string{
	colID, "title", "recall_score", "success_streak",
	"last_reviewed", "next_review", "target_date", "created_at", "updated_at",
}

// itemRepo implements ItemRepo.
type itemRepo struct {
	db *sql.DB
}

func (r *itemRepo) SaveItem(ctx context.Context, item ItemRecord) error {
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}

	ins := builder.Insert(tableItems).
		Columns(itemSelectColumns...).
		Values(item.ID, item.Title, item.RecallScore, item.SuccessStreak,
			nullTime(item.LastReviewed), nullTime(item.NextReview), nullTime(item.TargetDate),
			item.CreatedAt.UTC(), now).
		OnConflict(
			entsql.ConflictColumns(colID),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				for _, c := range itemSelectColumns {
					if c != colID && c != "created_at" {
						u.SetExcluded(c)
					}
				}
			}),
		)
	if _, err := exec(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save item %s: %w", item.ID, err)
	}
	return nil
}

func (r *itemRepo) GetItem(ctx context.Context, id string) (*ItemRecord, error) {
	query, args := builder.Select(itemSelectColumns...).
		From(builder.Table(tableItems)).
		Where(entsql.EQ(colID, id)).
		Query()

	item, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	return item, nil
}

func (r *itemRepo) ListItems(ctx context.Context) ([]ItemRecord, error) {
	query, args := builder.Select(itemSelectColumns...).
		From(builder.Table(tableItems)).
		OrderBy(colID).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []ItemRecord
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].NextReview, items[j].NextReview
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.Before(b)
	})
	return items, nil
}

func (r *itemRepo) DeleteItem(ctx context.Context, id string) error {
	res, err := exec(ctx, r.db, builder.Delete(tableItems).Where(entsql.EQ(colID, id)))
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*ItemRecord, error) {
	var (
		item                               ItemRecord
		lastReviewed, nextReview, deadline sql.NullTime
	)
	err := s.Scan(&item.ID, &item.Title, &item.RecallScore, &item.SuccessStreak,
		&lastReviewed, &nextReview, &deadline, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.LastReviewed = lastReviewed.Time
	item.NextReview = nextReview.Time
	item.TargetDate = deadline.Time
	return &item, nil
}

// nullTime stores zero times as NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
