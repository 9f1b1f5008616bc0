package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range Tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table.Name,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table.Name, err)
		}
	}
}

func TestTablesFollowEntSchemas(t *testing.T) {
	byName := make(map[string]int)
	for i, table := range Tables {
		byName[table.Name] = i
	}

	activity := Tables[byName[tableActivity]]
	if pk := activity.PrimaryKey; len(pk) != 1 || pk[0].Name != colID || !pk[0].Increment {
		t.Errorf("activity primary key = %+v, want auto-increment id", pk)
	}
	for _, col := range []string{colSequence, colTimestamp, "handle", "minutes", "ended_at"} {
		if _, ok := activity.Column(col); !ok {
			t.Errorf("activity_events missing column %s", col)
		}
	}
	var seqUnique bool
	for _, idx := range activity.Indexes {
		if idx.Name == tableActivity+"_"+colSequence {
			seqUnique = idx.Unique
		}
	}
	if !seqUnique {
		t.Error("activity_events sequence index should be unique")
	}

	items := Tables[byName[tableItems]]
	if pk := items.PrimaryKey; len(pk) != 1 || pk[0].Name != colID || pk[0].Increment {
		t.Errorf("item primary key = %+v, want string id", pk)
	}
	for _, col := range []string{"last_reviewed", "next_review", "target_date"} {
		c, ok := items.Column(col)
		if !ok || !c.Nullable {
			t.Errorf("study_items.%s should be a nullable column", col)
		}
	}
	if c, _ := items.Column("title"); c == nil || c.Nullable {
		t.Error("study_items.title should be required")
	}
}

func TestOpenTwiceKeepsData(t *testing.T) {
	path := t.TempDir() + "/cadence.db"
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.ItemRepo().SaveItem(ctx, ItemRecord{ID: "a", Title: "Alpha"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	item, err := s.ItemRepo().GetItem(ctx, "a")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if item.Title != "Alpha" {
		t.Errorf("title = %q, want Alpha", item.Title)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(ctx, s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}

	cur, err := sc.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur != 5 {
		t.Errorf("current = %d, want 5", cur)
	}
}

func TestSequenceSharedAcrossEventTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := repo.AppendActivityEvent(ctx, ActivityEventData{Handle: "h", Kind: "study", Minutes: 3, StartedAt: now, EndedAt: now}); err != nil {
		t.Fatalf("append activity: %v", err)
	}
	if err := repo.AppendReviewEvent(ctx, ReviewEventData{ItemID: "a", Score: 80, NextReview: now}); err != nil {
		t.Fatalf("append review: %v", err)
	}
	if err := repo.AppendAwardEvent(ctx, AwardEventData{Kind: "habit_tier", Tier: "bronze", Days: 7}); err != nil {
		t.Fatalf("append award: %v", err)
	}

	acts, _ := repo.QueryActivityEvents(ctx, QueryOpts{})
	revs, _ := repo.QueryReviewEvents(ctx, "", QueryOpts{})
	awards, _ := repo.QueryAwardEvents(ctx, QueryOpts{})
	if len(acts) != 1 || len(revs) != 1 || len(awards) != 1 {
		t.Fatalf("got %d/%d/%d events, want 1 each", len(acts), len(revs), len(awards))
	}
	if acts[0].Sequence != 1 || revs[0].Sequence != 2 || awards[0].Sequence != 3 {
		t.Errorf("sequences = %d, %d, %d, want 1, 2, 3", acts[0].Sequence, revs[0].Sequence, awards[0].Sequence)
	}

	latest, err := repo.LatestSequence(ctx)
	if err != nil {
		t.Fatalf("latest sequence: %v", err)
	}
	if latest != 3 {
		t.Errorf("latest sequence = %d, want 3", latest)
	}
}

func TestActivityEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	sessions := []struct {
		subject string
		minutes int
		ended   time.Time
	}{
		{"math", 10, day.Add(-time.Minute)}, // previous day
		{"math", 20, day.Add(9 * time.Hour)},
		{"french", 7, day.Add(23 * time.Hour)},
		{"french", 30, day.Add(24 * time.Hour)}, // next day
	}
	for _, sess := range sessions {
		err := repo.AppendActivityEvent(ctx, ActivityEventData{
			Handle:    sess.subject + "-h",
			Kind:      "study",
			Subject:   sess.subject,
			Note:      "n",
			Minutes:   sess.minutes,
			StartedAt: sess.ended.Add(-time.Duration(sess.minutes) * time.Minute),
			EndedAt:   sess.ended,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	total, err := repo.MinutesBetween(ctx, day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("minutes between: %v", err)
	}
	if total != 27 {
		t.Errorf("minutes = %d, want 27", total)
	}

	empty, err := repo.MinutesBetween(ctx, day.AddDate(0, 1, 0), day.AddDate(0, 1, 1))
	if err != nil {
		t.Fatalf("minutes between (empty): %v", err)
	}
	if empty != 0 {
		t.Errorf("minutes = %d, want 0", empty)
	}

	records, err := repo.QueryActivityEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Sequence != 4 || records[0].Minutes != 30 || records[0].Subject != "french" {
		t.Errorf("newest record = %+v", records[0])
	}
	if !records[0].EndedAt.Equal(day.Add(24 * time.Hour)) {
		t.Errorf("ended_at = %v, want %v", records[0].EndedAt, day.Add(24*time.Hour))
	}

	older, err := repo.QueryActivityEvents(ctx, QueryOpts{Before: 3})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(older) != 2 {
		t.Errorf("got %d records before seq 3, want 2", len(older))
	}

	today, err := repo.ActivitiesBetween(ctx, day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("activities between: %v", err)
	}
	if len(today) != 2 {
		t.Fatalf("got %d activities, want 2", len(today))
	}
	if today[0].Subject != "math" || today[1].Subject != "french" {
		t.Errorf("activities = %s, %s, want math, french", today[0].Subject, today[1].Subject)
	}
}

func TestReviewEventsFilterByItem(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	next := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"a", "b", "a"} {
		err := repo.AppendReviewEvent(ctx, ReviewEventData{
			ItemID: id, Score: 100, SuccessStreak: 1, NextReview: next, UsedDeadline: id == "b", PlannedReviews: 2,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryReviewEvents(ctx, "a", QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reviews for a, want 2", len(got))
	}
	for _, r := range got {
		if r.ItemID != "a" || r.UsedDeadline {
			t.Errorf("unexpected review %+v", r)
		}
		if !r.NextReview.Equal(next) {
			t.Errorf("next_review = %v, want %v", r.NextReview, next)
		}
	}

	b, err := repo.QueryReviewEvents(ctx, "b", QueryOpts{})
	if err != nil {
		t.Fatalf("query b: %v", err)
	}
	if len(b) != 1 || !b[0].UsedDeadline || b[0].PlannedReviews != 2 {
		t.Errorf("review for b = %+v", b)
	}
}

func TestAwardCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	awards := []AwardEventData{
		{Kind: "engagement_milestone", Tier: "common", Days: 3, Reason: "3-day streak"},
		{Kind: "engagement_milestone", Tier: "rare", Days: 7, Reason: "7-day streak"},
		{Kind: "habit_tier", Tier: "bronze", Days: 7, Reason: "Bronze habit"},
	}
	for _, a := range awards {
		if err := repo.AppendAwardEvent(ctx, a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byKind, total, err := repo.AwardCounts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if byKind["engagement_milestone"] != 2 || byKind["habit_tier"] != 1 {
		t.Errorf("byKind = %v", byKind)
	}

	recent, err := repo.QueryAwardEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recent) != 1 || recent[0].Tier != "bronze" {
		t.Errorf("latest award = %+v", recent)
	}
}

func TestItemCRUD(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()
	ctx := context.Background()

	next := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	target := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	err := repo.SaveItem(ctx, ItemRecord{ID: "a", Title: "Alpha", RecallScore: 40, NextReview: next, TargetDate: target})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetItem(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Alpha" || got.RecallScore != 40 {
		t.Errorf("item = %+v", got)
	}
	if !got.LastReviewed.IsZero() {
		t.Errorf("last_reviewed = %v, want zero", got.LastReviewed)
	}
	if !got.NextReview.Equal(next) || !got.TargetDate.Equal(target) {
		t.Errorf("dates = %v / %v", got.NextReview, got.TargetDate)
	}
	created := got.CreatedAt

	// Upsert keeps created_at and replaces the rest.
	got.Title = "Alpha v2"
	got.SuccessStreak = 3
	got.LastReviewed = next
	got.CreatedAt = time.Time{}
	if err := repo.SaveItem(ctx, *got); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := repo.GetItem(ctx, "a")
	if err != nil {
		t.Fatalf("get updated: %v", err)
	}
	if updated.Title != "Alpha v2" || updated.SuccessStreak != 3 || !updated.LastReviewed.Equal(next) {
		t.Errorf("updated item = %+v", updated)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Errorf("created_at changed: %v -> %v", created, updated.CreatedAt)
	}

	if err := repo.DeleteItem(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetItem(ctx, "a"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("get deleted: err = %v, want ErrItemNotFound", err)
	}
	if err := repo.DeleteItem(ctx, "a"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("delete twice: err = %v, want ErrItemNotFound", err)
	}
}

func TestListItemsOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()
	ctx := context.Background()

	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	items := []ItemRecord{
		{ID: "late", Title: "Late", NextReview: base.AddDate(0, 0, 5)},
		{ID: "new", Title: "New"},
		{ID: "soon", Title: "Soon", NextReview: base},
	}
	for _, it := range items {
		if err := repo.SaveItem(ctx, it); err != nil {
			t.Fatalf("save %s: %v", it.ID, err)
		}
	}

	got, err := repo.ListItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, it := range got {
		ids = append(ids, it.ID)
	}
	want := []string{"soon", "late", "new"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}
