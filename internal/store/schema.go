package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/cadence/ent/schema"
)

// Table and column names. Every event table carries sequence and timestamp.
const (
	tableSequence  = "global_sequence"
	tableActivity  = "activity_events"
	tableReviews   = "review_events"
	tableAwards    = "award_events"
	tableItems     = "study_items"
	tableSnapshots = "snapshots"

	colID        = "id"
	colSequence  = "sequence"
	colTimestamp = "timestamp"
)

// Tables holds every table the store migrates, built from the ent schemas.
var Tables = mustTables(map[string]ent.Interface{
	tableSequence:  entschema.GlobalSequence{},
	tableActivity:  entschema.ActivityEvent{},
	tableReviews:   entschema.ReviewEvent{},
	tableAwards:    entschema.AwardEvent{},
	tableItems:     entschema.StudyItem{},
	tableSnapshots: entschema.Snapshot{},
}, tableSequence, tableActivity, tableReviews, tableAwards, tableItems, tableSnapshots)

func mustTables(schemas map[string]ent.Interface, order ...string) []*schema.Table {
	tables := make([]*schema.Table, 0, len(order))
	for _, name := range order {
		t, err := tableOf(name, schemas[name])
		if err != nil {
			panic(fmt.Sprintf("store: table %s: %v", name, err))
		}
		tables = append(tables, t)
	}
	return tables
}

// tableOf turns an ent schema into a migration table. Schemas without an
// "id" field get an auto-increment integer key, as ent does. Unique fields
// become unique indexes named after the table so names never collide
// across tables.
func tableOf(name string, s ent.Interface) (*schema.Table, error) {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := &schema.Table{Name: name}
	var unique []*schema.Column
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, d.Err
		}
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Nullable: d.Optional || d.Nillable,
		}
		if d.Name == colID {
			t.PrimaryKey = []*schema.Column{c}
		}
		if d.Unique {
			unique = append(unique, c)
		}
		t.Columns = append(t.Columns, c)
	}
	if t.PrimaryKey == nil {
		id := &schema.Column{Name: colID, Type: field.TypeInt, Increment: true}
		t.Columns = append([]*schema.Column{id}, t.Columns...)
		t.PrimaryKey = []*schema.Column{id}
	}

	seen := make(map[string]bool)
	addIndex := func(cols []*schema.Column, uniq bool) {
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = c.Name
		}
		key := strings.Join(names, "_")
		if seen[key] {
			return
		}
		seen[key] = true
		t.Indexes = append(t.Indexes, &schema.Index{Name: name + "_" + key, Unique: uniq, Columns: cols})
	}

	for _, c := range unique {
		addIndex([]*schema.Column{c}, true)
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]*schema.Column, 0, len(d.Fields))
		for _, fname := range d.Fields {
			c, ok := t.Column(fname)
			if !ok {
				return nil, fmt.Errorf("index on unknown column %q", fname)
			}
			cols = append(cols, c)
		}
		addIndex(cols, d.Unique)
	}
	return t, nil
}

// migrate creates or upgrades all tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
