package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// StudyItem holds an item's scheduling state. Unset times are NULL.
type StudyItem struct {
	ent.Schema
}

func (StudyItem) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable(),
		field.String("title").NotEmpty(),
		field.Int("recall_score"),
		field.Int("success_streak"),
		field.Time("last_reviewed").Optional().Nillable(),
		field.Time("next_review").Optional().Nillable(),
		field.Time("target_date").Optional().Nillable(),
		field.Time("created_at").Immutable(),
		field.Time("updated_at"),
	}
}

func (StudyItem) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("next_review"),
	}
}
