package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ActivityEvent records one credited study or review session.
type ActivityEvent struct {
	ent.Schema
}

func (ActivityEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ActivityEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("handle").
			NotEmpty().
			Comment("Timer handle, or \"manual\" for logged sessions"),
		field.String("kind").
			NotEmpty().
			Comment("study or review"),
		field.String("subject"),
		field.String("note"),
		field.Int("minutes").
			Comment("Credited minutes, 1..120"),
		field.Time("started_at"),
		field.Time("ended_at").
			Comment("The day this falls on is the day the minutes count toward"),
	}
}

func (ActivityEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("ended_at"),
	}
}
