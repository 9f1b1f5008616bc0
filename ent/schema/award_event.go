package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// AwardEvent records a streak milestone or habit tier.
type AwardEvent struct {
	ent.Schema
}

func (AwardEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AwardEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("kind").NotEmpty(),
		field.String("tier").NotEmpty(),
		field.Int("days"),
		field.String("reason").NotEmpty(),
	}
}
