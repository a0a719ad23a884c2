package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Answer records a single submitted response. Answers are append-only.
type Answer struct {
	ent.Schema
}

func (Answer) Mixin() []ent.Mixin {
	return []ent.Mixin{CreatedAtMixin{}}
}

func (Answer) Fields() []ent.Field {
	return []ent.Field{
		field.Int("user_answer").
			Immutable(),
		field.Bool("is_correct").
			Immutable(),
		field.Float("time_spent_seconds").
			Immutable().
			Comment("Seconds from question shown to Enter"),
		field.Int("operation_id"),
		field.Int("deck_id").
			Optional().
			Nillable(),
	}
}

func (Answer) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("operation", Operation.Type).
			Ref("answers").
			Field("operation_id").
			Unique().
			Required(),
		edge.From("deck", Deck.Type).
			Ref("answers").
			Field("deck_id").
			Unique(),
	}
}

func (Answer) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("operation_id"),
		index.Fields("deck_id"),
	}
}
