package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Deck is one ten-question practice run.
type Deck struct {
	ent.Schema
}

func (Deck) Mixin() []ent.Mixin {
	return []ent.Mixin{CreatedAtMixin{}}
}

func (Deck) Fields() []ent.Field {
	return []ent.Field{
		field.Time("completed_at").
			Optional().
			Nillable().
			Comment("Set when the deck is completed or abandoned"),
		field.Enum("status").
			Values("in_progress", "completed", "abandoned").
			Default("in_progress"),
		field.Int("total_questions").
			Default(0),
		field.Int("correct_answers").
			Default(0),
		field.Int("incorrect_answers").
			Default(0),
		field.Float("total_time_seconds").
			Default(0),
		field.Float("average_time_seconds").
			Optional().
			Nillable(),
		field.Float("accuracy_percentage").
			Optional().
			Nillable().
			Comment("0-100"),
	}
}

func (Deck) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("operations", Operation.Type),
		edge.To("answers", Answer.Type),
	}
}

func (Deck) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status"),
	}
}
