package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Operation is a generated arithmetic problem. Review slots reuse the row
// the problem was first stored as.
type Operation struct {
	ent.Schema
}

func (Operation) Mixin() []ent.Mixin {
	return []ent.Mixin{CreatedAtMixin{}}
}

func (Operation) Fields() []ent.Field {
	return []ent.Field{
		field.Enum("operation_type").
			Values("ADD", "MULTIPLY"),
		field.Int("operand1"),
		field.Int("operand2"),
		field.Int("result").
			Comment("operand1 combined with operand2 by operation_type"),
		field.Int("deck_id").
			Optional().
			Nillable().
			Comment("Deck the problem was first dealt in"),
	}
}

func (Operation) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("deck", Deck.Type).
			Ref("operations").
			Field("deck_id").
			Unique(),
		edge.To("answers", Answer.Type),
		edge.To("review_item", ReviewItem.Type).
			Unique(),
	}
}

func (Operation) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("deck_id"),
	}
}
