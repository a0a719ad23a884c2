package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ReviewItem holds the SM-2 state of one operation.
type ReviewItem struct {
	ent.Schema
}

func (ReviewItem) Fields() []ent.Field {
	return []ent.Field{
		field.Int("repetitions").
			Default(0).
			Comment("Consecutive successful recalls"),
		field.Int("interval").
			Default(0).
			Comment("Days until the next review"),
		field.Float("ease_factor").
			Default(2.5),
		field.Time("next_review_date"),
		field.Time("last_reviewed_date").
			Optional().
			Nillable(),
		field.Int("operation_id").
			Unique(),
	}
}

func (ReviewItem) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("operation", Operation.Type).
			Ref("review_item").
			Field("operation_id").
			Unique().
			Required(),
	}
}

func (ReviewItem) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("next_review_date"),
	}
}
