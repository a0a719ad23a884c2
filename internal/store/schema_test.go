package store

import (
	"testing"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columnNames(t *schema.Table) []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func TestTablesFromEntities(t *testing.T) {
	tests := []struct {
		table *schema.Table
		want  []string
	}{
		{DecksTable, []string{"id", "created_at", "completed_at", "status", "total_questions",
			"correct_answers", "incorrect_answers", "total_time_seconds", "average_time_seconds", "accuracy_percentage"}},
		{OperationsTable, []string{"id", "created_at", "operation_type", "operand1", "operand2", "result", "deck_id"}},
		{AnswersTable, []string{"id", "created_at", "user_answer", "is_correct", "time_spent_seconds", "operation_id", "deck_id"}},
		{ReviewItemsTable, []string{"id", "repetitions", "interval", "ease_factor", "next_review_date", "last_reviewed_date", "operation_id"}},
	}
	for _, tt := range tests {
		t.Run(tt.table.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, columnNames(tt.table))
			require.Len(t, tt.table.PrimaryKey, 1)
			assert.True(t, tt.table.PrimaryKey[0].Increment)
		})
	}
}

func TestDeckColumns(t *testing.T) {
	status := mustColumn(DecksTable, "status")
	assert.Equal(t, field.TypeEnum, status.Type)
	assert.Equal(t, []string{"in_progress", "completed", "abandoned"}, status.Enums)
	assert.Equal(t, "in_progress", status.Default)

	assert.True(t, mustColumn(DecksTable, "completed_at").Nullable)
	assert.Nil(t, mustColumn(DecksTable, "created_at").Default, "time.Now default stays in Go")
}

func TestReviewItemColumns(t *testing.T) {
	op := mustColumn(ReviewItemsTable, "operation_id")
	assert.True(t, op.Unique)
	assert.False(t, op.Nullable)
	assert.Equal(t, 2.5, mustColumn(ReviewItemsTable, "ease_factor").Default)
}

func TestForeignKeysFromEdges(t *testing.T) {
	type fk struct {
		symbol   string
		column   string
		ref      string
		onDelete schema.ReferenceOption
	}
	collect := func(t *schema.Table) []fk {
		var out []fk
		for _, k := range t.ForeignKeys {
			out = append(out, fk{k.Symbol, k.Columns[0].Name, k.RefTable.Name, k.OnDelete})
		}
		return out
	}

	assert.Empty(t, DecksTable.ForeignKeys)
	assert.Equal(t, []fk{
		{"operations_decks_operations", "deck_id", TableDecks, schema.SetNull},
	}, collect(OperationsTable))
	assert.Equal(t, []fk{
		{"answers_operations_answers", "operation_id", TableOperations, schema.NoAction},
		{"answers_decks_answers", "deck_id", TableDecks, schema.SetNull},
	}, collect(AnswersTable))
	assert.Equal(t, []fk{
		{"review_items_operations_review_item", "operation_id", TableOperations, schema.NoAction},
	}, collect(ReviewItemsTable))
}

func TestIndexesFromEntities(t *testing.T) {
	names := func(t *schema.Table) []string {
		var out []string
		for _, idx := range t.Indexes {
			out = append(out, idx.Name)
		}
		return out
	}
	assert.Equal(t, []string{"deck_status"}, names(DecksTable))
	assert.Equal(t, []string{"operation_deck_id"}, names(OperationsTable))
	assert.Equal(t, []string{"answer_operation_id", "answer_deck_id"}, names(AnswersTable))
	assert.Equal(t, []string{"reviewitem_next_review_date"}, names(ReviewItemsTable))
}
