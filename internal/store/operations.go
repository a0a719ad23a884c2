package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

type operationRow struct {
	ID        int           `db:"id"`
	Kind      string        `db:"operation_type"`
	Operand1  int           `db:"operand1"`
	Operand2  int           `db:"operand2"`
	Result    int           `db:"result"`
	CreatedAt time.Time     `db:"created_at"`
	DeckID    sql.NullInt64 `db:"deck_id"`
}

func (r operationRow) toOperation() *Operation {
	return &Operation{
		ID:        r.ID,
		Kind:      problemgen.Kind(r.Kind),
		Operand1:  r.Operand1,
		Operand2:  r.Operand2,
		Result:    r.Result,
		DeckID:    nullIntPtr(r.DeckID),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func (s *Store) InsertOperation(ctx context.Context, kind problemgen.Kind, operand1, operand2, result int, deckID *int) (int, error) {
	if !kind.Valid() {
		return 0, &problemgen.KindError{Input: string(kind)}
	}
	q, args := builder().Insert(TableOperations).
		Columns("operation_type", "operand1", "operand2", "result", "created_at", "deck_id").
		Values(string(kind), operand1, operand2, result, s.now(), intPtrArg(deckID)).
		Query()
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("insert operation: %w", err)
	}
	return insertID(res)
}

func (s *Store) GetOperation(ctx context.Context, id int) (*Operation, error) {
	b := builder()
	t := b.Table(TableOperations)
	q, args := b.Select("id", "operation_type", "operand1", "operand2", "result", "created_at", "deck_id").
		From(t).
		Where(entsql.EQ(t.C("id"), id)).
		Query()

	var row operationRow
	if err := s.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query operation: %w", err)
	}
	return row.toOperation(), nil
}
