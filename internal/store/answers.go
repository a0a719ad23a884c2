package store

import (
	"context"
	"fmt"
)

func (s *Store) InsertAnswer(ctx context.Context, operationID, value int, isCorrect bool, elapsedSeconds float64, deckID *int) (int, error) {
	q, args := builder().Insert(TableAnswers).
		Columns("operation_id", "user_answer", "is_correct", "time_spent_seconds", "created_at", "deck_id").
		Values(operationID, value, isCorrect, elapsedSeconds, s.now(), intPtrArg(deckID)).
		Query()
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("insert answer: %w", err)
	}
	return insertID(res)
}
