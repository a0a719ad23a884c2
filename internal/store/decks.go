package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var deckColumns = []string{
	"id", "created_at", "completed_at", "status",
	"total_questions", "correct_answers", "incorrect_answers",
	"total_time_seconds", "average_time_seconds", "accuracy_percentage",
}

type deckRow struct {
	ID                 int             `db:"id"`
	CreatedAt          time.Time       `db:"created_at"`
	CompletedAt        sql.NullTime    `db:"completed_at"`
	Status             string          `db:"status"`
	TotalQuestions     int             `db:"total_questions"`
	CorrectAnswers     int             `db:"correct_answers"`
	IncorrectAnswers   int             `db:"incorrect_answers"`
	TotalTimeSeconds   float64         `db:"total_time_seconds"`
	AverageTimeSeconds sql.NullFloat64 `db:"average_time_seconds"`
	AccuracyPercentage sql.NullFloat64 `db:"accuracy_percentage"`
}

func (r deckRow) toDeck() Deck {
	return Deck{
		ID:                 r.ID,
		CreatedAt:          r.CreatedAt.UTC(),
		CompletedAt:        nullTimePtr(r.CompletedAt),
		Status:             DeckStatus(r.Status),
		TotalQuestions:     r.TotalQuestions,
		CorrectAnswers:     r.CorrectAnswers,
		IncorrectAnswers:   r.IncorrectAnswers,
		TotalTimeSeconds:   r.TotalTimeSeconds,
		AverageTimeSeconds: nullFloatPtr(r.AverageTimeSeconds),
		AccuracyPercentage: nullFloatPtr(r.AccuracyPercentage),
	}
}

func (s *Store) CreateDeck(ctx context.Context) (int, error) {
	q, args := builder().Insert(TableDecks).
		Columns("created_at", "status", "total_questions", "correct_answers", "incorrect_answers", "total_time_seconds").
		Values(s.now(), string(DeckInProgress), 0, 0, 0, 0.0).
		Query()
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("insert deck: %w", err)
	}
	return insertID(res)
}

func (s *Store) UpdateDeckSummary(ctx context.Context, deckID int, summary DeckSummary) error {
	q, args := builder().Update(TableDecks).
		Set("total_questions", summary.TotalQuestions).
		Set("correct_answers", summary.CorrectAnswers).
		Set("incorrect_answers", summary.IncorrectAnswers).
		Set("total_time_seconds", summary.TotalTimeSeconds).
		Set("average_time_seconds", summary.AverageTimeSeconds).
		Set("accuracy_percentage", summary.AccuracyPercentage).
		Where(entsql.EQ("id", deckID)).
		Query()
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update deck summary: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("deck %d", deckID))
}

func (s *Store) CompleteDeck(ctx context.Context, deckID int) error {
	return s.closeDeck(ctx, deckID, DeckCompleted)
}

func (s *Store) AbandonDeck(ctx context.Context, deckID int) error {
	return s.closeDeck(ctx, deckID, DeckAbandoned)
}

// closeDeck moves an in-progress deck to a terminal status.
func (s *Store) closeDeck(ctx context.Context, deckID int, status DeckStatus) error {
	if !status.IsTerminal() {
		return fmt.Errorf("close deck %d: %s is not a terminal status", deckID, status)
	}
	u := builder().Update(TableDecks).Set("status", string(status))
	if status == DeckCompleted {
		u.Set("completed_at", s.now())
	}
	q, args := u.Where(entsql.And(
		entsql.EQ("id", deckID),
		entsql.EQ("status", string(DeckInProgress)),
	)).Query()

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("mark deck %s: %w", status, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	d, err := s.GetDeck(ctx, deckID)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("deck %d: %w", deckID, ErrNotFound)
	}
	return fmt.Errorf("deck %d is %s: %w", deckID, d.Status, ErrDeckNotInProgress)
}

func (s *Store) GetDeck(ctx context.Context, id int) (*Deck, error) {
	b := builder()
	t := b.Table(TableDecks)
	q, args := b.Select(deckColumns...).
		From(t).
		Where(entsql.EQ(t.C("id"), id)).
		Query()

	var row deckRow
	if err := s.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query deck: %w", err)
	}
	d := row.toDeck()
	return &d, nil
}

func (s *Store) InProgressDecks(ctx context.Context) ([]int, error) {
	b := builder()
	t := b.Table(TableDecks)
	q, args := b.Select("id").
		From(t).
		Where(entsql.EQ(t.C("status"), string(DeckInProgress))).
		OrderBy(t.C("id")).
		Query()

	var ids []int
	if err := s.db.SelectContext(ctx, &ids, q, args...); err != nil {
		return nil, fmt.Errorf("query in-progress decks: %w", err)
	}
	return ids, nil
}

func (s *Store) RecentDecks(ctx context.Context, limit int) ([]Deck, error) {
	b := builder()
	t := b.Table(TableDecks)
	sel := b.Select(deckColumns...).
		From(t).
		Where(entsql.EQ(t.C("status"), string(DeckCompleted))).
		OrderBy(entsql.Desc(t.C("completed_at")), entsql.Desc(t.C("id")))
	if limit > 0 {
		sel.Limit(limit)
	}
	q, args := sel.Query()

	var rows []deckRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("query recent decks: %w", err)
	}
	decks := make([]Deck, len(rows))
	for i, r := range rows {
		decks[i] = r.toDeck()
	}
	return decks, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
