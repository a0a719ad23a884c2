package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathdrill/internal/spacedrep"
)

var reviewItemColumns = []string{
	"id", "operation_id", "repetitions", "interval", "ease_factor", "next_review_date", "last_reviewed_date",
}

type reviewItemRow struct {
	ID               int          `db:"id"`
	OperationID      int          `db:"operation_id"`
	Repetitions      int          `db:"repetitions"`
	Interval         int          `db:"interval"`
	EaseFactor       float64      `db:"ease_factor"`
	NextReviewDate   time.Time    `db:"next_review_date"`
	LastReviewedDate sql.NullTime `db:"last_reviewed_date"`
}

func (r reviewItemRow) toReviewItem() ReviewItem {
	return ReviewItem{
		ID:               r.ID,
		OperationID:      r.OperationID,
		Repetitions:      r.Repetitions,
		Interval:         r.Interval,
		EaseFactor:       r.EaseFactor,
		NextReviewDate:   r.NextReviewDate.UTC(),
		LastReviewedDate: nullTimePtr(r.LastReviewedDate),
	}
}

func (s *Store) InsertReviewItem(ctx context.Context, operationID int, nextReviewDate time.Time) (int, error) {
	existing, err := s.GetReviewItem(ctx, operationID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, fmt.Errorf("operation %d: %w", operationID, ErrDuplicateReviewItem)
	}

	st := spacedrep.InitialState()
	q, args := builder().Insert(TableReviewItems).
		Columns("operation_id", "repetitions", "interval", "ease_factor", "next_review_date").
		Values(operationID, st.Repetitions, st.Interval, st.EaseFactor, nextReviewDate.UTC()).
		Query()
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("insert review item: %w", err)
	}
	return insertID(res)
}

func (s *Store) UpdateReviewItem(ctx context.Context, item ReviewItem) error {
	var last any
	if item.LastReviewedDate != nil {
		last = item.LastReviewedDate.UTC()
	}
	q, args := builder().Update(TableReviewItems).
		Set("repetitions", item.Repetitions).
		Set("interval", item.Interval).
		Set("ease_factor", item.EaseFactor).
		Set("next_review_date", item.NextReviewDate.UTC()).
		Set("last_reviewed_date", last).
		Where(entsql.EQ("id", item.ID)).
		Query()
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update review item: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("review item %d", item.ID))
}

func (s *Store) GetReviewItem(ctx context.Context, operationID int) (*ReviewItem, error) {
	b := builder()
	t := b.Table(TableReviewItems)
	q, args := b.Select(reviewItemColumns...).
		From(t).
		Where(entsql.EQ(t.C("operation_id"), operationID)).
		Query()

	var row reviewItemRow
	if err := s.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query review item: %w", err)
	}
	item := row.toReviewItem()
	return &item, nil
}

func (s *Store) GetDueReviewItems(ctx context.Context, before time.Time, limit int) ([]ReviewItem, error) {
	b := builder()
	t := b.Table(TableReviewItems)
	sel := b.Select(reviewItemColumns...).
		From(t).
		Where(entsql.LTE(t.C("next_review_date"), before.UTC())).
		OrderBy(t.C("next_review_date"), t.C("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	q, args := sel.Query()

	var rows []reviewItemRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("query due review items: %w", err)
	}
	items := make([]ReviewItem, len(rows))
	for i, r := range rows {
		items[i] = r.toReviewItem()
	}
	return items, nil
}

func (s *Store) CountDueReviewItems(ctx context.Context, before time.Time) (int, error) {
	b := builder()
	t := b.Table(TableReviewItems)
	q, args := b.Select(entsql.Count("*")).
		From(t).
		Where(entsql.LTE(t.C("next_review_date"), before.UTC())).
		Query()

	var n int
	if err := s.db.GetContext(ctx, &n, q, args...); err != nil {
		return 0, fmt.Errorf("count due review items: %w", err)
	}
	return n, nil
}
