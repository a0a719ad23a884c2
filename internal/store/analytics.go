package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// windowPredicate restricts answers a, joined to decks d, to completed
// decks inside the window.
func windowPredicate(a, d *entsql.SelectTable, w Window) *entsql.Predicate {
	preds := []*entsql.Predicate{entsql.EQ(d.C("status"), string(DeckCompleted))}
	if !w.Since.IsZero() {
		preds = append(preds, entsql.GTE(a.C("created_at"), w.Since.UTC()))
	}
	if w.LastDecks > 0 {
		b := builder()
		recent := b.Table(TableDecks)
		latest := b.Select(recent.C("id")).
			From(recent).
			Where(entsql.EQ(recent.C("status"), string(DeckCompleted))).
			OrderBy(entsql.Desc(recent.C("completed_at")), entsql.Desc(recent.C("id"))).
			Limit(w.LastDecks)
		preds = append(preds, entsql.In(d.C("id"), latest))
	}
	return entsql.And(preds...)
}

// answersByKind selects answers joined to their operation and deck, grouped
// by operation type. The first column is always the kind.
func answersByKind(w Window, correctOnly bool, aggregates ...string) (string, []any) {
	b := builder()
	a := b.Table(TableAnswers).As("a")
	o := b.Table(TableOperations).As("o")
	d := b.Table(TableDecks).As("d")

	where := windowPredicate(a, d, w)
	if correctOnly {
		where = entsql.And(entsql.EQ(a.C("is_correct"), true), where)
	}
	return b.Select(append([]string{entsql.As(o.C("operation_type"), "kind")}, aggregates...)...).
		From(a).
		Join(o).On(a.C("operation_id"), o.C("id")).
		Join(d).On(a.C("deck_id"), d.C("id")).
		Where(where).
		GroupBy(o.C("operation_type")).
		Query()
}

type kindTimeRow struct {
	Kind       string  `db:"kind"`
	Count      int     `db:"n"`
	Sum        float64 `db:"total"`
	SumSquares float64 `db:"total_sq"`
}

func (s *Store) TimeStatisticsByKind(ctx context.Context, w Window) (map[problemgen.Kind]TimeStats, error) {
	secs := entsql.Table(TableAnswers).As("a").C("time_spent_seconds")
	q, args := answersByKind(w, true,
		entsql.As(entsql.Count("*"), "n"),
		entsql.As(fmt.Sprintf("COALESCE(%s, 0)", entsql.Sum(secs)), "total"),
		entsql.As(fmt.Sprintf("COALESCE(SUM(%s * %s), 0)", secs, secs), "total_sq"),
	)

	var rows []kindTimeRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("query time statistics: %w", err)
	}
	out := make(map[problemgen.Kind]TimeStats, len(rows))
	for _, r := range rows {
		out[problemgen.Kind(r.Kind)] = newTimeStats(r.Count, r.Sum, r.SumSquares)
	}
	return out, nil
}

func (s *Store) TimeStatistics(ctx context.Context, kind problemgen.Kind, w Window) (*TimeStats, error) {
	byKind, err := s.TimeStatisticsByKind(ctx, w)
	if err != nil {
		return nil, err
	}
	ts, ok := byKind[kind]
	if !ok || ts.Count == 0 {
		return nil, nil
	}
	return &ts, nil
}

type kindAccuracyRow struct {
	Kind    string `db:"kind"`
	Correct int    `db:"correct"`
	Total   int    `db:"total"`
}

func (s *Store) AccuracyByKind(ctx context.Context, w Window) (map[problemgen.Kind]Accuracy, error) {
	correct := entsql.Table(TableAnswers).As("a").C("is_correct")
	q, args := answersByKind(w, false,
		entsql.As(fmt.Sprintf("COALESCE(%s, 0)", entsql.Sum(correct)), "correct"),
		entsql.As(entsql.Count("*"), "total"),
	)

	var rows []kindAccuracyRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("query accuracy: %w", err)
	}
	out := make(map[problemgen.Kind]Accuracy, len(rows))
	for _, r := range rows {
		out[problemgen.Kind(r.Kind)] = newAccuracy(r.Correct, r.Total)
	}
	return out, nil
}

func (s *Store) TotalAccuracy(ctx context.Context, w Window) (Accuracy, error) {
	byKind, err := s.AccuracyByKind(ctx, w)
	if err != nil {
		return Accuracy{}, err
	}
	return sumAccuracy(byKind), nil
}

func (s *Store) AnswerDays(ctx context.Context, from, to time.Time) ([]string, error) {
	b := builder()
	t := b.Table(TableAnswers)
	q, args := b.Select(t.C("created_at")).
		From(t).
		Where(entsql.And(
			entsql.GTE(t.C("created_at"), from.UTC()),
			entsql.LT(t.C("created_at"), to.UTC()),
		)).
		Query()

	var stamps []time.Time
	if err := s.db.SelectContext(ctx, &stamps, q, args...); err != nil {
		return nil, fmt.Errorf("query answer days: %w", err)
	}
	return distinctDays(stamps), nil
}

func sumAccuracy(byKind map[problemgen.Kind]Accuracy) Accuracy {
	var correct, total int
	for _, a := range byKind {
		correct += a.Correct
		total += a.Total
	}
	return newAccuracy(correct, total)
}

// distinctDays reduces timestamps to unique UTC dates, most recent first.
func distinctDays(stamps []time.Time) []string {
	seen := make(map[string]struct{}, len(stamps))
	days := make([]string, 0, len(stamps))
	for _, t := range stamps {
		d := t.UTC().Format(DayLayout)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days
}
