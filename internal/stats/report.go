package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/store"
)

const (
	// ActivitySpan is how many days, today included, the activity view covers.
	ActivitySpan = 10

	// RecentDeckLimit caps the recent deck list.
	RecentDeckLimit = 10
)

// Period names a reporting window.
type Period struct {
	Name   string
	Window store.Window
}

// Periods returns the all-time, last-30-days and last-10-decks windows.
func Periods(now time.Time) []Period {
	return []Period{
		{Name: "All time", Window: store.AllTime()},
		{Name: "Last 30 days", Window: store.Last30Days(now)},
		{Name: "Last 10 decks", Window: store.LastNDecks(10)},
	}
}

// Timing summarizes correct answer times.
type Timing struct {
	Count int
	Mean  float64
	Stdev float64
}

// PeriodStats holds the figures for one window.
type PeriodStats struct {
	Period   Period
	Accuracy store.Accuracy
	// Timing is nil when the window has no correct answers.
	Timing *Timing
}

// KindReport holds per-period figures for one operation kind.
type KindReport struct {
	Kind    problemgen.Kind
	Periods []PeriodStats
}

// Report is the performance overview shown by the stats screen and command.
type Report struct {
	GeneratedAt time.Time
	Kinds       []KindReport
	// Totals has one entry per period with accuracy across all kinds.
	Totals      []PeriodStats
	Streak      int
	ActiveDays  []string
	MissingDays []string
	RecentDecks []store.Deck
}

// Empty reports whether no completed deck has any answer.
func (r *Report) Empty() bool {
	return len(r.Kinds) == 0
}

// Build gathers the report from analytics as of now.
func Build(ctx context.Context, a store.Analytics, now time.Time) (*Report, error) {
	now = now.UTC()
	periods := Periods(now)
	r := &Report{GeneratedAt: now}

	accuracy := make([]map[problemgen.Kind]store.Accuracy, len(periods))
	timing := make([]map[problemgen.Kind]store.TimeStats, len(periods))
	for i, p := range periods {
		var err error
		if accuracy[i], err = a.AccuracyByKind(ctx, p.Window); err != nil {
			return nil, fmt.Errorf("accuracy for %s: %w", p.Name, err)
		}
		if timing[i], err = a.TimeStatisticsByKind(ctx, p.Window); err != nil {
			return nil, fmt.Errorf("time statistics for %s: %w", p.Name, err)
		}

		total, err := a.TotalAccuracy(ctx, p.Window)
		if err != nil {
			return nil, fmt.Errorf("total accuracy for %s: %w", p.Name, err)
		}
		r.Totals = append(r.Totals, PeriodStats{Period: p, Accuracy: total})
	}

	// All-time accuracy lists every kind that has answers.
	var kinds []problemgen.Kind
	for k := range accuracy[0] {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, k := range kinds {
		kr := KindReport{Kind: k}
		for i, p := range periods {
			ps := PeriodStats{Period: p, Accuracy: accuracy[i][k]}
			if ts, ok := timing[i][k]; ok && ts.Count > 0 {
				ps.Timing = &Timing{Count: ts.Count, Mean: ts.Mean, Stdev: ts.Stdev()}
			}
			kr.Periods = append(kr.Periods, ps)
		}
		r.Kinds = append(r.Kinds, kr)
	}

	tomorrow := startOfDay(now).AddDate(0, 0, 1)
	allDays, err := a.AnswerDays(ctx, time.Time{}, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("answer days: %w", err)
	}
	r.Streak = Streak(allDays, now)
	r.ActiveDays = DaysInSpan(allDays, now, ActivitySpan)
	r.MissingDays = MissingDays(allDays, now, ActivitySpan)

	if r.RecentDecks, err = a.RecentDecks(ctx, RecentDeckLimit); err != nil {
		return nil, fmt.Errorf("recent decks: %w", err)
	}
	return r, nil
}
