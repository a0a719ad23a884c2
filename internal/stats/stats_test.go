package stats

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/mathdrill/internal/clock"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/store"
)

var now = time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)

func TestStreak(t *testing.T) {
	tests := []struct {
		name string
		days []string
		want int
	}{
		{"no days", nil, 0},
		{"today only", []string{"2025-01-10"}, 1},
		{"yesterday only", []string{"2025-01-09"}, 1},
		{"three ending today", []string{"2025-01-10", "2025-01-09", "2025-01-08"}, 3},
		{"two ending yesterday", []string{"2025-01-09", "2025-01-08", "2025-01-05"}, 2},
		{"gap breaks", []string{"2025-01-10", "2025-01-08"}, 1},
		{"stale", []string{"2025-01-08", "2025-01-07"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.days, now); got != tt.want {
				t.Errorf("Streak(%v) = %d, want %d", tt.days, got, tt.want)
			}
		})
	}
}

func TestStreak_MonthBoundary(t *testing.T) {
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	days := []string{"2025-03-01", "2025-02-28", "2025-02-27"}
	if got := Streak(days, at); got != 3 {
		t.Errorf("Streak across month = %d, want 3", got)
	}
}

func TestMissingDays(t *testing.T) {
	days := []string{"2025-01-10", "2025-01-08", "2025-01-05", "2024-12-01"}

	got := MissingDays(days, now, 10)
	want := []string{
		"2025-01-09", "2025-01-07", "2025-01-06", "2025-01-04",
		"2025-01-03", "2025-01-02", "2025-01-01",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingDays = %v, want %v", got, want)
	}

	active := DaysInSpan(days, now, 10)
	wantActive := []string{"2025-01-10", "2025-01-08", "2025-01-05"}
	if !reflect.DeepEqual(active, wantActive) {
		t.Errorf("DaysInSpan = %v, want %v", active, wantActive)
	}
}

func TestBuild_Empty(t *testing.T) {
	r, err := Build(context.Background(), store.NewMemory(), now)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !r.Empty() {
		t.Error("expected empty report")
	}
	if r.Streak != 0 {
		t.Errorf("Streak = %d, want 0", r.Streak)
	}
	if len(r.MissingDays) != ActivitySpan {
		t.Errorf("MissingDays = %d entries, want %d", len(r.MissingDays), ActivitySpan)
	}
	if len(r.Totals) != 3 {
		t.Errorf("Totals = %d entries, want 3", len(r.Totals))
	}
}

func TestBuild(t *testing.T) {
	clk := &clock.Manual{T: now.AddDate(0, 0, -1)}
	repo := store.NewMemory(store.WithClock(clk))
	ctx := context.Background()

	record := func(kind problemgen.Kind, secs []float64, correct []bool) {
		t.Helper()
		deckID, err := repo.CreateDeck(ctx)
		if err != nil {
			t.Fatal(err)
		}
		for i, s := range secs {
			opID, err := repo.InsertOperation(ctx, kind, 1, 1, kind.Apply(1, 1), &deckID)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := repo.InsertAnswer(ctx, opID, 0, correct[i], s, &deckID); err != nil {
				t.Fatal(err)
			}
		}
		if err := repo.CompleteDeck(ctx, deckID); err != nil {
			t.Fatal(err)
		}
	}

	record(problemgen.KindAdd, []float64{1, 3}, []bool{true, true})
	clk.T = now
	record(problemgen.KindMultiply, []float64{2, 9}, []bool{true, false})

	r, err := Build(ctx, repo, now)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(r.Kinds) != 2 {
		t.Fatalf("Kinds = %d, want 2", len(r.Kinds))
	}
	add := r.Kinds[0]
	if add.Kind != problemgen.KindAdd {
		t.Errorf("Kinds[0] = %s, want ADD", add.Kind)
	}
	allTime := add.Periods[0]
	if allTime.Accuracy.Correct != 2 || allTime.Accuracy.Total != 2 {
		t.Errorf("ADD all-time accuracy = %+v, want 2/2", allTime.Accuracy)
	}
	if allTime.Timing == nil || allTime.Timing.Mean != 2 || allTime.Timing.Stdev != 1 {
		t.Errorf("ADD all-time timing = %+v, want mean 2 stdev 1", allTime.Timing)
	}

	mul := r.Kinds[1]
	if mul.Periods[0].Timing == nil || mul.Periods[0].Timing.Count != 1 {
		t.Errorf("MULTIPLY timing = %+v, want one correct answer", mul.Periods[0].Timing)
	}

	if r.Totals[0].Accuracy.Correct != 3 || r.Totals[0].Accuracy.Total != 4 {
		t.Errorf("total accuracy = %+v, want 3/4", r.Totals[0].Accuracy)
	}
	if r.Streak != 2 {
		t.Errorf("Streak = %d, want 2", r.Streak)
	}
	if len(r.RecentDecks) != 2 {
		t.Errorf("RecentDecks = %d, want 2", len(r.RecentDecks))
	}
	if r.Empty() {
		t.Error("report should not be empty")
	}
}
