package report

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/clock"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/stats"
	"github.com/abhisek/mathdrill/internal/store"
)

func newDeps() (screen.Deps, *clock.Manual) {
	clk := &clock.Manual{T: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
	repo := store.NewMemory(store.WithClock(clk))
	orch := session.New(repo, problemgen.New(rand.NewSource(11)), nil, session.WithClock(clk))
	return screen.Deps{Orchestrator: orch, Repo: repo, Analytics: repo, Clock: clk}, clk
}

// playDeck answers every question of one deck correctly.
func playDeck(t *testing.T, deps screen.Deps, kind problemgen.Kind) {
	t.Helper()
	ctx := context.Background()
	sess, err := deps.Orchestrator.Start(ctx, kind)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i, slot := range sess.Slots {
		if _, err := deps.Orchestrator.Submit(ctx, sess, i, slot.Operation.Result, 2.5); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}
}

func loaded(t *testing.T, deps screen.Deps) *ReportScreen {
	t.Helper()
	s := New(deps)
	scr, _ := s.Update(s.Init()())
	return scr.(*ReportScreen)
}

func TestReportScreen_Title(t *testing.T) {
	deps, _ := newDeps()
	if got := New(deps).Title(); got != "Stats" {
		t.Errorf("Title = %q, want %q", got, "Stats")
	}
}

func TestReportScreen_Loading(t *testing.T) {
	deps, _ := newDeps()
	if !strings.Contains(New(deps).View(100, 40), "Crunching") {
		t.Error("expected loading view")
	}
}

func TestReportScreen_Empty(t *testing.T) {
	deps, _ := newDeps()
	s := loaded(t, deps)
	if !strings.Contains(s.View(100, 40), "No completed decks yet") {
		t.Error("expected empty-state message")
	}
}

func TestReportScreen_WithDecks(t *testing.T) {
	deps, clk := newDeps()
	playDeck(t, deps, problemgen.KindAdd)
	// Next UTC day, before the addition reviews fall due.
	clk.Advance(13 * time.Hour)
	playDeck(t, deps, problemgen.KindMultiply)

	s := loaded(t, deps)
	view := s.View(120, 80)
	for _, want := range []string{"Addition", "Multiplication", "100.0%", "2 days streak", "Recent decks", "10/10"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReportScreen_CyclePeriod(t *testing.T) {
	deps, _ := newDeps()
	s := loaded(t, deps)

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.period != 0 {
		t.Errorf("period = %d, want 0", s.period)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if want := len(stats.Periods(deps.Now())) - 1; s.period != want {
		t.Errorf("period = %d, want %d after wrapping", s.period, want)
	}
}

func TestReportScreen_EscPops(t *testing.T) {
	deps, _ := newDeps()
	s := loaded(t, deps)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("esc produced %T, want PopScreenMsg", cmd())
	}
}

func TestRenderReport_MissingDays(t *testing.T) {
	deps, _ := newDeps()
	playDeck(t, deps, problemgen.KindAdd)

	r, err := stats.Build(context.Background(), deps.Analytics, deps.Now())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out := RenderReport(r, -1)
	if !strings.Contains(out, "1 day streak") {
		t.Error("expected singular streak")
	}
	if !strings.Contains(out, "Missed: Jun 9") {
		t.Errorf("expected missed days listing, got:\n%s", out)
	}
}
