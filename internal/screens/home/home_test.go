package home

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
	"github.com/abhisek/mathdrill/internal/store"
)

func newDeps() (screen.Deps, *clock.Manual) {
	clk := &clock.Manual{T: time.Date(2025, 7, 14, 17, 0, 0, 0, time.UTC)}
	repo := store.NewMemory(store.WithClock(clk))
	orch := session.New(repo, problemgen.New(rand.NewSource(5)), nil, session.WithClock(clk))
	return screen.Deps{Orchestrator: orch, Repo: repo, Analytics: repo, Clock: clk}, clk
}

// missDeck plays one deck answering every question wrong, leaving ten
// reviews due after the retry delay.
func missDeck(t *testing.T, deps screen.Deps) {
	t.Helper()
	ctx := context.Background()
	sess, err := deps.Orchestrator.Start(ctx, problemgen.KindAdd)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i, slot := range sess.Slots {
		if _, err := deps.Orchestrator.Submit(ctx, sess, i, slot.Operation.Result+1, 4); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}
}

// passDeck plays one deck answering every question quickly and correctly,
// scheduling each item a day out.
func passDeck(t *testing.T, deps screen.Deps) {
	t.Helper()
	ctx := context.Background()
	sess, err := deps.Orchestrator.Start(ctx, problemgen.KindMultiply)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i, slot := range sess.Slots {
		if _, err := deps.Orchestrator.Submit(ctx, sess, i, slot.Operation.Result, 1.5); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}
}

func loaded(t *testing.T, deps screen.Deps) *HomeScreen {
	t.Helper()
	h := New(deps)
	scr, _ := h.Update(h.Init()())
	return scr.(*HomeScreen)
}

func TestHomeScreen_EmptyDashboard(t *testing.T) {
	deps, _ := newDeps()
	h := loaded(t, deps)

	if !h.loaded || h.errMsg != "" {
		t.Fatalf("loaded = %v, errMsg = %q", h.loaded, h.errMsg)
	}
	if h.due != 0 || h.streak != 0 {
		t.Errorf("due = %d, streak = %d, want 0, 0", h.due, h.streak)
	}
	if h.mood() != MoodIdle {
		t.Errorf("mood = %v, want idle", h.mood())
	}

	view := h.View(120, 40)
	for _, want := range []string{"ADDITION", "MULTIPLICATION", "STATS", "QUIT", "NO REVIEWS DUE"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHomeScreen_DueReviewsAndStreak(t *testing.T) {
	deps, clk := newDeps()
	missDeck(t, deps)
	clk.Advance(time.Hour)

	h := loaded(t, deps)
	if h.due != session.DeckSize {
		t.Errorf("due = %d, want %d", h.due, session.DeckSize)
	}
	if h.streak != 1 {
		t.Errorf("streak = %d, want 1", h.streak)
	}
	if h.mood() != MoodReviews {
		t.Errorf("mood = %v, want reviews", h.mood())
	}
	if h.overdue != 0 {
		t.Errorf("overdue = %d, want 0 for retry items", h.overdue)
	}
}

func TestHomeScreen_OverdueReviews(t *testing.T) {
	deps, clk := newDeps()
	passDeck(t, deps)

	clk.Advance(12 * time.Hour)
	h := loaded(t, deps)
	if h.due != 0 || h.overdue != 0 {
		t.Fatalf("due = %d, overdue = %d before the review date, want 0, 0", h.due, h.overdue)
	}

	// One-day interval lapses twelve hours after the review date.
	clk.Advance(60 * time.Hour)
	h = loaded(t, deps)
	if h.due != session.DeckSize || h.overdue != session.DeckSize {
		t.Errorf("due = %d, overdue = %d, want %d each", h.due, h.overdue, session.DeckSize)
	}
	if view := h.View(120, 40); !strings.Contains(view, "10 OVERDUE") {
		t.Errorf("view missing overdue count:\n%s", view)
	}
}

func TestHomeScreen_ShortcutsPushScreens(t *testing.T) {
	tests := []struct {
		key   rune
		title string
	}{
		{'a', "Addition Drill"},
		{'m', "Multiplication Drill"},
		{'s', "Stats"},
	}
	for _, tt := range tests {
		deps, _ := newDeps()
		h := loaded(t, deps)

		_, cmd := h.Update(tea.KeyPressMsg{Code: tt.key, Text: string(tt.key)})
		if cmd == nil {
			t.Fatalf("key %q: expected a command", tt.key)
		}
		push, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("key %q produced %T, want PushScreenMsg", tt.key, cmd())
		}
		if push.Screen.Title() != tt.title {
			t.Errorf("key %q pushed %q, want %q", tt.key, push.Screen.Title(), tt.title)
		}
	}
}

func TestHomeScreen_ResumeReloads(t *testing.T) {
	deps, clk := newDeps()
	h := loaded(t, deps)

	missDeck(t, deps)
	clk.Advance(time.Hour)

	_, cmd := h.Update(router.ResumeMsg{})
	if cmd == nil {
		t.Fatal("expected reload on resume")
	}
	h.Update(cmd())
	if h.due != session.DeckSize {
		t.Errorf("due after resume = %d, want %d", h.due, session.DeckSize)
	}
}

func TestRenderMascot_UnknownMoodFallsBack(t *testing.T) {
	if RenderMascot(Mood(99)) != RenderMascot(MoodIdle) {
		t.Error("unknown mood should render the idle mascot")
	}
}
