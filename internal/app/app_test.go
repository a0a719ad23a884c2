package app

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/clock"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/report"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
)

func testDeps() screen.Deps {
	clk := &clock.Manual{T: time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)}
	repo := store.NewMemory(store.WithClock(clk))
	orch := session.New(repo, problemgen.New(rand.NewSource(1)), nil, session.WithClock(clk))
	return screen.Deps{Orchestrator: orch, Repo: repo, Analytics: repo, Clock: clk}
}

func sized(m AppModel) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(AppModel)
}

func TestAppModel_RendersHomeFrame(t *testing.T) {
	m := sized(newAppModel(Options{Deps: testDeps()}))
	out := m.render()

	for _, want := range []string{"Mathdrill", "Home", "Tue Apr 1", "Ctrl+C"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps()})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	out := updated.(AppModel).render()
	if strings.Contains(out, "Home") {
		t.Error("expected the minimum size message instead of the home screen")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := sized(newAppModel(Options{Deps: testDeps()}))
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("ctrl+c produced %T, want tea.QuitMsg", cmd())
	}
}

func TestAppModel_PushUsesScreenHints(t *testing.T) {
	deps := testDeps()
	m := sized(newAppModel(Options{Deps: deps}))

	updated, _ := m.Update(router.PushScreenMsg{Screen: report.New(deps)})
	m = updated.(AppModel)

	if m.router.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", m.router.Depth())
	}
	out := m.render()
	if !strings.Contains(out, "Stats") || !strings.Contains(out, "Period") {
		t.Error("expected the stats title and its key hints")
	}
}

func TestAppModel_StartKindOpensDrill(t *testing.T) {
	kind := problemgen.KindMultiply
	m := newAppModel(Options{Deps: testDeps(), StartKind: &kind})
	if m.Init() == nil {
		t.Fatal("expected init commands")
	}
	if m.startKind == nil || *m.startKind != problemgen.KindMultiply {
		t.Error("start kind not kept")
	}
}
