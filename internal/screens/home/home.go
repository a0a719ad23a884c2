package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/drill"
	"github.com/abhisek/mathdrill/internal/screens/report"
	"github.com/abhisek/mathdrill/internal/spacedrep"
	"github.com/abhisek/mathdrill/internal/stats"
	"github.com/abhisek/mathdrill/internal/ui/components"
)

// dashboardMsg carries the figures shown in the stats bar.
type dashboardMsg struct {
	Due     int
	Overdue int
	Streak  int
	Err     error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps   screen.Deps
	menu   components.Menu
	due     int
	overdue int
	streak  int
	loaded  bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: "ADDITION", Shortcut: "a", Action: push(func() screen.Screen {
			return drill.New(deps, problemgen.KindAdd)
		})},
		{Label: "MULTIPLICATION", Shortcut: "m", Action: push(func() screen.Screen {
			return drill.New(deps, problemgen.KindMultiply)
		})},
		{Label: "STATS", Shortcut: "s", Action: push(func() screen.Screen {
			return report.New(deps)
		})},
		{Label: "QUIT", Shortcut: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadDashboard()
}

// loadDashboard counts due and overdue reviews and the current streak.
func (h *HomeScreen) loadDashboard() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		if deps.Repo == nil || deps.Analytics == nil {
			return dashboardMsg{}
		}
		ctx := context.Background()
		now := deps.Now()

		due, err := deps.Repo.CountDueReviewItems(ctx, now)
		if err != nil {
			return dashboardMsg{Err: err}
		}
		items, err := deps.Repo.GetDueReviewItems(ctx, now, 0)
		if err != nil {
			return dashboardMsg{Err: err}
		}
		overdue := 0
		for _, item := range items {
			rs := item.ReviewState()
			if rs.Status(now) == spacedrep.ReviewOverdue {
				overdue++
			}
		}
		y, m, d := now.UTC().Date()
		tomorrow := time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
		days, err := deps.Analytics.AnswerDays(ctx, time.Time{}, tomorrow)
		if err != nil {
			return dashboardMsg{Err: err}
		}
		return dashboardMsg{Due: due, Overdue: overdue, Streak: stats.Streak(days, now)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		h.loaded = true
		if msg.Err != nil {
			h.deps.Log().Warn("load dashboard", zap.Error(msg.Err))
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.due = msg.Due
		h.overdue = msg.Overdue
		h.streak = msg.Streak
		return h, nil

	case router.ResumeMsg:
		return h, h.loadDashboard()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to estimate
	// the terminal height.
	compact := height+8 < 30 || width < 100
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mood(), cw))
	}
	sections = append(sections, renderStatsBar(h.due, h.overdue, h.streak, h.loaded, h.errMsg, cw, compact))
	if compact {
		sections = append(sections, renderMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderMenu(h.menu, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) mood() Mood {
	switch {
	case h.due >= 3:
		return MoodReviews
	case h.streak >= 3:
		return MoodOnStreak
	default:
		return MoodIdle
	}
}
