package report

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/stats"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

type reportLoadedMsg struct {
	Report *stats.Report
	Err    error
}

// ReportScreen displays accuracy, timing and activity across decks.
type ReportScreen struct {
	deps   screen.Deps
	report *stats.Report
	period int
	offset int
	loaded bool
	errMsg string
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a new ReportScreen.
func New(deps screen.Deps) *ReportScreen {
	return &ReportScreen{deps: deps, period: -1}
}

func (s *ReportScreen) Init() tea.Cmd {
	return func() tea.Msg {
		r, err := stats.Build(context.Background(), s.deps.Analytics, s.deps.Now())
		return reportLoadedMsg{Report: r, Err: err}
	}
}

func (s *ReportScreen) Title() string {
	return "Stats"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Period"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.Err != nil {
			s.deps.Log().Error("load report failed", zap.Error(msg.Err))
			s.errMsg = msg.Err.Error()
		} else {
			s.report = msg.Report
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "left", "h":
			s.cyclePeriod(-1)
		case "right", "l", "tab":
			s.cyclePeriod(1)
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

// cyclePeriod moves the highlighted period, passing through "all" (-1).
func (s *ReportScreen) cyclePeriod(step int) {
	n := len(stats.Periods(s.deps.Now())) + 1
	idx := (s.period + 1 + step + n) % n
	s.period = idx - 1
}

func (s *ReportScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(width, theme.Error, fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(width, theme.TextDim, "\n\n  Crunching numbers...")
	}

	body := RenderReport(s.report, s.period)
	lines := strings.Split(body, "\n")
	if height > 2 && len(lines) > height-2 {
		maxOffset := len(lines) - (height - 2)
		if s.offset > maxOffset {
			s.offset = maxOffset
		}
		lines = lines[s.offset : s.offset+height-2]
	}

	var b strings.Builder
	b.WriteString(s.renderPeriodTabs())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines, "\n")))
	return b.String()
}

func (s *ReportScreen) renderPeriodTabs() string {
	names := []string{"All"}
	for _, p := range stats.Periods(s.deps.Now()) {
		names = append(names, p.Name)
	}
	tabs := make([]string, len(names))
	for i, name := range names {
		style := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1)
		if i == s.period+1 {
			style = style.Foreground(theme.Text).Background(theme.Primary).Bold(true)
		}
		tabs[i] = style.Render(name)
	}
	return "  " + strings.Join(tabs, " ")
}
