package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/timefmt"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// SummaryScreen displays the summary of a completed deck.
type SummaryScreen struct {
	sess    *session.Session
	summary *store.DeckSummary
	now     time.Time
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a completed session.
func New(deps screen.Deps, sess *session.Session) *SummaryScreen {
	sum, _ := sess.Summary()
	return &SummaryScreen{sess: sess, summary: sum, now: deps.Now()}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Deck Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return layout.Centered(width, theme.TextDim, "\n\n  No summary available.")
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(s.sess.Kind.DisplayName() + " deck complete!"))
	b.WriteString("\n\n")

	panel := components.Panel("Results", [][2]string{
		{"Correct", fmt.Sprintf("%d/%d", sum.CorrectAnswers, sum.TotalQuestions)},
		{"Accuracy", timefmt.Percent(sum.AccuracyPercentage)},
		{"Total time", timefmt.Duration(sum.TotalTimeSeconds)},
		{"Average", timefmt.Duration(sum.AverageTimeSeconds)},
	}, components.ContentWidth(width))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, panel))
	b.WriteString("\n\n")

	bar := components.Meter{Label: "Accuracy", Ratio: sum.AccuracyPercentage / 100, Width: min(width-8, 60)}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(layout.Centered(width, theme.TextDim, "Questions"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, r := range s.sess.Results {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderResult(r)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderResult renders one answered question with its next review.
func (s *SummaryScreen) renderResult(r session.Result) string {
	op := r.Slot.Operation
	mark := theme.Correct.Render("✓")
	answer := fmt.Sprintf("%d", r.Value)
	if !r.Correct {
		mark = theme.Incorrect.Render("✗")
		answer = fmt.Sprintf("%d (was %d)", r.Value, op.Result)
	}

	next := "not scheduled"
	if r.Schedule != nil {
		next = timefmt.Until(s.now, r.Schedule.NextReviewDate)
	}

	tag := "   "
	if r.Slot.IsReview {
		tag = lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(" ↻ ")
	}

	line := fmt.Sprintf("%s%s %-9s = %-14s %6s  %-14s next %s",
		tag, mark, op.Problem().String(), answer,
		timefmt.Duration(r.Elapsed), r.Grade, next)
	return lipgloss.NewStyle().Foreground(theme.Text).Render(line)
}
