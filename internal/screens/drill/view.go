package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/timefmt"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

func (s *DrillScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.sess == nil:
		return layout.Centered(width, theme.TextDim, "\n\n\n  Shuffling your deck...")
	case s.quitConfirm:
		return renderQuitConfirm(width, s.sess.Cursor, s.sess.Remaining())
	case s.last != nil:
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

// renderInfoLine renders the kind, question counter and timer above the
// question.
func (s *DrillScreen) renderInfoLine(width int) string {
	slot, idx := s.sess.Current()
	if slot == nil {
		idx = len(s.sess.Slots) - 1
		slot = &s.sess.Slots[idx]
	}

	label := "New"
	if slot.IsReview {
		label = "Review"
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", s.kind.DisplayName(), label))

	elapsed := s.watch.Elapsed(s.tickedAt).Seconds()
	if s.last != nil {
		elapsed = s.last.Elapsed
	}
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %s %s",
			idx+1, len(s.sess.Slots),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.sess.CorrectCount(),
			lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱"),
			timefmt.Duration(elapsed),
		))

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + infoRight
	}
	return line
}

func (s *DrillScreen) outcomes() []bool {
	out := make([]bool, len(s.sess.Results))
	for i, r := range s.sess.Results {
		out[i] = r.Correct
	}
	return out
}

// renderQuestion renders the active question and the answer input.
func (s *DrillScreen) renderQuestion(width int) string {
	slot, _ := s.sess.Current()
	if slot == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.DeckTrack(s.outcomes(), len(s.sess.Slots))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(slot.Operation.Problem().String() + " = ?"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View()))

	if s.hint != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(width, theme.Warning, s.hint))
	}
	return b.String()
}

// renderFeedback shows whether the answer was right, its grade, and when
// the problem comes back.
func (s *DrillScreen) renderFeedback(width int) string {
	res := s.last
	op := res.Slot.Operation

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.DeckTrack(s.outcomes(), len(s.sess.Slots))))
	b.WriteString("\n\n")

	if res.Correct {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Inherit(theme.Correct).Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Inherit(theme.Incorrect).Render("Not quite"))
	}
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Text,
		fmt.Sprintf("%s = %d", op.Problem().String(), op.Result)))
	b.WriteString("\n\n")

	details := fmt.Sprintf("Time: %s   Grade: %s", timefmt.Duration(res.Elapsed), res.Grade)
	b.WriteString(layout.Centered(width, theme.TextDim, details))
	b.WriteString("\n")
	if res.Schedule != nil {
		next := timefmt.Until(s.deps.Now(), res.Schedule.NextReviewDate)
		b.WriteString(layout.Centered(width, theme.Secondary, "Next review: "+next))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	prompt := "Press any key to continue..."
	if s.sess.Phase == session.PhaseCompleted {
		prompt = "Deck complete! Press any key for your summary..."
	}
	b.WriteString(layout.Centered(width, theme.TextDim, prompt))
	return b.String()
}

// renderQuitConfirm renders the abandon confirmation dialog.
func renderQuitConfirm(width, answered, left int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Abandon this deck?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.TextDim,
		fmt.Sprintf("The %d answers so far stay in your history.", answered)))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.TextDim,
		fmt.Sprintf("%d questions left unanswered.", left)))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, theme.Success, "[Y] Yes, abandon"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Primary, "[N] No, keep going"))
	return b.String()
}

// renderError renders a persistence failure. The deck cannot continue.
func renderError(width int, errMsg string) string {
	return layout.Centered(width, theme.Error,
		fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
