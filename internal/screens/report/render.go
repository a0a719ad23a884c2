package report

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/mathdrill/internal/stats"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/timefmt"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
	valueStyle   = lipgloss.NewStyle().Foreground(theme.Text)
	activeStyle  = lipgloss.NewStyle().Foreground(theme.Success)
	missingStyle = lipgloss.NewStyle().Foreground(theme.Border)
)

// RenderReport renders the full performance report. period selects which
// window the per-kind section highlights; -1 shows every window.
func RenderReport(r *stats.Report, period int) string {
	if r.Empty() {
		return labelStyle.Italic(true).Render("No completed decks yet. Start a drill!")
	}

	sections := []string{
		renderStreak(r),
		renderKinds(r, period),
		renderTotals(r),
		renderRecentDecks(r),
	}
	return strings.Join(sections, "\n\n")
}

func renderStreak(r *stats.Report) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Activity"))
	b.WriteString("\n")

	days := "days"
	if r.Streak == 1 {
		days = "day"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("★ %d %s streak", r.Streak, days)))
	b.WriteString("\n")

	active := make(map[string]bool, len(r.ActiveDays))
	for _, d := range r.ActiveDays {
		active[d] = true
	}
	// Oldest first, reading left to right.
	var cells []string
	today := r.GeneratedAt.UTC()
	for i := stats.ActivitySpan - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format(store.DayLayout)
		if active[day] {
			cells = append(cells, activeStyle.Render("■"))
		} else {
			cells = append(cells, missingStyle.Render("□"))
		}
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("Last %d days  ", stats.ActivitySpan)))
	b.WriteString(strings.Join(cells, " "))

	if len(r.MissingDays) > 0 && len(r.MissingDays) < stats.ActivitySpan {
		missed := make([]string, len(r.MissingDays))
		for i, d := range r.MissingDays {
			if t, err := time.Parse(store.DayLayout, d); err == nil {
				missed[i] = t.Format("Jan 2")
			} else {
				missed[i] = d
			}
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Missed: " + strings.Join(missed, ", ")))
	}
	return b.String()
}

func renderKinds(r *stats.Report, period int) string {
	var b strings.Builder
	for i, kr := range r.Kinds {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(headingStyle.Render(kr.Kind.DisplayName()))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-14s %9s %9s %9s %9s", "", "Accuracy", "Answers", "Mean", "Stdev")))
		for j, ps := range kr.Periods {
			b.WriteString("\n")
			b.WriteString(renderPeriodRow(ps, period == -1 || period == j))
		}
	}
	return b.String()
}

func renderPeriodRow(ps stats.PeriodStats, highlight bool) string {
	mean, stdev := "-", "-"
	if ps.Timing != nil {
		mean = timefmt.Duration(ps.Timing.Mean)
		stdev = timefmt.Duration(ps.Timing.Stdev)
	}
	accuracy := "-"
	if ps.Accuracy.Total > 0 {
		accuracy = timefmt.Percent(ps.Accuracy.Percentage)
	}
	answers := fmt.Sprintf("%d/%d", ps.Accuracy.Correct, ps.Accuracy.Total)

	line := fmt.Sprintf("  %-14s %9s %9s %9s %9s", ps.Period.Name, accuracy, answers, mean, stdev)
	if highlight {
		return valueStyle.Render(line)
	}
	return labelStyle.Render(line)
}

func renderTotals(r *stats.Report) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Overall"))
	for _, ps := range r.Totals {
		b.WriteString("\n")
		accuracy := "-"
		if ps.Accuracy.Total > 0 {
			accuracy = timefmt.Percent(ps.Accuracy.Percentage)
		}
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %-14s %9s %9s",
			ps.Period.Name, accuracy,
			fmt.Sprintf("%d/%d", ps.Accuracy.Correct, ps.Accuracy.Total))))
	}
	return b.String()
}

func renderRecentDecks(r *stats.Report) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Recent decks"))
	if len(r.RecentDecks) == 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("  none"))
		return b.String()
	}
	for _, d := range r.RecentDecks {
		b.WriteString("\n")
		b.WriteString(renderDeckRow(d, r.GeneratedAt))
	}
	return b.String()
}

func renderDeckRow(d store.Deck, now time.Time) string {
	when := "-"
	if d.CompletedAt != nil {
		when = humanize.RelTime(*d.CompletedAt, now, "ago", "from now")
	}
	accuracy, avg := "-", "-"
	if d.AccuracyPercentage != nil {
		accuracy = timefmt.Percent(*d.AccuracyPercentage)
	}
	if d.AverageTimeSeconds != nil {
		avg = timefmt.Duration(*d.AverageTimeSeconds)
	}
	return valueStyle.Render(fmt.Sprintf("  #%-5d %-16s %5d/%-3d %8s  avg %s",
		d.ID, when, d.CorrectAnswers, d.TotalQuestions, accuracy, avg))
}
