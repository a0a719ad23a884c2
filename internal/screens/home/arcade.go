package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

const arcadeTitleFull = `┳┳┓┏┓┏┳┓┓┏  ┳┓┳┓┳┓ ┓
┃┃┃┣┫ ┃ ┣┫  ┃┃┣┫┃┃ ┃
┛ ┗┛┗ ┻ ┛┗  ┻┛┛┗┻┗┛┗┛`

const arcadeTitleCompact = "M · A · T · H · D · R · I · L · L"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 28

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders due reviews and streak in a bordered box.
// Overdue reviews are called out in the full layout.
func renderStatsBar(due, overdue, streak int, loaded bool, errMsg string, cw int, compact bool) string {
	streakStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	reviewStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	switch {
	case errMsg != "":
		stats = lipgloss.NewStyle().Foreground(theme.Error).Render("stats unavailable")
	case !loaded:
		stats = dimStyle.Render("loading...")
	case compact:
		stats = fmt.Sprintf("%s %s",
			streakStyle.Render(fmt.Sprintf("★%d", streak)),
			reviewText(due, true, reviewStyle, dimStyle),
		)
	default:
		stats = fmt.Sprintf("%s  %s",
			streakStyle.Render(fmt.Sprintf("★ %d DAY STREAK", streak)),
			reviewText(due, false, reviewStyle, dimStyle),
		)
		if overdue > 0 {
			stats += lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).
				Render(fmt.Sprintf("  %d OVERDUE", overdue))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func reviewText(due int, compact bool, active, dim lipgloss.Style) string {
	if due == 0 {
		if compact {
			return dim.Render("⚡0")
		}
		return dim.Render("⚡ NO REVIEWS DUE")
	}
	if compact {
		return active.Render(fmt.Sprintf("⚡%d", due))
	}
	return active.Render(fmt.Sprintf("⚡ %d DUE", due))
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(menu components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(menu.View(buttonWidth))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(menu components.Menu, cw int) string {
	lines := make([]string, 0, len(menu.Items))
	for i, label := range menu.Labels() {
		if i == menu.Selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(mood Mood, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(mood))
}
