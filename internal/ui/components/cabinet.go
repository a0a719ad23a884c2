package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

const (
	maxContentWidth = 60
	minContentWidth = 20

	// cabinetChrome is the border plus inner padding around cabinet content.
	cabinetChrome = 6
)

// ContentWidth returns the shared inner width for boxes stacked inside a
// cabinet of frameWidth columns.
func ContentWidth(frameWidth int) int {
	return max(minContentWidth, min(frameWidth-cabinetChrome, maxContentWidth))
}

// CabinetFrame draws the double-line cabinet around content and centers it
// in width x height.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel renders a titled, rounded box of cw columns. Each row is a
// label/value pair aligned in two columns.
func Panel(title string, rows [][2]string, cw int) string {
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r[0]))
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(labelWidth + 2)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	lines := make([]string, 0, len(rows)+2)
	if title != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(title), "")
	}
	for _, r := range rows {
		lines = append(lines, label.Render(r[0])+value.Render(r[1]))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(max(cw-2, 0)).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

// Button renders a menu button. A non-empty shortcut is shown as a key chip
// before the label.
func Button(label, shortcut string, selected bool, width int) string {
	text := label
	if shortcut != "" {
		text = "[" + strings.ToUpper(shortcut) + "] " + label
	}

	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if selected {
		return style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + text)
	}
	return style.
		Foreground(theme.Text).
		BorderForeground(theme.Border).
		Render(text)
}
