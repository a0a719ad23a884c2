package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/timefmt"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Meter is a labelled horizontal gauge whose fill color reflects how good
// the ratio is.
type Meter struct {
	Label string
	Ratio float64 // 0-1
	Width int
}

// meterColor picks green from 80%, amber from 50%, red below.
func meterColor(ratio float64) color.Color {
	switch {
	case ratio >= 0.8:
		return theme.Success
	case ratio >= 0.5:
		return theme.Warning
	default:
		return theme.Error
	}
}

// View renders the label, the gauge and the percentage.
func (m Meter) View() string {
	ratio := max(0, min(m.Ratio, 1))

	label := ""
	if m.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  "
	}
	pct := "  " + timefmt.Percent(ratio*100)

	barWidth := max(m.Width-lipgloss.Width(label)-len(pct), 4)
	filled := int(float64(barWidth) * ratio)

	bar := lipgloss.NewStyle().Foreground(meterColor(ratio)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))

	return label + bar + lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct)
}

// DeckTrack renders one cell per deck slot: answered slots green or red,
// the current slot highlighted, the rest dim.
func DeckTrack(outcomes []bool, size int) string {
	cells := make([]string, 0, size)
	for i := 0; i < size; i++ {
		switch {
		case i < len(outcomes) && outcomes[i]:
			cells = append(cells, theme.Correct.Render("●"))
		case i < len(outcomes):
			cells = append(cells, theme.Incorrect.Render("●"))
		case i == len(outcomes):
			cells = append(cells, theme.SlotCurrent.Render("◉"))
		default:
			cells = append(cells, theme.SlotPending.Render("○"))
		}
	}
	return strings.Join(cells, " ")
}
