package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Mood is the calculator mascot's expression on the home screen.
type Mood int

const (
	MoodIdle     Mood = iota
	MoodOnStreak      // three or more days in a row
	MoodReviews       // three or more reviews waiting
)

type mascotArt struct {
	art string
	fg  color.Color
}

var mascots = map[Mood]mascotArt{
	MoodIdle: {fg: theme.Primary, art: `╭─────╮
│ 7+5 │
├─────┤
│ ◕ ◕ │
│  ‿  │
╰─────╯`},
	MoodOnStreak: {fg: theme.ArcadeYellow, art: `╭─────╮
│ 12! │
├─────┤
│ ★ ★ │
│  ◡  │
╰┬───┬╯`},
	MoodReviews: {fg: theme.Accent, art: `╭─────╮
│ ?×? │ !
├─────┤
│ ◔ ◔ │
│  ○  │
╰─────╯`},
}

// RenderMascot returns the colored mascot for mood, falling back to idle.
func RenderMascot(mood Mood) string {
	m, ok := mascots[mood]
	if !ok {
		m = mascots[MoodIdle]
	}
	return lipgloss.NewStyle().Foreground(m.fg).Render(m.art)
}
