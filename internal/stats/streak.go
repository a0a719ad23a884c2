package stats

import (
	"time"

	"github.com/abhisek/mathdrill/internal/store"
)

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayString(t time.Time) string {
	return t.UTC().Format(store.DayLayout)
}

// Streak counts consecutive answer days ending today or yesterday. days must
// be distinct "2006-01-02" dates, most recent first.
func Streak(days []string, now time.Time) int {
	if len(days) == 0 {
		return 0
	}
	today := startOfDay(now)
	expected := today
	switch days[0] {
	case dayString(today):
	case dayString(today.AddDate(0, 0, -1)):
		expected = today.AddDate(0, 0, -1)
	default:
		return 0
	}

	streak := 0
	for _, d := range days {
		if d != dayString(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// window returns the span days ending today, most recent first.
func window(now time.Time, span int) []string {
	today := startOfDay(now)
	out := make([]string, 0, span)
	for i := 0; i < span; i++ {
		out = append(out, dayString(today.AddDate(0, 0, -i)))
	}
	return out
}

// DaysInSpan returns the answer days within the span days ending today,
// most recent first.
func DaysInSpan(days []string, now time.Time, span int) []string {
	have := toSet(days)
	var out []string
	for _, d := range window(now, span) {
		if have[d] {
			out = append(out, d)
		}
	}
	return out
}

// MissingDays returns the days without answers within the span days ending
// today, most recent first.
func MissingDays(days []string, now time.Time, span int) []string {
	have := toSet(days)
	var out []string
	for _, d := range window(now, span) {
		if !have[d] {
			out = append(out, d)
		}
	}
	return out
}

func toSet(days []string) map[string]bool {
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}
