// Package timefmt renders review dates and answer times for people.
package timefmt

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

const dateLayout = "2006-01-02"

// Until describes when t happens relative to now: "now" once due,
// "tomorrow" for the next day, a relative phrase such as
// "10 minutes from now" within a month, and a date beyond that.
func Until(now, t time.Time) string {
	d := t.Sub(now)
	switch {
	case d <= 0:
		return "now"
	case d >= 24*time.Hour && d < 48*time.Hour:
		return "tomorrow"
	case d < 30*24*time.Hour:
		return humanize.RelTime(t, now, "ago", "from now")
	default:
		return "on " + t.UTC().Format(dateLayout)
	}
}

// Duration renders an answer time in seconds: "1.5s" under a minute,
// "2m 05s" otherwise.
func Duration(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	total := int(math.Round(seconds))
	return fmt.Sprintf("%dm %02ds", total/60, total%60)
}

// Percent renders a 0-100 percentage with one decimal, e.g. "70.0%".
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
