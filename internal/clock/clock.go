package clock

import (
	"fmt"
	"time"
)

// DateLayout is the format accepted for --override-date.
const DateLayout = "2006-01-02"

// Clock provides the current time. Everything that stamps or compares
// schedule dates goes through a Clock so tests and --override-date can
// pin "now".
type Clock interface {
	Now() time.Time
}

// System is the wall clock in UTC.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Override reports the configured calendar date combined with the current
// UTC time of day.
type Override struct {
	Date time.Time
	// Base supplies the time of day. Nil means System.
	Base Clock
}

func (o Override) Now() time.Time {
	base := o.Base
	if base == nil {
		base = System{}
	}
	now := base.Now().UTC()
	y, m, d := o.Date.Date()
	return time.Date(y, m, d, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
}

// Fixed always returns T.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Manual is a settable clock for tests that need time to move.
type Manual struct {
	T time.Time
}

func (m *Manual) Now() time.Time { return m.T }

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) { m.T = m.T.Add(d) }

// ParseOverride parses a YYYY-MM-DD date into an Override clock.
func ParseOverride(s string) (Override, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return Override{}, fmt.Errorf("parse override date %q (want YYYY-MM-DD): %w", s, err)
	}
	return Override{Date: d}, nil
}
