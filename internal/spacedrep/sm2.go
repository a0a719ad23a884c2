package spacedrep

import (
	"math"
	"time"
)

const (
	// DefaultEaseFactor is the ease of a never-reviewed item.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the floor the ease factor is clamped to.
	MinEaseFactor = 1.3

	// FirstInterval and SecondInterval are the fixed intervals (days) after
	// the first and second consecutive successful recall.
	FirstInterval  = 1
	SecondInterval = 6

	// RetryDelay is how soon a failed item comes back.
	RetryDelay = 10 * time.Minute
)

// State is the SM-2 scheduling state of one item.
type State struct {
	Repetitions int     `json:"repetitions"`
	Interval    int     `json:"interval"` // days
	EaseFactor  float64 `json:"ease_factor"`
}

// InitialState is the state of an item that has never been reviewed.
func InitialState() State {
	return State{Repetitions: 0, Interval: 0, EaseFactor: DefaultEaseFactor}
}

// Schedule is the outcome of a review: the new state and when the item is
// due next.
type Schedule struct {
	State
	NextReviewDate time.Time `json:"next_review_date"`
	// ImmediateRetry is set for failed recalls, which come back after
	// RetryDelay instead of a whole number of days.
	ImmediateRetry bool `json:"immediate_retry"`
}

// Review applies the SM-2 update rule to cur for a recall of grade g at now.
// It performs no I/O. Grades outside 0-5 return a *GradeError.
func Review(cur State, g Grade, now time.Time) (Schedule, error) {
	if !g.Valid() {
		return Schedule{}, &GradeError{Grade: g}
	}

	ease := UpdateEase(cur.EaseFactor, g)

	if !g.Passed() {
		return Schedule{
			State:          State{Repetitions: 0, Interval: 0, EaseFactor: ease},
			NextReviewDate: now.Add(RetryDelay),
			ImmediateRetry: true,
		}, nil
	}

	reps := cur.Repetitions + 1
	var interval int
	switch reps {
	case 1:
		interval = FirstInterval
	case 2:
		interval = SecondInterval
	default:
		interval = int(math.Round(float64(cur.Interval) * ease))
	}

	return Schedule{
		State:          State{Repetitions: reps, Interval: interval, EaseFactor: ease},
		NextReviewDate: now.AddDate(0, 0, interval),
	}, nil
}

// UpdateEase computes the new ease factor:
// EF' = max(1.3, EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)))
func UpdateEase(ease float64, g Grade) float64 {
	d := float64(GradePerfect - g)
	next := ease + (0.1 - d*(0.08+d*0.02))
	if next < MinEaseFactor {
		return MinEaseFactor
	}
	return next
}
