package session

import (
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/spacedrep"
	"github.com/abhisek/mathdrill/internal/store"
)

// DeckSize is the number of questions in every deck.
const DeckSize = 10

// Phase represents the lifecycle phase of a session.
type Phase int

const (
	PhaseUninitialized Phase = iota // Zero value, never started
	PhaseInProgress                 // Accepting answers
	PhaseCompleted                  // All answers recorded and summary persisted
	PhaseAbandoned                  // Left before completion
)

// Terminal reports whether no further transitions are allowed.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseAbandoned
}

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInProgress:
		return "in_progress"
	case PhaseCompleted:
		return "completed"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Slot is one question position in the deck.
type Slot struct {
	Operation store.Operation
	// IsReview is true when the operation came from the due review queue.
	IsReview bool
}

// Result records the outcome of one submitted answer.
type Result struct {
	Slot    Slot
	Value   int
	Correct bool
	Elapsed float64
	Grade   spacedrep.Grade
	// Schedule is nil when the review item could not be updated.
	Schedule *spacedrep.Schedule
}

// Session tracks one deck from Start until it is completed or abandoned.
type Session struct {
	// ID correlates log lines for this session.
	ID     string
	DeckID int
	Kind   problemgen.Kind
	Phase  Phase

	// Slots holds exactly DeckSize entries: due reviews first, then new problems.
	Slots []Slot

	// Cursor is the index of the next slot to answer.
	Cursor  int
	Results []Result

	StartedAt time.Time

	summary *store.DeckSummary
}

// Current returns the slot awaiting an answer and its index, or nil and -1
// once every slot is answered or the session is not in progress.
func (s *Session) Current() (*Slot, int) {
	if s.Phase != PhaseInProgress || s.Cursor >= len(s.Slots) {
		return nil, -1
	}
	return &s.Slots[s.Cursor], s.Cursor
}

// Remaining returns the number of unanswered slots.
func (s *Session) Remaining() int {
	return len(s.Slots) - s.Cursor
}

// ReviewCount returns how many slots came from the review queue.
func (s *Session) ReviewCount() int {
	n := 0
	for _, slot := range s.Slots {
		if slot.IsReview {
			n++
		}
	}
	return n
}

// CorrectCount returns the number of correct answers so far.
func (s *Session) CorrectCount() int {
	n := 0
	for _, r := range s.Results {
		if r.Correct {
			n++
		}
	}
	return n
}

// Summary returns the persisted deck summary. It is only available once the
// session is completed.
func (s *Session) Summary() (*store.DeckSummary, error) {
	if s.Phase != PhaseCompleted || s.summary == nil {
		return nil, ErrNotCompleted
	}
	sum := *s.summary
	return &sum, nil
}
