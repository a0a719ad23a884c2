package drill

import (
	"time"

	"github.com/abhisek/mathdrill/internal/session"
)

// deckStartedMsg is sent when the orchestrator has built the deck.
type deckStartedMsg struct {
	Session *session.Session
	Err     error
}

// tickMsg refreshes the question timer. Gen ties it to one question so
// ticks from an earlier question are dropped.
type tickMsg struct {
	Gen int
	At  time.Time
}
