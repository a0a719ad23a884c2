package session

import (
	"errors"
	"fmt"
)

var (
	ErrNoSession        = errors.New("no active session")
	ErrSessionTerminal  = errors.New("session is no longer in progress")
	ErrInvalidElapsed   = errors.New("elapsed time must be a non-negative number")
	ErrIncomplete       = errors.New("deck has unanswered questions")
	ErrAlreadyFinalized = errors.New("deck already finalized")
	ErrNotCompleted     = errors.New("session is not completed")
)

// SlotError reports an answer submitted for a slot other than the current one.
type SlotError struct {
	Index  int
	Cursor int
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("answer for slot %d out of order (current slot %d)", e.Index, e.Cursor)
}

// Step identifies which persistence step failed.
type Step string

const (
	StepStart    Step = "start"
	StepAnswer   Step = "answer"
	StepSchedule Step = "schedule"
	StepFinalize Step = "finalize"
	StepAbandon  Step = "abandon"
)

// PersistError wraps a store failure with the step it happened in.
type PersistError struct {
	Step Step
	Err  error
}

func (e *PersistError) Error() string {
	if e.Step == StepSchedule {
		return fmt.Sprintf("answer recorded, schedule not updated: %v", e.Err)
	}
	return fmt.Sprintf("persist %s: %v", e.Step, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// AnswerRecorded reports whether the answer itself was stored before the
// failure, so the session advanced.
func (e *PersistError) AnswerRecorded() bool {
	return e.Step == StepSchedule || e.Step == StepFinalize
}
