package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/clock"
	"github.com/abhisek/mathdrill/internal/grading"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/spacedrep"
	"github.com/abhisek/mathdrill/internal/store"
)

// Orchestrator runs decks: it builds them from due reviews and new problems,
// grades and schedules each answer, and persists the deck summary.
type Orchestrator struct {
	repo   store.Repo
	gen    *problemgen.Generator
	evals  grading.Source
	clock  clock.Clock
	logger *zap.Logger

	mu     sync.Mutex
	active *Session
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock sets the clock used for review dates.
func WithClock(c clock.Clock) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an Orchestrator. A nil evaluator source grades with the
// default response time thresholds.
func New(repo store.Repo, gen *problemgen.Generator, evals grading.Source, opts ...Option) *Orchestrator {
	if gen == nil {
		gen = problemgen.New(nil)
	}
	if evals == nil {
		evals = grading.Static{Evaluator: grading.NewThresholdEvaluator(grading.DefaultConfig())}
	}
	o := &Orchestrator{
		repo:   repo,
		gen:    gen,
		evals:  evals,
		clock:  clock.System{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) now() time.Time {
	return o.clock.Now().UTC()
}

// Active returns the session currently considered active, or nil.
func (o *Orchestrator) Active() *Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

func (o *Orchestrator) setActive(s *Session) {
	o.mu.Lock()
	o.active = s
	o.mu.Unlock()
}

func (o *Orchestrator) clearActive(s *Session) {
	o.mu.Lock()
	if o.active == s {
		o.active = nil
	}
	o.mu.Unlock()
}

// Start abandons any unfinished deck and begins a new one of kind.
func (o *Orchestrator) Start(ctx context.Context, kind problemgen.Kind) (*Session, error) {
	if !kind.Valid() {
		return nil, &problemgen.KindError{Input: string(kind)}
	}

	if prev := o.Active(); prev != nil && prev.Phase == PhaseInProgress {
		if err := o.Abandon(ctx, prev); err != nil {
			return nil, fmt.Errorf("abandon previous session: %w", err)
		}
	}
	if err := o.sweepStale(ctx); err != nil {
		return nil, &PersistError{Step: StepStart, Err: err}
	}

	deckID, err := o.repo.CreateDeck(ctx)
	if err != nil {
		return nil, &PersistError{Step: StepStart, Err: fmt.Errorf("create deck: %w", err)}
	}

	now := o.now()
	slots, err := o.planSlots(ctx, deckID, kind, now)
	if err != nil {
		if aerr := o.repo.AbandonDeck(ctx, deckID); aerr != nil {
			o.logger.Warn("abandon unplanned deck", zap.Int("deck_id", deckID), zap.Error(aerr))
		}
		return nil, &PersistError{Step: StepStart, Err: err}
	}

	s := &Session{
		ID:        uuid.NewString(),
		DeckID:    deckID,
		Kind:      kind,
		Phase:     PhaseInProgress,
		Slots:     slots,
		Results:   make([]Result, 0, len(slots)),
		StartedAt: now,
	}
	o.setActive(s)

	o.logger.Info("deck started",
		zap.String("session_id", s.ID),
		zap.Int("deck_id", deckID),
		zap.String("kind", string(kind)),
		zap.Int("reviews", s.ReviewCount()))
	return s, nil
}

// sweepStale abandons decks an earlier run left in progress.
func (o *Orchestrator) sweepStale(ctx context.Context) error {
	ids, err := o.repo.InProgressDecks(ctx)
	if err != nil {
		return fmt.Errorf("list in-progress decks: %w", err)
	}
	for _, id := range ids {
		if err := o.repo.AbandonDeck(ctx, id); err != nil && !errors.Is(err, store.ErrDeckNotInProgress) {
			return fmt.Errorf("abandon stale deck %d: %w", id, err)
		}
		o.logger.Info("abandoned stale deck", zap.Int("deck_id", id))
	}
	return nil
}

// Submit records the answer for slotIndex, which must be the current slot.
// Validation failures leave the session untouched. A *PersistError whose
// AnswerRecorded reports true comes with a non-nil Result: the answer counts
// and the cursor has advanced. The tenth answer finalizes the deck.
func (o *Orchestrator) Submit(ctx context.Context, s *Session, slotIndex, value int, elapsedSeconds float64) (*Result, error) {
	if s == nil || s.Phase == PhaseUninitialized {
		return nil, ErrNoSession
	}
	if s.Phase != PhaseInProgress {
		return nil, ErrSessionTerminal
	}
	if slotIndex != s.Cursor || slotIndex >= len(s.Slots) {
		return nil, &SlotError{Index: slotIndex, Cursor: s.Cursor}
	}
	if math.IsNaN(elapsedSeconds) || math.IsInf(elapsedSeconds, 0) || elapsedSeconds < 0 {
		return nil, ErrInvalidElapsed
	}

	slot := s.Slots[slotIndex]
	op := slot.Operation
	correct := value == op.Result
	now := o.now()
	deckID := s.DeckID

	if _, err := o.repo.InsertAnswer(ctx, op.ID, value, correct, elapsedSeconds, &deckID); err != nil {
		return nil, &PersistError{Step: StepAnswer, Err: err}
	}

	res := Result{Slot: slot, Value: value, Correct: correct, Elapsed: elapsedSeconds}

	var errs []error
	grade, sched, err := o.gradeAndSchedule(ctx, slot, correct, elapsedSeconds, now)
	res.Grade = grade
	res.Schedule = sched
	if err != nil {
		o.logger.Warn("schedule update failed",
			zap.String("session_id", s.ID),
			zap.Int("deck_id", deckID),
			zap.Int("slot", slotIndex),
			zap.Error(err))
		errs = append(errs, &PersistError{Step: StepSchedule, Err: err})
	} else {
		o.logger.Debug("answer recorded",
			zap.String("session_id", s.ID),
			zap.Int("deck_id", deckID),
			zap.Int("slot", slotIndex),
			zap.Bool("correct", correct),
			zap.Stringer("grade", grade),
			zap.Time("next_review", sched.NextReviewDate))
	}

	s.Results = append(s.Results, res)
	s.Cursor++

	if s.Cursor == len(s.Slots) {
		if _, err := o.Finalize(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return &res, errors.Join(errs...)
}

// gradeAndSchedule grades the answer and writes the next review schedule
// for the slot's operation, creating its review item when none exists.
func (o *Orchestrator) gradeAndSchedule(ctx context.Context, slot Slot, correct bool, elapsed float64, now time.Time) (spacedrep.Grade, *spacedrep.Schedule, error) {
	op := slot.Operation

	eval, err := o.evals.EvaluatorFor(ctx, op.Kind)
	if err != nil {
		return spacedrep.GradeBlackout, nil, fmt.Errorf("select evaluator: %w", err)
	}
	grade := eval.Evaluate(correct, elapsed)

	item, err := o.repo.GetReviewItem(ctx, op.ID)
	if err != nil {
		return grade, nil, fmt.Errorf("load review item: %w", err)
	}

	if item == nil {
		if slot.IsReview {
			o.logger.Warn("review item vanished, recreating", zap.Int("operation_id", op.ID))
		}
		sched, err := spacedrep.Review(spacedrep.InitialState(), grade, now)
		if err != nil {
			return grade, nil, err
		}
		id, err := o.repo.InsertReviewItem(ctx, op.ID, sched.NextReviewDate)
		if err != nil {
			return grade, nil, fmt.Errorf("create review item: %w", err)
		}
		item = &store.ReviewItem{ID: id, OperationID: op.ID}
		item.Apply(sched, now)
		if err := o.repo.UpdateReviewItem(ctx, *item); err != nil {
			return grade, nil, fmt.Errorf("update review item: %w", err)
		}
		return grade, &sched, nil
	}

	sched, err := spacedrep.Review(item.State(), grade, now)
	if err != nil {
		return grade, nil, err
	}
	item.Apply(sched, now)
	if err := o.repo.UpdateReviewItem(ctx, *item); err != nil {
		return grade, nil, fmt.Errorf("update review item: %w", err)
	}
	return grade, &sched, nil
}

// Finalize persists the deck summary and marks the deck completed. It runs
// automatically after the last answer. A failure leaves the session in
// progress so the call can be retried.
func (o *Orchestrator) Finalize(ctx context.Context, s *Session) (*store.DeckSummary, error) {
	if s == nil || s.Phase == PhaseUninitialized {
		return nil, ErrNoSession
	}
	switch s.Phase {
	case PhaseCompleted:
		return nil, ErrAlreadyFinalized
	case PhaseAbandoned:
		return nil, ErrSessionTerminal
	}
	if s.Cursor < len(s.Slots) {
		return nil, ErrIncomplete
	}

	summary := BuildSummary(s.Results, len(s.Slots))
	if err := o.repo.UpdateDeckSummary(ctx, s.DeckID, summary); err != nil {
		return nil, &PersistError{Step: StepFinalize, Err: err}
	}
	if err := o.repo.CompleteDeck(ctx, s.DeckID); err != nil {
		return nil, &PersistError{Step: StepFinalize, Err: err}
	}

	s.summary = &summary
	s.Phase = PhaseCompleted
	o.clearActive(s)

	o.logger.Info("deck completed",
		zap.String("session_id", s.ID),
		zap.Int("deck_id", s.DeckID),
		zap.Int("correct", summary.CorrectAnswers),
		zap.Float64("accuracy", summary.AccuracyPercentage))

	out := summary
	return &out, nil
}

// Abandon ends an in-progress session early. Answers and schedule updates
// already recorded are kept.
func (o *Orchestrator) Abandon(ctx context.Context, s *Session) error {
	if s == nil || s.Phase == PhaseUninitialized {
		return ErrNoSession
	}
	if s.Phase != PhaseInProgress {
		return ErrSessionTerminal
	}
	if err := o.repo.AbandonDeck(ctx, s.DeckID); err != nil {
		return &PersistError{Step: StepAbandon, Err: err}
	}
	s.Phase = PhaseAbandoned
	o.clearActive(s)

	o.logger.Info("deck abandoned",
		zap.String("session_id", s.ID),
		zap.Int("deck_id", s.DeckID),
		zap.Int("answered", s.Cursor))
	return nil
}

// AbandonActive abandons the active session if there is one in progress.
func (o *Orchestrator) AbandonActive(ctx context.Context) error {
	s := o.Active()
	if s == nil || s.Phase != PhaseInProgress {
		return nil
	}
	return o.Abandon(ctx, s)
}
