package store

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/spacedrep"
)

var (
	// ErrNotFound is returned by mutating calls whose target row is missing.
	// Lookups return (nil, nil) instead.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateReviewItem is returned when an operation already has a review item.
	ErrDuplicateReviewItem = errors.New("review item already exists for operation")

	// ErrDeckNotInProgress is returned when completing or abandoning a deck
	// that already reached a terminal status.
	ErrDeckNotInProgress = errors.New("deck is not in progress")
)

// DeckStatus is the lifecycle status of a deck.
type DeckStatus string

const (
	DeckInProgress DeckStatus = "in_progress"
	DeckCompleted  DeckStatus = "completed"
	DeckAbandoned  DeckStatus = "abandoned"
)

// IsTerminal reports whether no further transitions are allowed.
func (s DeckStatus) IsTerminal() bool {
	return s == DeckCompleted || s == DeckAbandoned
}

// Operation is one presented arithmetic problem.
type Operation struct {
	ID        int
	Kind      problemgen.Kind
	Operand1  int
	Operand2  int
	Result    int
	DeckID    *int
	CreatedAt time.Time
}

// Problem returns the unpersisted form of the operation.
func (o Operation) Problem() problemgen.Problem {
	return problemgen.Problem{Kind: o.Kind, Operand1: o.Operand1, Operand2: o.Operand2, Result: o.Result}
}

// Answer is one submitted response. Answers are never updated.
type Answer struct {
	ID               int
	OperationID      int
	Value            int
	IsCorrect        bool
	TimeSpentSeconds float64
	DeckID           *int
	CreatedAt        time.Time
}

// ReviewItem is the spaced repetition schedule of one operation.
type ReviewItem struct {
	ID               int
	OperationID      int
	Repetitions      int
	Interval         int
	EaseFactor       float64
	NextReviewDate   time.Time
	LastReviewedDate *time.Time
}

// State returns the SM-2 state of the item.
func (r ReviewItem) State() spacedrep.State {
	return spacedrep.State{Repetitions: r.Repetitions, Interval: r.Interval, EaseFactor: r.EaseFactor}
}

// ReviewState returns the display view of the item.
func (r ReviewItem) ReviewState() spacedrep.ReviewState {
	return spacedrep.ReviewState{State: r.State(), NextReviewDate: r.NextReviewDate, LastReviewDate: r.LastReviewedDate}
}

// Apply copies a computed schedule onto the item and stamps the review time.
func (r *ReviewItem) Apply(s spacedrep.Schedule, reviewedAt time.Time) {
	r.Repetitions = s.Repetitions
	r.Interval = s.Interval
	r.EaseFactor = s.EaseFactor
	r.NextReviewDate = s.NextReviewDate
	t := reviewedAt
	r.LastReviewedDate = &t
}

// Deck is one ten-question session.
type Deck struct {
	ID                 int
	CreatedAt          time.Time
	CompletedAt        *time.Time
	Status             DeckStatus
	TotalQuestions     int
	CorrectAnswers     int
	IncorrectAnswers   int
	TotalTimeSeconds   float64
	AverageTimeSeconds *float64
	AccuracyPercentage *float64
}

// DeckSummary holds the statistics written onto a deck at completion.
type DeckSummary struct {
	TotalQuestions     int
	CorrectAnswers     int
	IncorrectAnswers   int
	TotalTimeSeconds   float64
	AverageTimeSeconds float64
	AccuracyPercentage float64
}

// Repo is the persistence contract consumed by the drill orchestrator.
// Lookups return (nil, nil) when nothing matches.
type Repo interface {
	// InsertOperation stores a new operation and returns its id.
	InsertOperation(ctx context.Context, kind problemgen.Kind, operand1, operand2, result int, deckID *int) (int, error)

	// GetOperation returns the operation, or nil if it does not exist.
	GetOperation(ctx context.Context, id int) (*Operation, error)

	// InsertAnswer appends an answer and returns its id.
	InsertAnswer(ctx context.Context, operationID, value int, isCorrect bool, elapsedSeconds float64, deckID *int) (int, error)

	// CreateDeck starts a new in-progress deck.
	CreateDeck(ctx context.Context) (int, error)

	// UpdateDeckSummary writes the summary columns of a deck.
	UpdateDeckSummary(ctx context.Context, deckID int, summary DeckSummary) error

	// CompleteDeck marks an in-progress deck completed.
	CompleteDeck(ctx context.Context, deckID int) error

	// AbandonDeck marks an in-progress deck abandoned.
	AbandonDeck(ctx context.Context, deckID int) error

	// GetDeck returns the deck, or nil if it does not exist.
	GetDeck(ctx context.Context, id int) (*Deck, error)

	// InProgressDecks returns the ids of every deck still in progress.
	InProgressDecks(ctx context.Context) ([]int, error)

	// InsertReviewItem creates a review item at the default SM-2 state.
	InsertReviewItem(ctx context.Context, operationID int, nextReviewDate time.Time) (int, error)

	// UpdateReviewItem overwrites the schedule columns of an existing item.
	UpdateReviewItem(ctx context.Context, item ReviewItem) error

	// GetReviewItem returns the item for an operation, or nil.
	GetReviewItem(ctx context.Context, operationID int) (*ReviewItem, error)

	// GetDueReviewItems returns items due at or before before, earliest
	// first with ties broken by id. limit <= 0 means no limit.
	GetDueReviewItems(ctx context.Context, before time.Time, limit int) ([]ReviewItem, error)

	// CountDueReviewItems counts items due at or before before.
	CountDueReviewItems(ctx context.Context, before time.Time) (int, error)

	Close() error
}

// TimeStats aggregates the time spent on correct answers.
type TimeStats struct {
	Count      int
	Sum        float64
	SumSquares float64
	Mean       float64
}

// Stdev returns the population standard deviation derived from the sums.
// Rounding can push the variance slightly below zero; it is clamped.
func (s TimeStats) Stdev() float64 {
	if s.Count == 0 {
		return 0
	}
	n := float64(s.Count)
	mean := s.Sum / n
	variance := s.SumSquares/n - mean*mean
	if variance < 0 {
		return 0
	}
	return math.Sqrt(variance)
}

func newTimeStats(count int, sum, sumSquares float64) TimeStats {
	ts := TimeStats{Count: count, Sum: sum, SumSquares: sumSquares}
	if count > 0 {
		ts.Mean = sum / float64(count)
	}
	return ts
}

// Accuracy is a correct/total tally.
type Accuracy struct {
	Correct    int
	Total      int
	Percentage float64
}

func newAccuracy(correct, total int) Accuracy {
	a := Accuracy{Correct: correct, Total: total}
	if total > 0 {
		a.Percentage = float64(correct) / float64(total) * 100
	}
	return a
}

// Window restricts analytics to a subset of completed decks.
type Window struct {
	// Since keeps answers created at or after this time (zero = no bound).
	Since time.Time
	// LastDecks keeps only the N most recently completed decks (0 = all).
	LastDecks int
}

// AllTime covers every completed deck.
func AllTime() Window { return Window{} }

// LastDays covers answers from the n days before now.
func LastDays(now time.Time, n int) Window { return Window{Since: now.AddDate(0, 0, -n)} }

// Last30Days covers answers from the thirty days before now.
func Last30Days(now time.Time) Window { return LastDays(now, 30) }

// LastNDecks covers the n most recently completed decks.
func LastNDecks(n int) Window { return Window{LastDecks: n} }

// Analytics answers the aggregate queries behind grading and reports.
// Only answers belonging to completed decks are counted.
type Analytics interface {
	// TimeStatistics aggregates correct-answer times for one kind, or nil
	// when there are none.
	TimeStatistics(ctx context.Context, kind problemgen.Kind, w Window) (*TimeStats, error)

	// TimeStatisticsByKind aggregates correct-answer times per kind.
	TimeStatisticsByKind(ctx context.Context, w Window) (map[problemgen.Kind]TimeStats, error)

	// AccuracyByKind tallies answers per kind.
	AccuracyByKind(ctx context.Context, w Window) (map[problemgen.Kind]Accuracy, error)

	// TotalAccuracy tallies all answers.
	TotalAccuracy(ctx context.Context, w Window) (Accuracy, error)

	// AnswerDays returns the distinct UTC dates ("2006-01-02") with at least
	// one answer in [from, to), most recent first. Deck status is ignored.
	AnswerDays(ctx context.Context, from, to time.Time) ([]string, error)

	// RecentDecks returns completed decks, most recently completed first.
	RecentDecks(ctx context.Context, limit int) ([]Deck, error)
}

// DayLayout is the civil date format used by AnswerDays.
const DayLayout = "2006-01-02"
