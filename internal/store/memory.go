package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/abhisek/mathdrill/internal/clock"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/spacedrep"
)

// MemoryStore is an in-process Repo and Analytics with the same semantics as
// Store. Nothing survives Close.
type MemoryStore struct {
	mu    sync.Mutex
	clock clock.Clock

	operations  map[int]Operation
	answers     []Answer
	decks       map[int]Deck
	reviewItems map[int]ReviewItem // keyed by operation id

	nextOperationID  int
	nextAnswerID     int
	nextDeckID       int
	nextReviewItemID int
}

var (
	_ Repo      = (*MemoryStore)(nil)
	_ Analytics = (*MemoryStore)(nil)
)

// NewMemory creates an empty MemoryStore.
func NewMemory(opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{
		clock:       o.clock,
		operations:  make(map[int]Operation),
		decks:       make(map[int]Deck),
		reviewItems: make(map[int]ReviewItem),
	}
}

func (m *MemoryStore) now() time.Time {
	return m.clock.Now().UTC()
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (m *MemoryStore) InsertOperation(_ context.Context, kind problemgen.Kind, operand1, operand2, result int, deckID *int) (int, error) {
	if !kind.Valid() {
		return 0, &problemgen.KindError{Input: string(kind)}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if deckID != nil {
		if _, ok := m.decks[*deckID]; !ok {
			return 0, fmt.Errorf("insert operation: deck %d: %w", *deckID, ErrNotFound)
		}
	}
	m.nextOperationID++
	op := Operation{
		ID:        m.nextOperationID,
		Kind:      kind,
		Operand1:  operand1,
		Operand2:  operand2,
		Result:    result,
		DeckID:    copyIntPtr(deckID),
		CreatedAt: m.now(),
	}
	m.operations[op.ID] = op
	return op.ID, nil
}

func (m *MemoryStore) GetOperation(_ context.Context, id int) (*Operation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	op, ok := m.operations[id]
	if !ok {
		return nil, nil
	}
	op.DeckID = copyIntPtr(op.DeckID)
	return &op, nil
}

func (m *MemoryStore) InsertAnswer(_ context.Context, operationID, value int, isCorrect bool, elapsedSeconds float64, deckID *int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.operations[operationID]; !ok {
		return 0, fmt.Errorf("insert answer: operation %d: %w", operationID, ErrNotFound)
	}
	if deckID != nil {
		if _, ok := m.decks[*deckID]; !ok {
			return 0, fmt.Errorf("insert answer: deck %d: %w", *deckID, ErrNotFound)
		}
	}
	m.nextAnswerID++
	m.answers = append(m.answers, Answer{
		ID:               m.nextAnswerID,
		OperationID:      operationID,
		Value:            value,
		IsCorrect:        isCorrect,
		TimeSpentSeconds: elapsedSeconds,
		DeckID:           copyIntPtr(deckID),
		CreatedAt:        m.now(),
	})
	return m.nextAnswerID, nil
}

func (m *MemoryStore) CreateDeck(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextDeckID++
	m.decks[m.nextDeckID] = Deck{
		ID:        m.nextDeckID,
		CreatedAt: m.now(),
		Status:    DeckInProgress,
	}
	return m.nextDeckID, nil
}

func (m *MemoryStore) UpdateDeckSummary(_ context.Context, deckID int, summary DeckSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.decks[deckID]
	if !ok {
		return fmt.Errorf("deck %d: %w", deckID, ErrNotFound)
	}
	avg, acc := summary.AverageTimeSeconds, summary.AccuracyPercentage
	d.TotalQuestions = summary.TotalQuestions
	d.CorrectAnswers = summary.CorrectAnswers
	d.IncorrectAnswers = summary.IncorrectAnswers
	d.TotalTimeSeconds = summary.TotalTimeSeconds
	d.AverageTimeSeconds = &avg
	d.AccuracyPercentage = &acc
	m.decks[deckID] = d
	return nil
}

func (m *MemoryStore) CompleteDeck(_ context.Context, deckID int) error {
	return m.closeDeck(deckID, DeckCompleted)
}

func (m *MemoryStore) AbandonDeck(_ context.Context, deckID int) error {
	return m.closeDeck(deckID, DeckAbandoned)
}

func (m *MemoryStore) closeDeck(deckID int, status DeckStatus) error {
	if !status.IsTerminal() {
		return fmt.Errorf("close deck %d: %s is not a terminal status", deckID, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.decks[deckID]
	if !ok {
		return fmt.Errorf("deck %d: %w", deckID, ErrNotFound)
	}
	if d.Status.IsTerminal() {
		return fmt.Errorf("deck %d is %s: %w", deckID, d.Status, ErrDeckNotInProgress)
	}
	d.Status = status
	if status == DeckCompleted {
		now := m.now()
		d.CompletedAt = &now
	}
	m.decks[deckID] = d
	return nil
}

func (m *MemoryStore) GetDeck(_ context.Context, id int) (*Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.decks[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *MemoryStore) InProgressDecks(_ context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []int
	for id, d := range m.decks {
		if d.Status == DeckInProgress {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (m *MemoryStore) RecentDecks(_ context.Context, limit int) ([]Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	decks := m.completedDecks()
	if limit > 0 && len(decks) > limit {
		decks = decks[:limit]
	}
	return decks, nil
}

// completedDecks returns completed decks, most recently completed first.
// Callers hold m.mu.
func (m *MemoryStore) completedDecks() []Deck {
	var decks []Deck
	for _, d := range m.decks {
		if d.Status == DeckCompleted {
			decks = append(decks, d)
		}
	}
	sort.Slice(decks, func(i, j int) bool {
		ci, cj := *decks[i].CompletedAt, *decks[j].CompletedAt
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return decks[i].ID > decks[j].ID
	})
	return decks
}

func (m *MemoryStore) InsertReviewItem(_ context.Context, operationID int, nextReviewDate time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.operations[operationID]; !ok {
		return 0, fmt.Errorf("insert review item: operation %d: %w", operationID, ErrNotFound)
	}
	if _, ok := m.reviewItems[operationID]; ok {
		return 0, fmt.Errorf("operation %d: %w", operationID, ErrDuplicateReviewItem)
	}
	st := spacedrep.InitialState()
	m.nextReviewItemID++
	m.reviewItems[operationID] = ReviewItem{
		ID:             m.nextReviewItemID,
		OperationID:    operationID,
		Repetitions:    st.Repetitions,
		Interval:       st.Interval,
		EaseFactor:     st.EaseFactor,
		NextReviewDate: nextReviewDate.UTC(),
	}
	return m.nextReviewItemID, nil
}

func (m *MemoryStore) UpdateReviewItem(_ context.Context, item ReviewItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for opID, cur := range m.reviewItems {
		if cur.ID != item.ID {
			continue
		}
		cur.Repetitions = item.Repetitions
		cur.Interval = item.Interval
		cur.EaseFactor = item.EaseFactor
		cur.NextReviewDate = item.NextReviewDate.UTC()
		cur.LastReviewedDate = nil
		if item.LastReviewedDate != nil {
			t := item.LastReviewedDate.UTC()
			cur.LastReviewedDate = &t
		}
		m.reviewItems[opID] = cur
		return nil
	}
	return fmt.Errorf("review item %d: %w", item.ID, ErrNotFound)
}

func (m *MemoryStore) GetReviewItem(_ context.Context, operationID int) (*ReviewItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.reviewItems[operationID]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (m *MemoryStore) GetDueReviewItems(_ context.Context, before time.Time, limit int) ([]ReviewItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.dueItems(before)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *MemoryStore) CountDueReviewItems(_ context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.dueItems(before)), nil
}

func (m *MemoryStore) dueItems(before time.Time) []ReviewItem {
	var items []ReviewItem
	for _, item := range m.reviewItems {
		if !item.NextReviewDate.After(before) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].NextReviewDate.Equal(items[j].NextReviewDate) {
			return items[i].NextReviewDate.Before(items[j].NextReviewDate)
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// windowAnswers returns answers in completed decks that fall inside w.
// Callers hold m.mu.
func (m *MemoryStore) windowAnswers(w Window) []Answer {
	allowed := make(map[int]bool)
	decks := m.completedDecks()
	if w.LastDecks > 0 && len(decks) > w.LastDecks {
		decks = decks[:w.LastDecks]
	}
	for _, d := range decks {
		allowed[d.ID] = true
	}

	var out []Answer
	for _, a := range m.answers {
		if a.DeckID == nil || !allowed[*a.DeckID] {
			continue
		}
		if !w.Since.IsZero() && a.CreatedAt.Before(w.Since) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (m *MemoryStore) TimeStatisticsByKind(_ context.Context, w Window) (map[problemgen.Kind]TimeStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type acc struct {
		n        int
		sum, sq2 float64
	}
	tally := make(map[problemgen.Kind]*acc)
	for _, a := range m.windowAnswers(w) {
		if !a.IsCorrect {
			continue
		}
		kind := m.operations[a.OperationID].Kind
		t, ok := tally[kind]
		if !ok {
			t = &acc{}
			tally[kind] = t
		}
		t.n++
		t.sum += a.TimeSpentSeconds
		t.sq2 += a.TimeSpentSeconds * a.TimeSpentSeconds
	}

	out := make(map[problemgen.Kind]TimeStats, len(tally))
	for kind, t := range tally {
		out[kind] = newTimeStats(t.n, t.sum, t.sq2)
	}
	return out, nil
}

func (m *MemoryStore) TimeStatistics(ctx context.Context, kind problemgen.Kind, w Window) (*TimeStats, error) {
	byKind, err := m.TimeStatisticsByKind(ctx, w)
	if err != nil {
		return nil, err
	}
	ts, ok := byKind[kind]
	if !ok || ts.Count == 0 {
		return nil, nil
	}
	return &ts, nil
}

func (m *MemoryStore) AccuracyByKind(_ context.Context, w Window) (map[problemgen.Kind]Accuracy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	correct := make(map[problemgen.Kind]int)
	total := make(map[problemgen.Kind]int)
	for _, a := range m.windowAnswers(w) {
		kind := m.operations[a.OperationID].Kind
		total[kind]++
		if a.IsCorrect {
			correct[kind]++
		}
	}

	out := make(map[problemgen.Kind]Accuracy, len(total))
	for kind, n := range total {
		out[kind] = newAccuracy(correct[kind], n)
	}
	return out, nil
}

func (m *MemoryStore) TotalAccuracy(ctx context.Context, w Window) (Accuracy, error) {
	byKind, err := m.AccuracyByKind(ctx, w)
	if err != nil {
		return Accuracy{}, err
	}
	return sumAccuracy(byKind), nil
}

func (m *MemoryStore) AnswerDays(_ context.Context, from, to time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var stamps []time.Time
	for _, a := range m.answers {
		if !a.CreatedAt.Before(from) && a.CreatedAt.Before(to) {
			stamps = append(stamps, a.CreatedAt)
		}
	}
	return distinctDays(stamps), nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
