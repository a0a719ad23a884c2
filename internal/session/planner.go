package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// planSlots fills a deck: up to DeckSize due reviews in due order, then
// freshly generated problems of kind inserted under deckID.
func (o *Orchestrator) planSlots(ctx context.Context, deckID int, kind problemgen.Kind, now time.Time) ([]Slot, error) {
	due, err := o.repo.GetDueReviewItems(ctx, now, DeckSize)
	if err != nil {
		return nil, fmt.Errorf("load due reviews: %w", err)
	}

	slots := make([]Slot, 0, DeckSize)
	for _, item := range due {
		op, err := o.repo.GetOperation(ctx, item.OperationID)
		if err != nil {
			return nil, fmt.Errorf("load operation %d: %w", item.OperationID, err)
		}
		if op == nil {
			o.logger.Warn("review item references missing operation",
				zap.Int("review_item_id", item.ID),
				zap.Int("operation_id", item.OperationID))
			continue
		}
		slots = append(slots, Slot{Operation: *op, IsReview: true})
	}

	for _, p := range o.gen.GenerateBlock(DeckSize-len(slots), kind) {
		id, err := o.repo.InsertOperation(ctx, p.Kind, p.Operand1, p.Operand2, p.Result, &deckID)
		if err != nil {
			return nil, fmt.Errorf("insert operation: %w", err)
		}
		op, err := o.repo.GetOperation(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load operation %d: %w", id, err)
		}
		if op == nil {
			return nil, fmt.Errorf("operation %d missing after insert", id)
		}
		slots = append(slots, Slot{Operation: *op})
	}
	return slots, nil
}
