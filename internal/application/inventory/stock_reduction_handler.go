package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CheckoutCompleter finalizes a confirmed checkout session once the stock
// reduction pass has run
type CheckoutCompleter interface {
	CompleteCheckout(ctx context.Context, sessionID uuid.UUID) error
}

// StockReductionHandler consumes CheckoutConfirmed events and decrements the
// stock of each purchased product. Items are processed independently: one
// failing line is logged and skipped, the remaining lines still run.
//
// Delivery is at-least-once and the handler keeps no record of processed
// event IDs, so a redelivered event decrements the same stock again.
type StockReductionHandler struct {
	stockRepo inventory.StockLevelRepository
	completer CheckoutCompleter
	logger    *zap.Logger
}

// NewStockReductionHandler creates a new handler for checkout confirmed events
func NewStockReductionHandler(
	stockRepo inventory.StockLevelRepository,
	completer CheckoutCompleter,
	logger *zap.Logger,
) *StockReductionHandler {
	return &StockReductionHandler{
		stockRepo: stockRepo,
		completer: completer,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *StockReductionHandler) EventTypes() []string {
	return []string{checkout.EventTypeCheckoutConfirmed}
}

// Handle processes a CheckoutConfirmedEvent by decrementing stock per item
// and then finalizing the session
func (h *StockReductionHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	confirmedEvent, ok := event.(*checkout.CheckoutConfirmedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", checkout.EventTypeCheckoutConfirmed),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			checkout.EventTypeCheckoutConfirmed, event.EventType())
	}

	h.logger.Info("processing checkout confirmed event",
		zap.String("session_id", confirmedEvent.SessionID.String()),
		zap.String("customer_id", confirmedEvent.CustomerID.String()),
		zap.Int("items_count", len(confirmedEvent.Items)),
	)

	failures := 0
	for _, item := range confirmedEvent.Items {
		if err := h.reduceStock(ctx, item); err != nil {
			h.logger.Error("failed to reduce stock for item",
				zap.String("session_id", confirmedEvent.SessionID.String()),
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			failures++
		}
	}

	h.logger.Info("stock reduction completed",
		zap.String("session_id", confirmedEvent.SessionID.String()),
		zap.Int("total_items", len(confirmedEvent.Items)),
		zap.Int("failed_items", failures),
	)

	// The session is finalized regardless of per-item reduction failures;
	// the failures above are operational follow-ups, not checkout blockers.
	if h.completer != nil {
		if err := h.completer.CompleteCheckout(ctx, confirmedEvent.SessionID); err != nil {
			h.logger.Error("failed to complete checkout session",
				zap.String("session_id", confirmedEvent.SessionID.String()),
				zap.Error(err),
			)
			return err
		}
	}

	return nil
}

// reduceStock decrements a single product's stock level
func (h *StockReductionHandler) reduceStock(ctx context.Context, item checkout.ConfirmedLineItem) error {
	level, err := h.stockRepo.FindByProduct(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("load stock level: %w", err)
	}
	if err := level.Decrement(item.Quantity); err != nil {
		return err
	}
	if err := h.stockRepo.SaveWithLock(ctx, level); err != nil {
		return fmt.Errorf("save stock level: %w", err)
	}
	return nil
}

// Ensure StockReductionHandler implements shared.EventHandler
var _ shared.EventHandler = (*StockReductionHandler)(nil)
