package inventory

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStockLevel = "StockLevel"

// Event type constants
const (
	EventTypeStockDecremented = "StockDecremented"
)

// StockDecrementedEvent is raised when stock is decremented for a product
type StockDecrementedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Remaining int       `json:"remaining"`
}

// NewStockDecrementedEvent creates a new StockDecrementedEvent
func NewStockDecrementedEvent(s *StockLevel, quantity int) *StockDecrementedEvent {
	return &StockDecrementedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDecremented, AggregateTypeStockLevel, s.ID),
		ProductID:       s.ProductID,
		Quantity:        quantity,
		Remaining:       s.Available,
	}
}

// EventType returns the event type name
func (e *StockDecrementedEvent) EventType() string {
	return EventTypeStockDecremented
}
