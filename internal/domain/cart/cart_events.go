package cart

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCart = "Cart"

// Event type constants
const (
	EventTypeCartCreated = "CartCreated"
	EventTypeCartsMerged = "CartsMerged"
)

// CartCreatedEvent is raised when a new cart is created
type CartCreatedEvent struct {
	shared.BaseDomainEvent
	CartID     uuid.UUID `json:"cart_id"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewCartCreatedEvent creates a new CartCreatedEvent
func NewCartCreatedEvent(c *Cart) *CartCreatedEvent {
	return &CartCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCreated, AggregateTypeCart, c.ID),
		CartID:          c.ID,
		CustomerID:      c.CustomerID,
	}
}

// EventType returns the event type name
func (e *CartCreatedEvent) EventType() string {
	return EventTypeCartCreated
}

// CartsMergedEvent is raised when an anonymous cart has been reconciled into
// an account cart at login
type CartsMergedEvent struct {
	shared.BaseDomainEvent
	AccountCartID       uuid.UUID     `json:"account_cart_id"`
	AccountCustomerID   uuid.UUID     `json:"account_customer_id"`
	AnonymousCustomerID uuid.UUID     `json:"anonymous_customer_id"`
	Strategy            MergeStrategy `json:"strategy"`
	ItemCount           int           `json:"item_count"`
}

// NewCartsMergedEvent creates a new CartsMergedEvent
func NewCartsMergedEvent(accountCart *Cart, anonymousCustomerID uuid.UUID, strategy MergeStrategy) *CartsMergedEvent {
	return &CartsMergedEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypeCartsMerged, AggregateTypeCart, accountCart.ID),
		AccountCartID:       accountCart.ID,
		AccountCustomerID:   accountCart.CustomerID,
		AnonymousCustomerID: anonymousCustomerID,
		Strategy:            strategy,
		ItemCount:           accountCart.ItemCount(),
	}
}

// EventType returns the event type name
func (e *CartsMergedEvent) EventType() string {
	return EventTypeCartsMerged
}
