package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCheckoutSession = "CheckoutSession"

// Event type constants
const (
	EventTypeCheckoutStarted   = "CheckoutStarted"
	EventTypeCheckoutConfirmed = "CheckoutConfirmed"
	EventTypeCheckoutCompleted = "CheckoutCompleted"
	EventTypeCheckoutAbandoned = "CheckoutAbandoned"
	EventTypeCheckoutExpired   = "CheckoutExpired"
)

// CheckoutStartedEvent is raised when a checkout session is started from a cart
type CheckoutStartedEvent struct {
	shared.BaseDomainEvent
	SessionID  uuid.UUID       `json:"session_id"`
	CartID     uuid.UUID       `json:"cart_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	ItemCount  int             `json:"item_count"`
}

// NewCheckoutStartedEvent creates a new CheckoutStartedEvent
func NewCheckoutStartedEvent(s *CheckoutSession) *CheckoutStartedEvent {
	return &CheckoutStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckoutStarted, AggregateTypeCheckoutSession, s.ID),
		SessionID:       s.ID,
		CartID:          s.CartID,
		CustomerID:      s.CustomerID,
		Subtotal:        s.Subtotal,
		ItemCount:       len(s.Items),
	}
}

// EventType returns the event type name
func (e *CheckoutStartedEvent) EventType() string {
	return EventTypeCheckoutStarted
}

// ConfirmedLineItem is the (productId, quantity) pair carried by the
// confirmation event. This is the sole hand-off contract to the inventory
// side and must remain stable.
type ConfirmedLineItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// CheckoutConfirmedEvent is raised when a checkout session is confirmed.
// It is consumed asynchronously by the stock reduction consumer.
type CheckoutConfirmedEvent struct {
	shared.BaseDomainEvent
	SessionID   uuid.UUID           `json:"session_id"`
	CartID      uuid.UUID           `json:"cart_id"`
	CustomerID  uuid.UUID           `json:"customer_id"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Items       []ConfirmedLineItem `json:"items"`
}

// NewCheckoutConfirmedEvent creates a new CheckoutConfirmedEvent
func NewCheckoutConfirmedEvent(s *CheckoutSession) *CheckoutConfirmedEvent {
	items := make([]ConfirmedLineItem, len(s.Items))
	for i, item := range s.Items {
		items[i] = ConfirmedLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return &CheckoutConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckoutConfirmed, AggregateTypeCheckoutSession, s.ID),
		SessionID:       s.ID,
		CartID:          s.CartID,
		CustomerID:      s.CustomerID,
		TotalAmount:     s.Total,
		Items:           items,
	}
}

// EventType returns the event type name
func (e *CheckoutConfirmedEvent) EventType() string {
	return EventTypeCheckoutConfirmed
}

// CheckoutCompletedEvent is raised when a confirmed session is finalized with
// an order reference
type CheckoutCompletedEvent struct {
	shared.BaseDomainEvent
	SessionID      uuid.UUID       `json:"session_id"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	OrderReference string          `json:"order_reference"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// NewCheckoutCompletedEvent creates a new CheckoutCompletedEvent
func NewCheckoutCompletedEvent(s *CheckoutSession) *CheckoutCompletedEvent {
	return &CheckoutCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckoutCompleted, AggregateTypeCheckoutSession, s.ID),
		SessionID:       s.ID,
		CustomerID:      s.CustomerID,
		OrderReference:  s.OrderReference,
		TotalAmount:     s.Total,
	}
}

// EventType returns the event type name
func (e *CheckoutCompletedEvent) EventType() string {
	return EventTypeCheckoutCompleted
}

// CheckoutAbandonedEvent is raised when a session is abandoned by the customer
type CheckoutAbandonedEvent struct {
	shared.BaseDomainEvent
	SessionID  uuid.UUID `json:"session_id"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewCheckoutAbandonedEvent creates a new CheckoutAbandonedEvent
func NewCheckoutAbandonedEvent(s *CheckoutSession) *CheckoutAbandonedEvent {
	return &CheckoutAbandonedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckoutAbandoned, AggregateTypeCheckoutSession, s.ID),
		SessionID:       s.ID,
		CustomerID:      s.CustomerID,
	}
}

// EventType returns the event type name
func (e *CheckoutAbandonedEvent) EventType() string {
	return EventTypeCheckoutAbandoned
}

// CheckoutExpiredEvent is raised when a stalled session is expired by the
// external scheduler
type CheckoutExpiredEvent struct {
	shared.BaseDomainEvent
	SessionID  uuid.UUID `json:"session_id"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewCheckoutExpiredEvent creates a new CheckoutExpiredEvent
func NewCheckoutExpiredEvent(s *CheckoutSession) *CheckoutExpiredEvent {
	return &CheckoutExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckoutExpired, AggregateTypeCheckoutSession, s.ID),
		SessionID:       s.ID,
		CustomerID:      s.CustomerID,
	}
}

// EventType returns the event type name
func (e *CheckoutExpiredEvent) EventType() string {
	return EventTypeCheckoutExpired
}
