package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// StockLevel represents the available stock of a single product.
// It is the aggregate root for inventory operations. The quantity is only
// ever mutated through the named operations, never by direct assignment.
type StockLevel struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID
	Available int
}

// NewStockLevel creates a stock level record for a product
func NewStockLevel(productID uuid.UUID, available int) (*StockLevel, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if available < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Available quantity cannot be negative")
	}

	return &StockLevel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Available:         available,
	}, nil
}

// Decrement reduces the available quantity by the given amount
func (s *StockLevel) Decrement(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Decrement quantity must be positive")
	}
	if s.Available < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient available stock")
	}

	s.Available -= quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockDecrementedEvent(s, quantity))

	return nil
}

// Increment raises the available quantity by the given amount.
// Used for provisioning and restocks, not by the checkout flow.
func (s *StockLevel) Increment(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Increment quantity must be positive")
	}

	s.Available += quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsAvailable returns true if any stock is available
func (s *StockLevel) IsAvailable() bool {
	return s.Available > 0
}

// CanSatisfy returns true if the available quantity covers the requested one
func (s *StockLevel) CanSatisfy(quantity int) bool {
	return s.Available >= quantity
}
