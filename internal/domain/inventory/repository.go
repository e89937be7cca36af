package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockLevelRepository defines the interface for stock level persistence
type StockLevelRepository interface {
	// FindByProduct finds the stock level for a product.
	// Returns shared.ErrNotFound if the product has no stock record.
	FindByProduct(ctx context.Context, productID uuid.UUID) (*StockLevel, error)

	// FindByProducts finds stock levels for multiple products.
	// Products without a stock record are absent from the result map.
	FindByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*StockLevel, error)

	// Save creates or updates a stock level record
	Save(ctx context.Context, s *StockLevel) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, s *StockLevel) error
}
