package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProvisionStockRequest sets the absolute available quantity for a product
type ProvisionStockRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Available int       `json:"available" binding:"gte=0"`
}

// StockLevelResponse is the stock view of one product
type StockLevelResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Available int       `json:"available"`
}

// StockService handles stock provisioning and queries. The checkout flow
// never calls it directly; reductions happen through the event handler.
type StockService struct {
	stockRepo inventory.StockLevelRepository
}

// NewStockService creates a new StockService
func NewStockService(stockRepo inventory.StockLevelRepository) *StockService {
	return &StockService{stockRepo: stockRepo}
}

// Provision creates or overwrites the stock record for a product
func (s *StockService) Provision(ctx context.Context, req ProvisionStockRequest) (*StockLevelResponse, error) {
	level, err := s.stockRepo.FindByProduct(ctx, req.ProductID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		level, err = inventory.NewStockLevel(req.ProductID, req.Available)
		if err != nil {
			return nil, err
		}
	} else {
		level.Available = req.Available
		level.IncrementVersion()
	}

	if err := s.stockRepo.Save(ctx, level); err != nil {
		return nil, err
	}

	return &StockLevelResponse{ProductID: level.ProductID, Available: level.Available}, nil
}

// GetStock returns the stock level of one product
func (s *StockService) GetStock(ctx context.Context, productID uuid.UUID) (*StockLevelResponse, error) {
	level, err := s.stockRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &StockLevelResponse{ProductID: level.ProductID, Available: level.Available}, nil
}
