package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockLevelRepository implements inventory.StockLevelRepository using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// FindByProduct finds the stock level for a product
func (r *GormStockLevelRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	var model models.StockLevelModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProducts finds stock levels for multiple products
func (r *GormStockLevelRepository) FindByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*inventory.StockLevel, error) {
	result := make(map[uuid.UUID]*inventory.StockLevel, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var modelList []models.StockLevelModel
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	for i := range modelList {
		level := modelList[i].ToDomain()
		result[level.ProductID] = level
	}
	return result, nil
}

// Save creates or updates a stock level record
func (r *GormStockLevelRepository) Save(ctx context.Context, s *inventory.StockLevel) error {
	var model models.StockLevelModel
	model.FromDomain(s)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveWithLock saves with optimistic locking. The domain operations increment
// the version, so the stored row must still be at the previous one.
func (r *GormStockLevelRepository) SaveWithLock(ctx context.Context, s *inventory.StockLevel) error {
	var model models.StockLevelModel
	model.FromDomain(s)

	result := r.db.WithContext(ctx).
		Model(&models.StockLevelModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"available":  model.Available,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The stock level was modified by another transaction")
	}
	return nil
}

// Ensure GormStockLevelRepository implements the repository interface
var _ inventory.StockLevelRepository = (*GormStockLevelRepository)(nil)
