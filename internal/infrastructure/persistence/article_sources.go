package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/checkout/acl"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCatalogSource serves product identity data from the catalog read model.
// Delisted products are treated as unknown, so they drop out of resolution.
type GormCatalogSource struct {
	db *gorm.DB
}

// NewGormCatalogSource creates a new GormCatalogSource
func NewGormCatalogSource(db *gorm.DB) *GormCatalogSource {
	return &GormCatalogSource{db: db}
}

// FindProducts finds product identity records by ID
func (s *GormCatalogSource) FindProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]acl.ProductRecord, error) {
	result := make(map[uuid.UUID]acl.ProductRecord, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var products []models.ProductModel
	err := s.db.WithContext(ctx).
		Where("id IN ? AND listed = ?", productIDs, true).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		result[p.ID] = acl.ProductRecord{
			ProductID: p.ID,
			Name:      p.Name,
			ImageRef:  p.ImageRef,
		}
	}
	return result, nil
}

// GormPricingSource serves current prices from the pricing read model
type GormPricingSource struct {
	db *gorm.DB
}

// NewGormPricingSource creates a new GormPricingSource
func NewGormPricingSource(db *gorm.DB) *GormPricingSource {
	return &GormPricingSource{db: db}
}

// FindPrices finds current prices by product ID
func (s *GormPricingSource) FindPrices(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	result := make(map[uuid.UUID]decimal.Decimal, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var prices []models.ProductPriceModel
	err := s.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}

	for _, p := range prices {
		result[p.ProductID] = p.Amount
	}
	return result, nil
}

// GormStockSource serves available quantities from the stock levels table
type GormStockSource struct {
	db *gorm.DB
}

// NewGormStockSource creates a new GormStockSource
func NewGormStockSource(db *gorm.DB) *GormStockSource {
	return &GormStockSource{db: db}
}

// FindStockLevels finds available quantities by product ID
func (s *GormStockSource) FindStockLevels(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	result := make(map[uuid.UUID]int, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var levels []models.StockLevelModel
	err := s.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&levels).Error
	if err != nil {
		return nil, err
	}

	for _, l := range levels {
		result[l.ProductID] = l.Available
	}
	return result, nil
}

// Interface guards
var (
	_ acl.CatalogSource = (*GormCatalogSource)(nil)
	_ acl.PricingSource = (*GormPricingSource)(nil)
	_ acl.StockSource   = (*GormStockSource)(nil)
)
