package models

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/inventory"
)

// StockLevelModel is the persistence model for stock levels
type StockLevelModel struct {
	AggregateModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Available int       `gorm:"not null;default:0"`
}

// TableName returns the table name for StockLevelModel
func (StockLevelModel) TableName() string {
	return "stock_levels"
}

// FromDomain populates the model from a domain stock level
func (m *StockLevelModel) FromDomain(s *inventory.StockLevel) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.ProductID = s.ProductID
	m.Available = s.Available
}

// ToDomain converts the model to a domain stock level
func (m *StockLevelModel) ToDomain() *inventory.StockLevel {
	s := &inventory.StockLevel{
		ProductID: m.ProductID,
		Available: m.Available,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}
