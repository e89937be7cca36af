package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the catalog read model consumed by the article resolver.
// Checkout never writes to it; it is maintained by the catalog context.
type ProductModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(255);not null"`
	ImageRef  string    `gorm:"type:varchar(512)"`
	Listed    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for ProductModel
func (ProductModel) TableName() string {
	return "products"
}

// ProductPriceModel is the pricing read model consumed by the article
// resolver. A product without a row here has no price.
type ProductPriceModel struct {
	ProductID uuid.UUID       `gorm:"type:uuid;primary_key"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency  string          `gorm:"type:varchar(8);not null;default:'USD'"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for ProductPriceModel
func (ProductPriceModel) TableName() string {
	return "product_prices"
}
