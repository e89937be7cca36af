package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
)

// CartModel is the persistence model for shopping carts
type CartModel struct {
	AggregateModel
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Items      []CartItemModel `gorm:"foreignKey:CartID"`
}

// TableName returns the table name for CartModel
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel is the persistence model for cart line items
type CartItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	CartID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    int             `gorm:"not null"`
	ImageRef    string          `gorm:"type:varchar(512)"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for CartItemModel
func (CartItemModel) TableName() string {
	return "cart_items"
}

// FromDomain populates the model from a domain cart
func (m *CartModel) FromDomain(c *cart.Cart) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CustomerID = c.CustomerID

	m.Items = make([]CartItemModel, len(c.Items))
	for i, item := range c.Items {
		m.Items[i] = CartItemModel{
			ID:          item.ID,
			CartID:      c.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			ImageRef:    item.ImageRef,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}
	}
}

// ToDomain converts the model to a domain cart
func (m *CartModel) ToDomain() *cart.Cart {
	c := &cart.Cart{
		CustomerID: m.CustomerID,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)

	c.Items = make([]cart.CartItem, len(m.Items))
	for i, item := range m.Items {
		c.Items[i] = cart.CartItem{
			ID:          item.ID,
			CartID:      item.CartID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			ImageRef:    item.ImageRef,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}
	}

	return c
}
