package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CheckoutSessionModel is the persistence model for checkout sessions.
// The step value objects (buyer, address, shipping, payment) are stored as
// JSON documents since they are written and read as a whole, never queried
// by field.
type CheckoutSessionModel struct {
	AggregateModel
	CartID          uuid.UUID               `gorm:"type:uuid;not null;index"`
	CustomerID      uuid.UUID               `gorm:"type:uuid;not null;index"`
	CurrentStep     string                  `gorm:"type:varchar(32);not null"`
	Status          string                  `gorm:"type:varchar(32);not null;index"`
	Buyer           *string                 `gorm:"type:jsonb"`
	DeliveryAddress *string                 `gorm:"type:jsonb"`
	Shipping        *string                 `gorm:"type:jsonb"`
	Payment         *string                 `gorm:"type:jsonb"`
	Subtotal        decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	ShippingCost    decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Total           decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	ConfirmedAt     *time.Time              `gorm:""`
	OrderReference  string                  `gorm:"type:varchar(64)"`
	Items           []CheckoutLineItemModel `gorm:"foreignKey:SessionID"`
}

// TableName returns the table name for CheckoutSessionModel
func (CheckoutSessionModel) TableName() string {
	return "checkout_sessions"
}

// CheckoutLineItemModel is the persistence model for checkout line items
type CheckoutLineItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	SessionID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    int             `gorm:"not null"`
	ImageRef    string          `gorm:"type:varchar(512)"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime:false"`
}

// TableName returns the table name for CheckoutLineItemModel
func (CheckoutLineItemModel) TableName() string {
	return "checkout_line_items"
}

// FromDomain populates the model from a domain checkout session
func (m *CheckoutSessionModel) FromDomain(s *checkout.CheckoutSession) error {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.CartID = s.CartID
	m.CustomerID = s.CustomerID
	m.CurrentStep = s.CurrentStep.String()
	m.Status = s.Status.String()
	m.Subtotal = s.Subtotal
	m.ShippingCost = s.ShippingCost
	m.Total = s.Total
	m.ConfirmedAt = s.ConfirmedAt
	m.OrderReference = s.OrderReference

	var err error
	if m.Buyer, err = marshalNullable(s.Buyer); err != nil {
		return fmt.Errorf("marshal buyer: %w", err)
	}
	if m.DeliveryAddress, err = marshalNullable(s.DeliveryAddress); err != nil {
		return fmt.Errorf("marshal delivery address: %w", err)
	}
	if m.Shipping, err = marshalNullable(s.Shipping); err != nil {
		return fmt.Errorf("marshal shipping: %w", err)
	}
	if m.Payment, err = marshalNullable(s.Payment); err != nil {
		return fmt.Errorf("marshal payment: %w", err)
	}

	m.Items = make([]CheckoutLineItemModel, len(s.Items))
	for i, item := range s.Items {
		m.Items[i] = CheckoutLineItemModel{
			ID:          item.ID,
			SessionID:   s.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			ImageRef:    item.ImageRef,
			CreatedAt:   item.CreatedAt,
		}
	}

	return nil
}

// ToDomain converts the model to a domain checkout session
func (m *CheckoutSessionModel) ToDomain() (*checkout.CheckoutSession, error) {
	s := &checkout.CheckoutSession{
		CartID:         m.CartID,
		CustomerID:     m.CustomerID,
		CurrentStep:    checkout.CheckoutStep(m.CurrentStep),
		Status:         checkout.CheckoutStatus(m.Status),
		Subtotal:       m.Subtotal,
		ShippingCost:   m.ShippingCost,
		Total:          m.Total,
		ConfirmedAt:    m.ConfirmedAt,
		OrderReference: m.OrderReference,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)

	if m.Buyer != nil {
		var buyer checkout.BuyerInfo
		if err := json.Unmarshal([]byte(*m.Buyer), &buyer); err != nil {
			return nil, fmt.Errorf("unmarshal buyer: %w", err)
		}
		s.Buyer = &buyer
	}
	if m.DeliveryAddress != nil {
		var address valueobject.Address
		if err := json.Unmarshal([]byte(*m.DeliveryAddress), &address); err != nil {
			return nil, fmt.Errorf("unmarshal delivery address: %w", err)
		}
		s.DeliveryAddress = &address
	}
	if m.Shipping != nil {
		var shipping checkout.ShippingOption
		if err := json.Unmarshal([]byte(*m.Shipping), &shipping); err != nil {
			return nil, fmt.Errorf("unmarshal shipping: %w", err)
		}
		s.Shipping = &shipping
	}
	if m.Payment != nil {
		var payment checkout.PaymentSelection
		if err := json.Unmarshal([]byte(*m.Payment), &payment); err != nil {
			return nil, fmt.Errorf("unmarshal payment: %w", err)
		}
		s.Payment = &payment
	}

	s.Items = make([]checkout.LineItem, len(m.Items))
	for i, item := range m.Items {
		s.Items[i] = checkout.LineItem{
			ID:          item.ID,
			SessionID:   item.SessionID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			ImageRef:    item.ImageRef,
			CreatedAt:   item.CreatedAt,
		}
	}

	return s, nil
}

// marshalNullable serializes a value to a JSON string, mapping nil to NULL
func marshalNullable[T any](v *T) (*string, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}
