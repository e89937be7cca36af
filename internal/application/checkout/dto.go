package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/checkout"
)

// SubmitBuyerInfoRequest carries the buyer contact form
type SubmitBuyerInfoRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

// SubmitDeliveryRequest carries the delivery form
type SubmitDeliveryRequest struct {
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	Region       string `json:"region"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country" binding:"required"`
	ShippingCode string `json:"shipping_code" binding:"required"`
}

// SubmitPaymentRequest carries the payment form
type SubmitPaymentRequest struct {
	Method    checkout.PaymentMethod `json:"method" binding:"required"`
	Reference string                 `json:"reference"`
}

// LineItemResponse is one frozen checkout line
type LineItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageRef    string          `json:"image_ref,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// SessionResponse is the full checkout session view
type SessionResponse struct {
	ID              uuid.UUID                 `json:"id"`
	CartID          uuid.UUID                 `json:"cart_id"`
	CustomerID      uuid.UUID                 `json:"customer_id"`
	CurrentStep     checkout.CheckoutStep     `json:"current_step"`
	Status          checkout.CheckoutStatus   `json:"status"`
	Items           []LineItemResponse        `json:"items"`
	Buyer           *checkout.BuyerInfo       `json:"buyer,omitempty"`
	DeliveryAddress *string                   `json:"delivery_address,omitempty"`
	Shipping        *checkout.ShippingOption  `json:"shipping,omitempty"`
	Payment         *checkout.PaymentSelection `json:"payment,omitempty"`
	Subtotal        decimal.Decimal           `json:"subtotal"`
	ShippingCost    decimal.Decimal           `json:"shipping_cost"`
	Total           decimal.Decimal           `json:"total"`
	ConfirmedAt     *time.Time                `json:"confirmed_at,omitempty"`
	OrderReference  string                    `json:"order_reference,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// StepAccessResponse reports whether a checkout step may be entered and
// where to go instead when it may not
type StepAccessResponse struct {
	Step         checkout.CheckoutStep `json:"step"`
	Allowed      bool                  `json:"allowed"`
	RedirectPath string                `json:"redirect_path,omitempty"`
}

// ExpireStaleResponse reports the outcome of an expiry sweep
type ExpireStaleResponse struct {
	ExpiredCount int `json:"expired_count"`
}

// ToSessionResponse converts a checkout session to a response
func ToSessionResponse(s *checkout.CheckoutSession) SessionResponse {
	items := make([]LineItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = LineItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ImageRef:    item.ImageRef,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Amount:      item.Amount(),
		}
	}

	resp := SessionResponse{
		ID:             s.ID,
		CartID:         s.CartID,
		CustomerID:     s.CustomerID,
		CurrentStep:    s.CurrentStep,
		Status:         s.Status,
		Items:          items,
		Buyer:          s.Buyer,
		Shipping:       s.Shipping,
		Payment:        s.Payment,
		Subtotal:       s.Subtotal,
		ShippingCost:   s.ShippingCost,
		Total:          s.Total,
		ConfirmedAt:    s.ConfirmedAt,
		OrderReference: s.OrderReference,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.DeliveryAddress != nil {
		formatted := s.DeliveryAddress.String()
		resp.DeliveryAddress = &formatted
	}
	return resp
}
