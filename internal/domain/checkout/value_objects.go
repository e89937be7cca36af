package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// BuyerInfo holds the contact information collected in the first checkout step
type BuyerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// NewBuyerInfo creates validated buyer contact information
func NewBuyerInfo(firstName, lastName, email, phone string) (BuyerInfo, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if firstName == "" {
		return BuyerInfo{}, shared.NewDomainError("INVALID_BUYER_INFO", "First name cannot be empty")
	}
	if lastName == "" {
		return BuyerInfo{}, shared.NewDomainError("INVALID_BUYER_INFO", "Last name cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return BuyerInfo{}, shared.NewDomainError("INVALID_BUYER_INFO", "A valid email address is required")
	}

	return BuyerInfo{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
	}, nil
}

// FullName returns the buyer's display name
func (b BuyerInfo) FullName() string {
	return b.FirstName + " " + b.LastName
}

// ShippingOption is the delivery method selected in the delivery step
type ShippingOption struct {
	Code string          `json:"code"`
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
}

// NewShippingOption creates a validated shipping option
func NewShippingOption(code, name string, cost valueobject.Money) (ShippingOption, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)

	if code == "" {
		return ShippingOption{}, shared.NewDomainError("INVALID_SHIPPING", "Shipping option code cannot be empty")
	}
	if name == "" {
		return ShippingOption{}, shared.NewDomainError("INVALID_SHIPPING", "Shipping option name cannot be empty")
	}
	if cost.IsNegative() {
		return ShippingOption{}, shared.NewDomainError("INVALID_SHIPPING", "Shipping cost cannot be negative")
	}

	return ShippingOption{
		Code: code,
		Name: name,
		Cost: cost.Amount(),
	}, nil
}

// CostMoney returns the shipping cost as a Money value object
func (o ShippingOption) CostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Cost)
}

// PaymentMethod identifies a supported payment method
type PaymentMethod string

const (
	PaymentMethodCard    PaymentMethod = "CARD"
	PaymentMethodPaypal  PaymentMethod = "PAYPAL"
	PaymentMethodInvoice PaymentMethod = "INVOICE"
)

// IsValid checks if the payment method is supported
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPaypal, PaymentMethodInvoice:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentSelection is the payment choice made in the payment step.
// It references the method only; actual capture happens outside this core.
type PaymentSelection struct {
	Method    PaymentMethod `json:"method"`
	Reference string        `json:"reference,omitempty"`
}

// NewPaymentSelection creates a validated payment selection
func NewPaymentSelection(method PaymentMethod, reference string) (PaymentSelection, error) {
	if !method.IsValid() {
		return PaymentSelection{}, shared.NewDomainError("INVALID_PAYMENT", "Unsupported payment method")
	}

	return PaymentSelection{
		Method:    method,
		Reference: strings.TrimSpace(reference),
	}, nil
}
