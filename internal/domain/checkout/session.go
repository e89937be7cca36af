package checkout

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// LineItem is a point-in-time snapshot of a cart item taken when checkout
// starts. Name, price, and quantity are frozen for the life of the session;
// later catalog or pricing changes never rewrite a stored line item.
type LineItem struct {
	ID          uuid.UUID
	SessionID   uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	ImageRef    string
	CreatedAt   time.Time
}

// NewLineItem creates a new line item snapshot
func NewLineItem(sessionID, productID uuid.UUID, productName string, unitPrice valueobject.Money, quantity int, imageRef string) (*LineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &LineItem{
		ID:          uuid.New(),
		SessionID:   sessionID,
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice.Amount(),
		Quantity:    quantity,
		ImageRef:    imageRef,
		CreatedAt:   time.Now(),
	}, nil
}

// Amount returns quantity * unit price for this line item
func (i *LineItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CheckoutSession is the aggregate root for one customer's in-progress
// checkout. It enforces the ordered step state machine: each submit operation
// is valid only from the step it advances from, and terminal statuses
// short-circuit every other transition.
type CheckoutSession struct {
	shared.BaseAggregateRoot
	CartID          uuid.UUID
	CustomerID      uuid.UUID
	Items           []LineItem
	CurrentStep     CheckoutStep
	Status          CheckoutStatus
	Buyer           *BuyerInfo
	DeliveryAddress *valueobject.Address
	Shipping        *ShippingOption
	Payment         *PaymentSelection
	Subtotal        decimal.Decimal
	ShippingCost    decimal.Decimal
	Total           decimal.Decimal
	ConfirmedAt     *time.Time
	OrderReference  string
}

// ItemSnapshot carries the data needed to freeze one cart item into a
// checkout line item
type ItemSnapshot struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   valueobject.Money
	Quantity    int
	ImageRef    string
}

// NewCheckoutSession starts a checkout from a non-empty cart. The given item
// snapshots become the session's immutable line items.
func NewCheckoutSession(cartID, customerID uuid.UUID, items []ItemSnapshot) (*CheckoutSession, error) {
	if cartID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CART", "Cart ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot start checkout from an empty cart")
	}

	session := &CheckoutSession{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CartID:            cartID,
		CustomerID:        customerID,
		Items:             make([]LineItem, 0, len(items)),
		CurrentStep:       StepBuyerInfo,
		Status:            StatusActive,
		Subtotal:          decimal.Zero,
		ShippingCost:      decimal.Zero,
		Total:             decimal.Zero,
	}

	for _, snapshot := range items {
		item, err := NewLineItem(session.ID, snapshot.ProductID, snapshot.ProductName, snapshot.UnitPrice, snapshot.Quantity, snapshot.ImageRef)
		if err != nil {
			return nil, err
		}
		session.Items = append(session.Items, *item)
	}

	session.recalculateTotals()
	session.AddDomainEvent(NewCheckoutStartedEvent(session))

	return session, nil
}

// SubmitBuyerInfo stores the buyer's contact information and advances the
// session from BUYER_INFO to DELIVERY
func (s *CheckoutSession) SubmitBuyerInfo(info BuyerInfo) error {
	if err := s.ensureSubmittableFrom(StepBuyerInfo); err != nil {
		return err
	}

	s.Buyer = &info
	s.advance()

	return nil
}

// SubmitDelivery stores the delivery address and shipping selection, adds the
// shipping cost to the totals, and advances from DELIVERY to PAYMENT
func (s *CheckoutSession) SubmitDelivery(address valueobject.Address, shipping ShippingOption) error {
	if err := s.ensureSubmittableFrom(StepDelivery); err != nil {
		return err
	}
	if address.IsZero() {
		return shared.NewDomainError("INVALID_ADDRESS", "Delivery address is required")
	}

	s.DeliveryAddress = &address
	s.Shipping = &shipping
	s.recalculateTotals()
	s.advance()

	return nil
}

// SubmitPayment stores the payment selection and advances from PAYMENT to REVIEW
func (s *CheckoutSession) SubmitPayment(selection PaymentSelection) error {
	if err := s.ensureSubmittableFrom(StepPayment); err != nil {
		return err
	}

	s.Payment = &selection
	s.advance()

	return nil
}

// Confirm transitions the session to CONFIRMED. Only valid from the REVIEW
// step of an active session; the step itself is left untouched since only the
// confirmation view remains accessible afterwards.
func (s *CheckoutSession) Confirm() error {
	if !s.Status.CanTransitionTo(StatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm checkout in %s status", s.Status))
	}
	if s.CurrentStep != StepReview {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm checkout from %s step", s.CurrentStep))
	}

	now := time.Now()
	s.Status = StatusConfirmed
	s.ConfirmedAt = &now
	s.UpdatedAt = now

	s.AddDomainEvent(NewCheckoutConfirmedEvent(s))

	return nil
}

// Complete finalizes a confirmed session, assigning the order reference.
// Completion happens asynchronously, after the stock-reduction propagation
// has settled, which is why it is not part of Confirm.
func (s *CheckoutSession) Complete(orderReference string) error {
	if !s.Status.CanTransitionTo(StatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete checkout in %s status", s.Status))
	}
	if orderReference == "" {
		return shared.NewDomainError("INVALID_ORDER_REFERENCE", "Order reference cannot be empty")
	}

	s.Status = StatusCompleted
	s.OrderReference = orderReference
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewCheckoutCompletedEvent(s))

	return nil
}

// Abandon moves an active session to the ABANDONED terminal status
func (s *CheckoutSession) Abandon() error {
	if !s.Status.CanTransitionTo(StatusAbandoned) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot abandon checkout in %s status", s.Status))
	}

	s.Status = StatusAbandoned
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewCheckoutAbandonedEvent(s))

	return nil
}

// Expire moves an active session to the EXPIRED terminal status.
// Expiry is driven by an external scheduler, never by the session itself.
func (s *CheckoutSession) Expire() error {
	if !s.Status.CanTransitionTo(StatusExpired) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire checkout in %s status", s.Status))
	}

	s.Status = StatusExpired
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewCheckoutExpiredEvent(s))

	return nil
}

// ensureSubmittableFrom rejects a submit operation unless the session is
// active and currently at the given step
func (s *CheckoutSession) ensureSubmittableFrom(step CheckoutStep) error {
	if s.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit checkout data in %s status", s.Status))
	}
	if s.CurrentStep != step {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Expected %s step, session is at %s", step, s.CurrentStep))
	}
	return nil
}

// advance moves the session to the next step in the total order
func (s *CheckoutSession) advance() {
	if next, ok := s.CurrentStep.Next(); ok {
		s.CurrentStep = next
	}
	s.UpdatedAt = time.Now()
}

// recalculateTotals recomputes subtotal, shipping, and total
func (s *CheckoutSession) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.Amount())
	}
	s.Subtotal = subtotal

	s.ShippingCost = decimal.Zero
	if s.Shipping != nil {
		s.ShippingCost = s.Shipping.Cost
	}

	s.Total = s.Subtotal.Add(s.ShippingCost)
}

// SubtotalMoney returns the subtotal as Money
func (s *CheckoutSession) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(s.Subtotal)
}

// TotalMoney returns the total as Money
func (s *CheckoutSession) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(s.Total)
}

// IsActive returns true if the session is still mutable
func (s *CheckoutSession) IsActive() bool {
	return s.Status == StatusActive
}

// IsConfirmed returns true if the session has been confirmed
func (s *CheckoutSession) IsConfirmed() bool {
	return s.Status == StatusConfirmed
}

// IsCompleted returns true if the session has been completed
func (s *CheckoutSession) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// ItemCount returns the number of line items
func (s *CheckoutSession) ItemCount() int {
	return len(s.Items)
}

// GetItemByProduct returns the line item for a product, or nil
func (s *CheckoutSession) GetItemByProduct(productID uuid.UUID) *LineItem {
	for idx := range s.Items {
		if s.Items[idx].ProductID == productID {
			return &s.Items[idx]
		}
	}
	return nil
}

// ProductIDs returns the product ids of all line items
func (s *CheckoutSession) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.Items))
	for i, item := range s.Items {
		ids[i] = item.ProductID
	}
	return ids
}
