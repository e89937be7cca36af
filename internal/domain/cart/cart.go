package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CartItem represents a line item in a shopping cart
type CartItem struct {
	ID          uuid.UUID
	CartID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal // Price captured when the item was added
	Quantity    int
	ImageRef    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCartItem creates a new cart item
func NewCartItem(cartID, productID uuid.UUID, productName string, unitPrice valueobject.Money, quantity int, imageRef string) (*CartItem, error) {
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

	now := time.Now()
	return &CartItem{
		ID:          uuid.New(),
		CartID:      cartID,
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice.Amount(),
		Quantity:    quantity,
		ImageRef:    imageRef,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Amount returns quantity * unit price for this item
func (i *CartItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart represents a customer's shopping cart aggregate root.
// A customer (anonymous or registered) owns at most one cart.
type Cart struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID
	Items      []CartItem
}

// NewCart creates a new cart for a customer
func NewCart(customerID uuid.UUID) (*Cart, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	c := &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Items:             make([]CartItem, 0),
	}

	c.AddDomainEvent(NewCartCreatedEvent(c))

	return c, nil
}

// AddItem adds a product to the cart.
// Adding a product already in the cart increases its quantity instead of
// creating a second line.
func (c *Cart) AddItem(productID uuid.UUID, productName string, unitPrice valueobject.Money, quantity int, imageRef string) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity += quantity
			c.Items[idx].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	item, err := NewCartItem(c.ID, productID, productName, unitPrice, quantity, imageRef)
	if err != nil {
		return err
	}

	c.Items = append(c.Items, *item)
	c.UpdatedAt = time.Now()

	return nil
}

// UpdateItemQuantity sets the quantity of an existing line item
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity = quantity
			c.Items[idx].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// RemoveItem removes a line item from the cart
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for idx, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// Clear removes all line items from the cart
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now()
}

// MergeFrom merges another cart's items into this cart.
// Quantities of shared products are summed; this cart's captured name and
// price win for shared products. Items unique to the other cart are copied
// over as new line items.
func (c *Cart) MergeFrom(other *Cart) {
	if other == nil {
		return
	}

	for _, item := range other.Items {
		existing := c.GetItemByProduct(item.ProductID)
		if existing != nil {
			existing.Quantity += item.Quantity
			existing.UpdatedAt = time.Now()
			continue
		}

		copied := item
		copied.ID = uuid.New()
		copied.CartID = c.ID
		copied.CreatedAt = time.Now()
		copied.UpdatedAt = copied.CreatedAt
		c.Items = append(c.Items, copied)
	}

	c.UpdatedAt = time.Now()
}

// ReplaceItems discards this cart's items and replaces them wholesale with
// copies of the given cart's items
func (c *Cart) ReplaceItems(other *Cart) {
	c.Items = make([]CartItem, 0)
	if other == nil {
		c.UpdatedAt = time.Now()
		return
	}

	for _, item := range other.Items {
		copied := item
		copied.ID = uuid.New()
		copied.CartID = c.ID
		copied.CreatedAt = time.Now()
		copied.UpdatedAt = copied.CreatedAt
		c.Items = append(c.Items, copied)
	}

	c.UpdatedAt = time.Now()
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the number of distinct line items
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// TotalQuantity returns the sum of all item quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the sum of all item amounts
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Amount())
	}
	return total
}

// SubtotalMoney returns the subtotal as a Money value object
func (c *Cart) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(c.Subtotal())
}

// GetItemByProduct returns the line item for a product, or nil
func (c *Cart) GetItemByProduct(productID uuid.UUID) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return &c.Items[idx]
		}
	}
	return nil
}
