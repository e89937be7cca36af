package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout/acl"
)

// AddItemRequest is the request to add a product to a cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// UpdateItemRequest is the request to change a cart line's quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// MergeCartsRequest selects the reconciliation strategy applied at login
type MergeCartsRequest struct {
	AnonymousCustomerID uuid.UUID          `json:"anonymous_customer_id" binding:"required"`
	Strategy            cart.MergeStrategy `json:"strategy" binding:"required"`
}

// CartItemResponse is one cart line enriched with fresh article data.
// SnapshotPrice is the price captured when the item was added; CurrentPrice
// reflects the pricing source at read time and the two may differ.
type CartItemResponse struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ImageRef      string          `json:"image_ref,omitempty"`
	Quantity      int             `json:"quantity"`
	SnapshotPrice decimal.Decimal `json:"snapshot_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	Amount        decimal.Decimal `json:"amount"`
	Available     bool            `json:"available"`
	Stock         int             `json:"stock"`
	Listed        bool            `json:"listed"`
}

// CartResponse is the full cart view
type CartResponse struct {
	ID            uuid.UUID          `json:"id"`
	CustomerID    uuid.UUID          `json:"customer_id"`
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
}

// MergeCartsResponse reports the outcome of a cart merge
type MergeCartsResponse struct {
	CartID    uuid.UUID          `json:"cart_id"`
	Strategy  cart.MergeStrategy `json:"strategy"`
	ItemCount int                `json:"item_count"`
}

// ToCartResponse converts a cart and its resolved articles to a response.
// Lines whose product no longer resolves are still shown, marked unlisted.
func ToCartResponse(c *cart.Cart, articles map[uuid.UUID]acl.ArticleSnapshot) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		resp := CartItemResponse{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			ImageRef:      item.ImageRef,
			Quantity:      item.Quantity,
			SnapshotPrice: item.UnitPrice,
			CurrentPrice:  item.UnitPrice,
			Amount:        item.Amount(),
		}
		if article, ok := articles[item.ProductID]; ok {
			resp.ProductName = article.Name
			resp.ImageRef = article.ImageRef
			resp.CurrentPrice = article.Price
			resp.Available = article.Available
			resp.Stock = article.Stock
			resp.Listed = true
		}
		items[i] = resp
	}

	return CartResponse{
		ID:            c.ID,
		CustomerID:    c.CustomerID,
		Items:         items,
		TotalQuantity: c.TotalQuantity(),
		Subtotal:      c.Subtotal(),
	}
}
