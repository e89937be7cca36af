package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
)

// CartSnapshotCache caches per-customer cart snapshots. A miss is reported as
// (nil, nil); errors are reserved for backend failures.
type CartSnapshotCache interface {
	// Get returns the cached cart for a customer, or nil on a miss
	Get(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error)

	// Set stores the cart snapshot with the given TTL
	Set(ctx context.Context, c *cart.Cart, ttl time.Duration) error

	// Invalidate removes the cached cart for a customer
	Invalidate(ctx context.Context, customerID uuid.UUID) error
}

// cachedCart is the serialized form of a cart snapshot
type cachedCart struct {
	ID         uuid.UUID        `json:"id"`
	CustomerID uuid.UUID        `json:"customer_id"`
	Version    int              `json:"version"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	Items      []cachedCartItem `json:"items"`
}

// cachedCartItem is the serialized form of one cart line item
type cachedCartItem struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	ImageRef    string    `json:"image_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
