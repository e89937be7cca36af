package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByCustomer finds the cart owned by a customer.
	// Returns shared.ErrNotFound if the customer has no cart.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Cart, error)

	// Save creates or updates a cart together with its items
	Save(ctx context.Context, c *Cart) error

	// Delete deletes a cart and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
