package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CheckoutSessionRepository defines the interface for session persistence.
// Concurrent writes to the same session are serialized by the storage layer
// (single writer per aggregate), not by the domain.
type CheckoutSessionRepository interface {
	// FindByID finds a checkout session by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CheckoutSession, error)

	// FindActiveByCustomer finds the customer's active session, if any.
	// Returns shared.ErrNotFound when the customer has no active checkout.
	FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*CheckoutSession, error)

	// FindLatestByCustomer finds the customer's most recent session in any
	// status. Step access consults it so a freshly confirmed or completed
	// session still grants the confirmation view.
	FindLatestByCustomer(ctx context.Context, customerID uuid.UUID) (*CheckoutSession, error)

	// FindStaleActive finds active sessions not updated since the cutoff.
	// Used by the externally driven expiry sweep.
	FindStaleActive(ctx context.Context, cutoff time.Time) ([]CheckoutSession, error)

	// Save creates or updates a session together with its line items
	Save(ctx context.Context, s *CheckoutSession) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, s *CheckoutSession) error
}
