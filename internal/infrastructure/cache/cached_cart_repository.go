package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CachedCartRepository decorates a cart repository with a read-through
// snapshot cache keyed by customer. The database stays the source of truth;
// cache failures are logged and the call falls through to the inner
// repository.
type CachedCartRepository struct {
	inner  cart.CartRepository
	cache  CartSnapshotCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedCartRepository creates a new CachedCartRepository
func NewCachedCartRepository(inner cart.CartRepository, cache CartSnapshotCache, ttl time.Duration, logger *zap.Logger) *CachedCartRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedCartRepository{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// FindByID finds a cart by its ID, bypassing the customer-keyed cache
func (r *CachedCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	return r.inner.FindByID(ctx, id)
}

// FindByCustomer finds the cart owned by a customer, preferring the cache
func (r *CachedCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	cached, err := r.cache.Get(ctx, customerID)
	if err != nil {
		r.logger.Warn("cart cache read failed",
			zap.String("customer_id", customerID.String()),
			zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	c, err := r.inner.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, c, r.ttl); err != nil {
		r.logger.Warn("cart cache fill failed",
			zap.String("customer_id", customerID.String()),
			zap.Error(err))
	}

	return c, nil
}

// Save writes through to the inner repository and refreshes the cache
func (r *CachedCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if err := r.inner.Save(ctx, c); err != nil {
		return err
	}

	if err := r.cache.Set(ctx, c, r.ttl); err != nil {
		r.logger.Warn("cart cache refresh failed",
			zap.String("customer_id", c.CustomerID.String()),
			zap.Error(err))
	}

	return nil
}

// Delete deletes the cart and drops its cached snapshot
func (r *CachedCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// The cache is keyed by customer, so resolve the owner before the row
	// disappears.
	var customerID uuid.UUID
	if c, err := r.inner.FindByID(ctx, id); err == nil {
		customerID = c.CustomerID
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}

	if customerID != uuid.Nil {
		if err := r.cache.Invalidate(ctx, customerID); err != nil {
			r.logger.Warn("cart cache invalidation failed",
				zap.String("customer_id", customerID.String()),
				zap.Error(err))
		}
	}

	return nil
}

// Ensure CachedCartRepository implements the repository interface
var _ cart.CartRepository = (*CachedCartRepository)(nil)
