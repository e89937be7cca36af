package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
)

// InMemoryCartCache implements CartSnapshotCache with a process-local map.
// Suitable for single-instance deployments and tests; entries expire lazily
// on read.
type InMemoryCartCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]inMemoryCartEntry
}

type inMemoryCartEntry struct {
	snapshot  cachedCart
	expiresAt time.Time
}

// NewInMemoryCartCache creates a new in-memory cart cache
func NewInMemoryCartCache() *InMemoryCartCache {
	return &InMemoryCartCache{
		entries: make(map[uuid.UUID]inMemoryCartEntry),
	}
}

// Get returns the cached cart for a customer, or nil on a miss
func (c *InMemoryCartCache) Get(_ context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	c.mu.RLock()
	entry, ok := c.entries[customerID]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, customerID)
		c.mu.Unlock()
		return nil, nil
	}

	return decodeCart(entry.snapshot)
}

// Set stores the cart snapshot with the given TTL. A non-positive TTL means
// the entry does not expire.
func (c *InMemoryCartCache) Set(_ context.Context, cr *cart.Cart, ttl time.Duration) error {
	entry := inMemoryCartEntry{snapshot: encodeCart(cr)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[cr.CustomerID] = entry
	c.mu.Unlock()

	return nil
}

// Invalidate removes the cached cart for a customer
func (c *InMemoryCartCache) Invalidate(_ context.Context, customerID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, customerID)
	c.mu.Unlock()
	return nil
}

// Ensure InMemoryCartCache implements CartSnapshotCache
var _ CartSnapshotCache = (*InMemoryCartCache)(nil)
