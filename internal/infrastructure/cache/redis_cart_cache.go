package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/cart"
)

const cartKeyPrefix = "cart:customer:"

// RedisCartCache implements CartSnapshotCache using Redis.
// This is suitable for distributed deployments where multiple instances
// serve the same customers.
type RedisCartCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCartCache creates a new Redis-based cart cache
func NewRedisCartCache(client *redis.Client) *RedisCartCache {
	return &RedisCartCache{
		client:    client,
		keyPrefix: cartKeyPrefix,
	}
}

// Get returns the cached cart for a customer, or nil on a miss
func (c *RedisCartCache) Get(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	data, err := c.client.Get(ctx, c.key(customerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached cart: %w", err)
	}

	var snapshot cachedCart
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode cached cart: %w", err)
	}

	return decodeCart(snapshot)
}

// Set stores the cart snapshot with the given TTL
func (c *RedisCartCache) Set(ctx context.Context, cr *cart.Cart, ttl time.Duration) error {
	data, err := json.Marshal(encodeCart(cr))
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := c.client.Set(ctx, c.key(cr.CustomerID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache cart: %w", err)
	}
	return nil
}

// Invalidate removes the cached cart for a customer
func (c *RedisCartCache) Invalidate(ctx context.Context, customerID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(customerID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached cart: %w", err)
	}
	return nil
}

func (c *RedisCartCache) key(customerID uuid.UUID) string {
	return c.keyPrefix + customerID.String()
}

// Ensure RedisCartCache implements CartSnapshotCache
var _ CartSnapshotCache = (*RedisCartCache)(nil)
