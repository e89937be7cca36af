package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedTestCart(t *testing.T) *cart.Cart {
	t.Helper()

	c, err := cart.NewCart(uuid.New())
	require.NoError(t, err)
	require.NoError(t, c.AddItem(uuid.New(), "Ceramic Mug", valueobject.NewMoneyUSDFromFloat(14.50), 2, "img/mug.jpg"))
	c.ClearDomainEvents()

	return c
}

func TestInMemoryCartCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips a cart snapshot", func(t *testing.T) {
		cache := NewInMemoryCartCache()
		c := cachedTestCart(t)

		require.NoError(t, cache.Set(ctx, c, time.Minute))

		found, err := cache.Get(ctx, c.CustomerID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, c.ID, found.ID)
		assert.Equal(t, c.Version, found.Version)
		require.Len(t, found.Items, 1)
		assert.True(t, found.Items[0].UnitPrice.Equal(decimal.NewFromFloat(14.50)))
		assert.Equal(t, 2, found.Items[0].Quantity)
	})

	t.Run("misses for an unknown customer", func(t *testing.T) {
		cache := NewInMemoryCartCache()

		found, err := cache.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("expired entries read as misses", func(t *testing.T) {
		cache := NewInMemoryCartCache()
		c := cachedTestCart(t)

		require.NoError(t, cache.Set(ctx, c, time.Nanosecond))
		time.Sleep(5 * time.Millisecond)

		found, err := cache.Get(ctx, c.CustomerID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		cache := NewInMemoryCartCache()
		c := cachedTestCart(t)

		require.NoError(t, cache.Set(ctx, c, time.Minute))
		require.NoError(t, cache.Invalidate(ctx, c.CustomerID))

		found, err := cache.Get(ctx, c.CustomerID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

// stubCartRepository is a map-backed cart repository recording call counts
type stubCartRepository struct {
	byID        map[uuid.UUID]*cart.Cart
	byCustomer  map[uuid.UUID]*cart.Cart
	findByCust  int
	saveCalls   int
	deleteCalls int
}

func newStubCartRepository() *stubCartRepository {
	return &stubCartRepository{
		byID:       make(map[uuid.UUID]*cart.Cart),
		byCustomer: make(map[uuid.UUID]*cart.Cart),
	}
}

func (r *stubCartRepository) FindByID(_ context.Context, id uuid.UUID) (*cart.Cart, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubCartRepository) FindByCustomer(_ context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	r.findByCust++
	if c, ok := r.byCustomer[customerID]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubCartRepository) Save(_ context.Context, c *cart.Cart) error {
	r.saveCalls++
	r.byID[c.ID] = c
	r.byCustomer[c.CustomerID] = c
	return nil
}

func (r *stubCartRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.deleteCalls++
	c, ok := r.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byCustomer, c.CustomerID)
	return nil
}

func TestCachedCartRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("second read is served from the cache", func(t *testing.T) {
		inner := newStubCartRepository()
		repo := NewCachedCartRepository(inner, NewInMemoryCartCache(), time.Minute, nil)

		c := cachedTestCart(t)
		require.NoError(t, inner.Save(ctx, c))
		inner.saveCalls = 0

		first, err := repo.FindByCustomer(ctx, c.CustomerID)
		require.NoError(t, err)
		second, err := repo.FindByCustomer(ctx, c.CustomerID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, inner.findByCust)
	})

	t.Run("save writes through and refreshes the cache", func(t *testing.T) {
		inner := newStubCartRepository()
		repo := NewCachedCartRepository(inner, NewInMemoryCartCache(), time.Minute, nil)

		c := cachedTestCart(t)
		require.NoError(t, repo.Save(ctx, c))
		assert.Equal(t, 1, inner.saveCalls)

		found, err := repo.FindByCustomer(ctx, c.CustomerID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, found.ID)
		assert.Zero(t, inner.findByCust)
	})

	t.Run("delete drops the cached snapshot", func(t *testing.T) {
		inner := newStubCartRepository()
		repo := NewCachedCartRepository(inner, NewInMemoryCartCache(), time.Minute, nil)

		c := cachedTestCart(t)
		require.NoError(t, repo.Save(ctx, c))
		require.NoError(t, repo.Delete(ctx, c.ID))

		_, err := repo.FindByCustomer(ctx, c.CustomerID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("misses fall through to the inner repository", func(t *testing.T) {
		inner := newStubCartRepository()
		repo := NewCachedCartRepository(inner, NewInMemoryCartCache(), time.Minute, nil)

		_, err := repo.FindByCustomer(ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.Equal(t, 1, inner.findByCust)
	})
}
