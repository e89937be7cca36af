package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.CartModel{}, &models.CartItemModel{})
	require.NoError(t, err)

	return db
}

func newStoredCart(t *testing.T) *cart.Cart {
	t.Helper()

	c, err := cart.NewCart(uuid.New())
	require.NoError(t, err)
	require.NoError(t, c.AddItem(uuid.New(), "Ceramic Mug", valueobject.NewMoneyUSDFromFloat(14.50), 2, "img/mug.jpg"))
	require.NoError(t, c.AddItem(uuid.New(), "Oak Coaster Set", valueobject.NewMoneyUSDFromFloat(22.00), 1, "img/coasters.jpg"))
	c.ClearDomainEvents()

	return c
}

func TestCartRepository_SaveAndFind(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	t.Run("round trips a cart with items", func(t *testing.T) {
		c := newStoredCart(t)

		require.NoError(t, repo.Save(ctx, c))

		found, err := repo.FindByCustomer(ctx, c.CustomerID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, found.ID)
		require.Len(t, found.Items, 2)
		assert.True(t, found.Subtotal().Equal(decimal.NewFromFloat(51.00)))
	})

	t.Run("removed items are deleted on save", func(t *testing.T) {
		c := newStoredCart(t)
		require.NoError(t, repo.Save(ctx, c))

		require.NoError(t, c.RemoveItem(c.Items[0].ProductID))
		require.NoError(t, repo.Save(ctx, c))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, found.Items, 1)
	})

	t.Run("returns not found for unknown customer", func(t *testing.T) {
		_, err := repo.FindByCustomer(ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestCartRepository_Delete(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	t.Run("deletes the cart and its items", func(t *testing.T) {
		c := newStoredCart(t)
		require.NoError(t, repo.Save(ctx, c))

		require.NoError(t, repo.Delete(ctx, c.ID))

		_, err := repo.FindByID(ctx, c.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))

		var itemCount int64
		require.NoError(t, db.Model(&models.CartItemModel{}).Where("cart_id = ?", c.ID).Count(&itemCount).Error)
		assert.Zero(t, itemCount)
	})

	t.Run("returns not found for unknown cart", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
