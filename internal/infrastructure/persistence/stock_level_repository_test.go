package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStockTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.StockLevelModel{})
	require.NoError(t, err)

	return db
}

func provisionStock(t *testing.T, repo *GormStockLevelRepository, available int) *inventory.StockLevel {
	t.Helper()

	level, err := inventory.NewStockLevel(uuid.New(), available)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), level))

	return level
}

func TestStockLevelRepository_FindByProduct(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewGormStockLevelRepository(db)
	ctx := context.Background()

	t.Run("finds a provisioned product", func(t *testing.T) {
		level := provisionStock(t, repo, 25)

		found, err := repo.FindByProduct(ctx, level.ProductID)
		require.NoError(t, err)
		assert.Equal(t, level.ID, found.ID)
		assert.Equal(t, 25, found.Available)
	})

	t.Run("returns not found for unknown product", func(t *testing.T) {
		_, err := repo.FindByProduct(ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestStockLevelRepository_FindByProducts(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewGormStockLevelRepository(db)
	ctx := context.Background()

	first := provisionStock(t, repo, 10)
	second := provisionStock(t, repo, 0)
	unknown := uuid.New()

	found, err := repo.FindByProducts(ctx, []uuid.UUID{first.ProductID, second.ProductID, unknown})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, 10, found[first.ProductID].Available)
	assert.Equal(t, 0, found[second.ProductID].Available)
	assert.NotContains(t, found, unknown)
}

func TestStockLevelRepository_SaveWithLock(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewGormStockLevelRepository(db)
	ctx := context.Background()

	t.Run("persists a domain decrement", func(t *testing.T) {
		level := provisionStock(t, repo, 10)

		require.NoError(t, level.Decrement(3))
		level.ClearDomainEvents()

		require.NoError(t, repo.SaveWithLock(ctx, level))

		found, err := repo.FindByProduct(ctx, level.ProductID)
		require.NoError(t, err)
		assert.Equal(t, 7, found.Available)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("rejects a write from a stale read", func(t *testing.T) {
		level := provisionStock(t, repo, 10)

		winner, err := repo.FindByProduct(ctx, level.ProductID)
		require.NoError(t, err)
		require.NoError(t, winner.Decrement(2))
		require.NoError(t, repo.SaveWithLock(ctx, winner))

		loser := level
		require.NoError(t, loser.Decrement(5))

		err = repo.SaveWithLock(ctx, loser)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)

		// The winner's write is untouched.
		found, err := repo.FindByProduct(ctx, level.ProductID)
		require.NoError(t, err)
		assert.Equal(t, 8, found.Available)
	})
}
