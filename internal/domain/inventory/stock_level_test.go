package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockLevel(t *testing.T) {
	productID := uuid.New()
	level, err := NewStockLevel(productID, 10)
	require.NoError(t, err)

	assert.Equal(t, productID, level.ProductID)
	assert.Equal(t, 10, level.Available)
	assert.True(t, level.IsAvailable())
}

func TestNewStockLevel_Validation(t *testing.T) {
	_, err := NewStockLevel(uuid.Nil, 10)
	require.Error(t, err)

	_, err = NewStockLevel(uuid.New(), -1)
	require.Error(t, err)
}

func TestStockLevel_Decrement(t *testing.T) {
	t.Run("reduces available stock", func(t *testing.T) {
		level, err := NewStockLevel(uuid.New(), 10)
		require.NoError(t, err)
		versionBefore := level.GetVersion()
		level.ClearDomainEvents()

		require.NoError(t, level.Decrement(3))

		assert.Equal(t, 7, level.Available)
		assert.Greater(t, level.GetVersion(), versionBefore)

		events := level.GetDomainEvents()
		require.Len(t, events, 1)
		decremented, ok := events[0].(*StockDecrementedEvent)
		require.True(t, ok)
		assert.Equal(t, level.ProductID, decremented.ProductID)
		assert.Equal(t, 3, decremented.Quantity)
		assert.Equal(t, 7, decremented.Remaining)
	})

	t.Run("allows decrement to exactly zero", func(t *testing.T) {
		level, err := NewStockLevel(uuid.New(), 5)
		require.NoError(t, err)

		require.NoError(t, level.Decrement(5))
		assert.Equal(t, 0, level.Available)
		assert.False(t, level.IsAvailable())
	})

	t.Run("rejects decrement below zero", func(t *testing.T) {
		level, err := NewStockLevel(uuid.New(), 2)
		require.NoError(t, err)

		require.Error(t, level.Decrement(3))
		assert.Equal(t, 2, level.Available, "stock unchanged after rejection")
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		level, err := NewStockLevel(uuid.New(), 2)
		require.NoError(t, err)

		require.Error(t, level.Decrement(0))
		require.Error(t, level.Decrement(-1))
	})
}

func TestStockLevel_Increment(t *testing.T) {
	level, err := NewStockLevel(uuid.New(), 2)
	require.NoError(t, err)

	require.NoError(t, level.Increment(5))
	assert.Equal(t, 7, level.Available)

	require.Error(t, level.Increment(0))
}

func TestStockLevel_CanSatisfy(t *testing.T) {
	level, err := NewStockLevel(uuid.New(), 5)
	require.NoError(t, err)

	assert.True(t, level.CanSatisfy(5))
	assert.False(t, level.CanSatisfy(6))
}
