package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// inMemoryStockRepo is a map-backed StockLevelRepository for handler tests
type inMemoryStockRepo struct {
	levels  map[uuid.UUID]*inventory.StockLevel
	saveErr error
}

func newInMemoryStockRepo() *inMemoryStockRepo {
	return &inMemoryStockRepo{levels: make(map[uuid.UUID]*inventory.StockLevel)}
}

func (r *inMemoryStockRepo) FindByProduct(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	level, ok := r.levels[productID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return level, nil
}

func (r *inMemoryStockRepo) FindByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*inventory.StockLevel, error) {
	result := make(map[uuid.UUID]*inventory.StockLevel)
	for _, id := range productIDs {
		if level, ok := r.levels[id]; ok {
			result[id] = level
		}
	}
	return result, nil
}

func (r *inMemoryStockRepo) Save(ctx context.Context, s *inventory.StockLevel) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.levels[s.ProductID] = s
	return nil
}

func (r *inMemoryStockRepo) SaveWithLock(ctx context.Context, s *inventory.StockLevel) error {
	return r.Save(ctx, s)
}

func (r *inMemoryStockRepo) provision(t *testing.T, productID uuid.UUID, available int) {
	level, err := inventory.NewStockLevel(productID, available)
	require.NoError(t, err)
	r.levels[productID] = level
}

// recordingCompleter records completion calls
type recordingCompleter struct {
	sessionIDs []uuid.UUID
	err        error
}

func (c *recordingCompleter) CompleteCheckout(ctx context.Context, sessionID uuid.UUID) error {
	if c.err != nil {
		return c.err
	}
	c.sessionIDs = append(c.sessionIDs, sessionID)
	return nil
}

func confirmedEvent(t *testing.T, items map[uuid.UUID]int) *checkout.CheckoutConfirmedEvent {
	snapshots := make([]checkout.ItemSnapshot, 0, len(items))
	for productID, quantity := range items {
		snapshots = append(snapshots, checkout.ItemSnapshot{
			ProductID:   productID,
			ProductName: "Product " + productID.String()[:8],
			UnitPrice:   valueobject.NewMoneyUSD(decimal.NewFromInt(10)),
			Quantity:    quantity,
		})
	}

	session, err := checkout.NewCheckoutSession(uuid.New(), uuid.New(), snapshots)
	require.NoError(t, err)
	return checkout.NewCheckoutConfirmedEvent(session)
}

func TestStockReductionHandler_Handle(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("decrements stock per item and completes the session", func(t *testing.T) {
		repo := newInMemoryStockRepo()
		completer := &recordingCompleter{}
		handler := NewStockReductionHandler(repo, completer, logger)

		first := uuid.New()
		second := uuid.New()
		repo.provision(t, first, 100)
		repo.provision(t, second, 100)

		event := confirmedEvent(t, map[uuid.UUID]int{first: 2, second: 3})
		require.NoError(t, handler.Handle(ctx, event))

		assert.Equal(t, 98, repo.levels[first].Available)
		assert.Equal(t, 97, repo.levels[second].Available)
		require.Len(t, completer.sessionIDs, 1)
		assert.Equal(t, event.SessionID, completer.sessionIDs[0])
	})

	t.Run("a failing item does not stop the others", func(t *testing.T) {
		repo := newInMemoryStockRepo()
		completer := &recordingCompleter{}
		handler := NewStockReductionHandler(repo, completer, logger)

		known := uuid.New()
		unknown := uuid.New()
		repo.provision(t, known, 10)

		event := confirmedEvent(t, map[uuid.UUID]int{known: 2, unknown: 1})
		require.NoError(t, handler.Handle(ctx, event))

		assert.Equal(t, 8, repo.levels[known].Available)
		assert.Len(t, completer.sessionIDs, 1, "session still completed")
	})

	t.Run("insufficient stock is isolated to its item", func(t *testing.T) {
		repo := newInMemoryStockRepo()
		completer := &recordingCompleter{}
		handler := NewStockReductionHandler(repo, completer, logger)

		short := uuid.New()
		plenty := uuid.New()
		repo.provision(t, short, 1)
		repo.provision(t, plenty, 10)

		event := confirmedEvent(t, map[uuid.UUID]int{short: 5, plenty: 2})
		require.NoError(t, handler.Handle(ctx, event))

		assert.Equal(t, 1, repo.levels[short].Available, "shortfall item untouched")
		assert.Equal(t, 8, repo.levels[plenty].Available)
	})

	t.Run("redelivery decrements again", func(t *testing.T) {
		repo := newInMemoryStockRepo()
		handler := NewStockReductionHandler(repo, &recordingCompleter{}, logger)

		productID := uuid.New()
		repo.provision(t, productID, 10)

		event := confirmedEvent(t, map[uuid.UUID]int{productID: 2})
		require.NoError(t, handler.Handle(ctx, event))
		require.NoError(t, handler.Handle(ctx, event))

		assert.Equal(t, 6, repo.levels[productID].Available)
	})

	t.Run("completion failure is returned", func(t *testing.T) {
		repo := newInMemoryStockRepo()
		completer := &recordingCompleter{err: errors.New("session gone")}
		handler := NewStockReductionHandler(repo, completer, logger)

		productID := uuid.New()
		repo.provision(t, productID, 10)

		event := confirmedEvent(t, map[uuid.UUID]int{productID: 1})
		require.Error(t, handler.Handle(ctx, event))
		assert.Equal(t, 9, repo.levels[productID].Available, "reduction already applied")
	})

	t.Run("rejects other event types", func(t *testing.T) {
		handler := NewStockReductionHandler(newInMemoryStockRepo(), &recordingCompleter{}, logger)

		level, err := inventory.NewStockLevel(uuid.New(), 5)
		require.NoError(t, err)
		require.NoError(t, level.Decrement(1))
		other := level.GetDomainEvents()[0]

		require.Error(t, handler.Handle(ctx, other))
	})

	t.Run("subscribes to checkout confirmed only", func(t *testing.T) {
		handler := NewStockReductionHandler(newInMemoryStockRepo(), &recordingCompleter{}, logger)
		assert.Equal(t, []string{checkout.EventTypeCheckoutConfirmed}, handler.EventTypes())
	})
}
