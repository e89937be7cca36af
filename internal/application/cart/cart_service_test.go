package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout/acl"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// MockCartRepository is a mock implementation of CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockArticleResolver is a mock implementation of acl.ArticleResolver
type MockArticleResolver struct {
	mock.Mock
}

func (m *MockArticleResolver) Resolve(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]acl.ArticleSnapshot, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]acl.ArticleSnapshot), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func cartWith(t *testing.T, customerID uuid.UUID, quantities map[uuid.UUID]int) *cart.Cart {
	c, err := cart.NewCart(customerID)
	require.NoError(t, err)
	for productID, quantity := range quantities {
		require.NoError(t, c.AddItem(productID, "Product "+productID.String()[:8], valueobject.NewMoneyUSDFromFloat(10), quantity, ""))
	}
	c.ClearDomainEvents()
	return c
}

func articleFor(productID uuid.UUID, price float64, stock int) acl.ArticleSnapshot {
	return acl.ArticleSnapshot{
		ProductID: productID,
		Name:      "Test Article",
		Price:     decimal.NewFromFloat(price),
		Stock:     stock,
		Available: stock > 0,
	}
}

func TestCartService_GetCart(t *testing.T) {
	ctx := context.Background()

	t.Run("returns enriched cart view", func(t *testing.T) {
		repo := new(MockCartRepository)
		resolver := new(MockArticleResolver)
		service := NewCartService(repo, resolver)

		customerID := uuid.New()
		productID := uuid.New()
		c := cartWith(t, customerID, map[uuid.UUID]int{productID: 2})

		repo.On("FindByCustomer", ctx, customerID).Return(c, nil)
		resolver.On("Resolve", ctx, mock.Anything).Return(map[uuid.UUID]acl.ArticleSnapshot{
			productID: articleFor(productID, 12.50, 5),
		}, nil)

		resp, err := service.GetCart(ctx, customerID)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].Listed)
		assert.True(t, resp.Items[0].Available)
		assert.True(t, resp.Items[0].CurrentPrice.Equal(decimal.NewFromFloat(12.50)))
		assert.True(t, resp.Items[0].SnapshotPrice.Equal(decimal.NewFromFloat(10)))
	})

	t.Run("customer without a cart gets an empty view", func(t *testing.T) {
		repo := new(MockCartRepository)
		resolver := new(MockArticleResolver)
		service := NewCartService(repo, resolver)

		customerID := uuid.New()
		repo.On("FindByCustomer", ctx, customerID).Return(nil, shared.ErrNotFound)
		resolver.On("Resolve", ctx, mock.Anything).Return(map[uuid.UUID]acl.ArticleSnapshot{}, nil)

		resp, err := service.GetCart(ctx, customerID)
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("delisted product stays visible but unlisted", func(t *testing.T) {
		repo := new(MockCartRepository)
		resolver := new(MockArticleResolver)
		service := NewCartService(repo, resolver)

		customerID := uuid.New()
		productID := uuid.New()
		c := cartWith(t, customerID, map[uuid.UUID]int{productID: 1})

		repo.On("FindByCustomer", ctx, customerID).Return(c, nil)
		resolver.On("Resolve", ctx, mock.Anything).Return(map[uuid.UUID]acl.ArticleSnapshot{}, nil)

		resp, err := service.GetCart(ctx, customerID)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.False(t, resp.Items[0].Listed)
		assert.False(t, resp.Items[0].Available)
	})
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the cart on first add", func(t *testing.T) {
		repo := new(MockCartRepository)
		resolver := new(MockArticleResolver)
		service := NewCartService(repo, resolver)

		customerID := uuid.New()
		productID := uuid.New()

		repo.On("FindByCustomer", ctx, customerID).Return(nil, shared.ErrNotFound)
		resolver.On("Resolve", ctx, mock.Anything).Return(map[uuid.UUID]acl.ArticleSnapshot{
			productID: articleFor(productID, 12.50, 5),
		}, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil)

		resp, err := service.AddItem(ctx, customerID, AddItemRequest{ProductID: productID, Quantity: 2})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		repo.AssertCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		repo := new(MockCartRepository)
		resolver := new(MockArticleResolver)
		service := NewCartService(repo, resolver)

		resolver.On("Resolve", ctx, mock.Anything).Return(map[uuid.UUID]acl.ArticleSnapshot{}, nil)

		_, err := service.AddItem(ctx, uuid.New(), AddItemRequest{ProductID: uuid.New(), Quantity: 1})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects unavailable product", func(t *testing.T) {
		repo := new(MockCartRepository)
		resolver := new(MockArticleResolver)
		service := NewCartService(repo, resolver)

		productID := uuid.New()
		resolver.On("Resolve", ctx, mock.Anything).Return(map[uuid.UUID]acl.ArticleSnapshot{
			productID: articleFor(productID, 12.50, 0),
		}, nil)

		_, err := service.AddItem(ctx, uuid.New(), AddItemRequest{ProductID: productID, Quantity: 1})
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
	})
}

func TestCartService_MergeCarts(t *testing.T) {
	ctx := context.Background()
	sharedProduct := uuid.New()
	accountOnly := uuid.New()
	anonymousOnly := uuid.New()

	setupCarts := func(t *testing.T, repo *MockCartRepository) (uuid.UUID, uuid.UUID, *cart.Cart, *cart.Cart) {
		accountCustomer := uuid.New()
		anonymousCustomer := uuid.New()
		accountCart := cartWith(t, accountCustomer, map[uuid.UUID]int{sharedProduct: 2, accountOnly: 1})
		anonymousCart := cartWith(t, anonymousCustomer, map[uuid.UUID]int{sharedProduct: 3, anonymousOnly: 4})
		repo.On("FindByCustomer", ctx, accountCustomer).Return(accountCart, nil)
		repo.On("FindByCustomer", ctx, anonymousCustomer).Return(anonymousCart, nil)
		return accountCustomer, anonymousCustomer, accountCart, anonymousCart
	}

	t.Run("MERGE_BOTH unions carts and sums shared quantities", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewCartService(repo, new(MockArticleResolver))

		accountCustomer, anonymousCustomer, accountCart, anonymousCart := setupCarts(t, repo)
		repo.On("Save", ctx, accountCart).Return(nil)
		repo.On("Delete", ctx, anonymousCart.ID).Return(nil)

		resp, err := service.MergeCarts(ctx, accountCustomer, MergeCartsRequest{
			AnonymousCustomerID: anonymousCustomer,
			Strategy:            cart.MergeStrategyBoth,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, resp.ItemCount)
		assert.Equal(t, 5, accountCart.GetItemByProduct(sharedProduct).Quantity)
		assert.NotNil(t, accountCart.GetItemByProduct(accountOnly))
		assert.NotNil(t, accountCart.GetItemByProduct(anonymousOnly))
		repo.AssertCalled(t, "Delete", ctx, anonymousCart.ID)
	})

	t.Run("USE_ACCOUNT_CART keeps account items and discards anonymous cart", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewCartService(repo, new(MockArticleResolver))

		accountCustomer, anonymousCustomer, accountCart, anonymousCart := setupCarts(t, repo)
		repo.On("Save", ctx, accountCart).Return(nil)
		repo.On("Delete", ctx, anonymousCart.ID).Return(nil)

		resp, err := service.MergeCarts(ctx, accountCustomer, MergeCartsRequest{
			AnonymousCustomerID: anonymousCustomer,
			Strategy:            cart.MergeStrategyUseAccountCart,
		})
		require.NoError(t, err)

		assert.Equal(t, 2, resp.ItemCount)
		assert.Equal(t, 2, accountCart.GetItemByProduct(sharedProduct).Quantity)
		assert.Nil(t, accountCart.GetItemByProduct(anonymousOnly))
		repo.AssertCalled(t, "Delete", ctx, anonymousCart.ID)
	})

	t.Run("USE_ANONYMOUS_CART replaces account items", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewCartService(repo, new(MockArticleResolver))

		accountCustomer, anonymousCustomer, accountCart, anonymousCart := setupCarts(t, repo)
		repo.On("Save", ctx, accountCart).Return(nil)
		repo.On("Delete", ctx, anonymousCart.ID).Return(nil)

		resp, err := service.MergeCarts(ctx, accountCustomer, MergeCartsRequest{
			AnonymousCustomerID: anonymousCustomer,
			Strategy:            cart.MergeStrategyUseAnonymousCart,
		})
		require.NoError(t, err)

		assert.Equal(t, 2, resp.ItemCount)
		assert.Equal(t, 3, accountCart.GetItemByProduct(sharedProduct).Quantity)
		assert.Nil(t, accountCart.GetItemByProduct(accountOnly))
	})

	t.Run("missing anonymous cart is treated as empty", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewCartService(repo, new(MockArticleResolver))

		accountCustomer := uuid.New()
		anonymousCustomer := uuid.New()
		accountCart := cartWith(t, accountCustomer, map[uuid.UUID]int{accountOnly: 1})
		repo.On("FindByCustomer", ctx, accountCustomer).Return(accountCart, nil)
		repo.On("FindByCustomer", ctx, anonymousCustomer).Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, accountCart).Return(nil)

		resp, err := service.MergeCarts(ctx, accountCustomer, MergeCartsRequest{
			AnonymousCustomerID: anonymousCustomer,
			Strategy:            cart.MergeStrategyBoth,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.ItemCount)
		repo.AssertNotCalled(t, "Delete", ctx, mock.Anything)
	})

	t.Run("same customer on both sides is a no-op", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewCartService(repo, new(MockArticleResolver))

		customerID := uuid.New()
		c := cartWith(t, customerID, map[uuid.UUID]int{accountOnly: 1})
		repo.On("FindByCustomer", ctx, customerID).Return(c, nil)

		resp, err := service.MergeCarts(ctx, customerID, MergeCartsRequest{
			AnonymousCustomerID: customerID,
			Strategy:            cart.MergeStrategyBoth,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.ItemCount)
		repo.AssertNotCalled(t, "Save", ctx, mock.Anything)
		repo.AssertNotCalled(t, "Delete", ctx, mock.Anything)
	})

	t.Run("rejects unknown strategy", func(t *testing.T) {
		service := NewCartService(new(MockCartRepository), new(MockArticleResolver))

		_, err := service.MergeCarts(ctx, uuid.New(), MergeCartsRequest{
			AnonymousCustomerID: uuid.New(),
			Strategy:            cart.MergeStrategy("KEEP_LARGER"),
		})
		require.Error(t, err)
	})

	t.Run("publishes CartsMerged event", func(t *testing.T) {
		repo := new(MockCartRepository)
		publisher := new(MockEventPublisher)
		service := NewCartService(repo, new(MockArticleResolver))
		service.SetEventPublisher(publisher)

		accountCustomer, anonymousCustomer, accountCart, anonymousCart := setupCarts(t, repo)
		repo.On("Save", ctx, accountCart).Return(nil)
		repo.On("Delete", ctx, anonymousCart.ID).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		_, err := service.MergeCarts(ctx, accountCustomer, MergeCartsRequest{
			AnonymousCustomerID: anonymousCustomer,
			Strategy:            cart.MergeStrategyBoth,
		})
		require.NoError(t, err)

		publisher.AssertCalled(t, "Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			for _, e := range events {
				if e.EventType() == cart.EventTypeCartsMerged {
					return true
				}
			}
			return false
		}))
	})
}
