package acl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/shared"
)

// Stub sources backed by plain maps
type stubCatalog struct {
	products map[uuid.UUID]ProductRecord
	err      error
}

func (s *stubCatalog) FindProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]ProductRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make(map[uuid.UUID]ProductRecord)
	for _, id := range productIDs {
		if p, ok := s.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

type stubPricing struct {
	prices map[uuid.UUID]decimal.Decimal
	err    error
}

func (s *stubPricing) FindPrices(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make(map[uuid.UUID]decimal.Decimal)
	for _, id := range productIDs {
		if p, ok := s.prices[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

type stubStock struct {
	levels map[uuid.UUID]int
	err    error
}

func (s *stubStock) FindStockLevels(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make(map[uuid.UUID]int)
	for _, id := range productIDs {
		if lvl, ok := s.levels[id]; ok {
			result[id] = lvl
		}
	}
	return result, nil
}

func newTestResolver() (*CompositeArticleResolver, *stubCatalog, *stubPricing, *stubStock) {
	catalog := &stubCatalog{products: make(map[uuid.UUID]ProductRecord)}
	pricing := &stubPricing{prices: make(map[uuid.UUID]decimal.Decimal)}
	stock := &stubStock{levels: make(map[uuid.UUID]int)}
	return NewCompositeArticleResolver(catalog, pricing, stock), catalog, pricing, stock
}

func TestCompositeArticleResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("joins identity price and stock", func(t *testing.T) {
		resolver, catalog, pricing, stock := newTestResolver()
		id := uuid.New()
		catalog.products[id] = ProductRecord{ProductID: id, Name: "Desk Lamp", ImageRef: "img/lamp.png"}
		pricing.prices[id] = decimal.NewFromFloat(24.90)
		stock.levels[id] = 7

		articles, err := resolver.Resolve(ctx, []uuid.UUID{id})
		require.NoError(t, err)
		require.Len(t, articles, 1)

		article := articles[id]
		assert.Equal(t, "Desk Lamp", article.Name)
		assert.Equal(t, "img/lamp.png", article.ImageRef)
		assert.True(t, article.Price.Equal(decimal.NewFromFloat(24.90)))
		assert.Equal(t, 7, article.Stock)
		assert.True(t, article.Available)
	})

	t.Run("empty input returns empty result", func(t *testing.T) {
		resolver, _, _, _ := newTestResolver()
		articles, err := resolver.Resolve(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, articles)
	})

	t.Run("unknown product is omitted without error", func(t *testing.T) {
		resolver, catalog, pricing, stock := newTestResolver()
		known := uuid.New()
		unknown := uuid.New()
		catalog.products[known] = ProductRecord{ProductID: known, Name: "Desk Lamp"}
		pricing.prices[known] = decimal.NewFromFloat(24.90)
		stock.levels[known] = 3

		articles, err := resolver.Resolve(ctx, []uuid.UUID{known, unknown})
		require.NoError(t, err)
		require.Len(t, articles, 1)
		_, ok := articles[unknown]
		assert.False(t, ok)
	})

	t.Run("missing price fails the whole resolution", func(t *testing.T) {
		resolver, catalog, pricing, stock := newTestResolver()
		priced := uuid.New()
		unpriced := uuid.New()
		catalog.products[priced] = ProductRecord{ProductID: priced, Name: "Desk Lamp"}
		catalog.products[unpriced] = ProductRecord{ProductID: unpriced, Name: "Stool"}
		pricing.prices[priced] = decimal.NewFromFloat(24.90)
		stock.levels[priced] = 3
		stock.levels[unpriced] = 3

		articles, err := resolver.Resolve(ctx, []uuid.UUID{priced, unpriced})
		require.Error(t, err)
		assert.Nil(t, articles)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "PRICE_UNAVAILABLE", domainErr.Code)
	})

	t.Run("missing stock record defaults to zero and unavailable", func(t *testing.T) {
		resolver, catalog, pricing, _ := newTestResolver()
		id := uuid.New()
		catalog.products[id] = ProductRecord{ProductID: id, Name: "Desk Lamp"}
		pricing.prices[id] = decimal.NewFromFloat(24.90)

		articles, err := resolver.Resolve(ctx, []uuid.UUID{id})
		require.NoError(t, err)
		article := articles[id]
		assert.Equal(t, 0, article.Stock)
		assert.False(t, article.Available)
	})

	t.Run("zero stock is unavailable", func(t *testing.T) {
		resolver, catalog, pricing, stock := newTestResolver()
		id := uuid.New()
		catalog.products[id] = ProductRecord{ProductID: id, Name: "Desk Lamp"}
		pricing.prices[id] = decimal.NewFromFloat(24.90)
		stock.levels[id] = 0

		articles, err := resolver.Resolve(ctx, []uuid.UUID{id})
		require.NoError(t, err)
		assert.False(t, articles[id].Available)
	})

	t.Run("source failures propagate", func(t *testing.T) {
		resolver, catalog, pricing, stock := newTestResolver()
		id := uuid.New()
		catalog.products[id] = ProductRecord{ProductID: id, Name: "Desk Lamp"}
		pricing.prices[id] = decimal.NewFromFloat(24.90)
		stock.levels[id] = 1

		catalog.err = errors.New("catalog unreachable")
		_, err := resolver.Resolve(ctx, []uuid.UUID{id})
		require.Error(t, err)

		catalog.err = nil
		pricing.err = errors.New("pricing unreachable")
		_, err = resolver.Resolve(ctx, []uuid.UUID{id})
		require.Error(t, err)

		pricing.err = nil
		stock.err = errors.New("inventory unreachable")
		_, err = resolver.Resolve(ctx, []uuid.UUID{id})
		require.Error(t, err)
	})
}
