package acl

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ArticleSnapshot is the checkout context's read-through view of one product,
// joined from the three upstream sources. It has no persisted identity; it is
// recomputed on demand and discarded.
type ArticleSnapshot struct {
	ProductID uuid.UUID
	Name      string
	ImageRef  string
	Price     decimal.Decimal
	Stock     int
	Available bool
}

// PriceMoney returns the current price as a Money value object
func (a ArticleSnapshot) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(a.Price)
}

// ProductRecord is the identity source's view of a product
type ProductRecord struct {
	ProductID uuid.UUID
	Name      string
	ImageRef  string
}

// CatalogSource is the keyed lookup into the catalog context's identity data.
// Products unknown to the catalog are absent from the result map.
type CatalogSource interface {
	FindProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]ProductRecord, error)
}

// PricingSource is the keyed lookup into the pricing context.
// Products without a price are absent from the result map.
type PricingSource interface {
	FindPrices(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}

// StockSource is the keyed lookup into the inventory context.
// Products without a stock record are absent from the result map.
type StockSource interface {
	FindStockLevels(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// ArticleResolver resolves fresh article snapshots for a set of products.
// It is an idempotent query capability; implementations must not cache
// results across calls.
type ArticleResolver interface {
	Resolve(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]ArticleSnapshot, error)
}
