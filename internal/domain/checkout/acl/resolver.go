package acl

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CompositeArticleResolver joins the three upstream read models into article
// snapshots. The fan-out is logically independent per source; the resolver
// runs it as one synchronous, blocking query returning a complete map.
type CompositeArticleResolver struct {
	catalog CatalogSource
	pricing PricingSource
	stock   StockSource
}

// NewCompositeArticleResolver creates a new CompositeArticleResolver
func NewCompositeArticleResolver(catalog CatalogSource, pricing PricingSource, stock StockSource) *CompositeArticleResolver {
	return &CompositeArticleResolver{
		catalog: catalog,
		pricing: pricing,
		stock:   stock,
	}
}

// Resolve fetches fresh name/price/stock data for the given products and
// joins them by product id.
//
// Absence policy per source:
//   - no identity record: product omitted from the result
//   - identity without price: the whole resolution fails (PRICE_UNAVAILABLE)
//   - no stock record: stock 0, unavailable, no error
func (r *CompositeArticleResolver) Resolve(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]ArticleSnapshot, error) {
	result := make(map[uuid.UUID]ArticleSnapshot, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	products, err := r.catalog.FindProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}
	if len(products) == 0 {
		return result, nil
	}

	identified := make([]uuid.UUID, 0, len(products))
	for id := range products {
		identified = append(identified, id)
	}

	prices, err := r.pricing.FindPrices(ctx, identified)
	if err != nil {
		return nil, fmt.Errorf("pricing lookup failed: %w", err)
	}

	stocks, err := r.stock.FindStockLevels(ctx, identified)
	if err != nil {
		return nil, fmt.Errorf("stock lookup failed: %w", err)
	}

	for id, product := range products {
		price, ok := prices[id]
		if !ok {
			// A line item cannot be rendered without a price: the whole
			// call fails rather than returning a partial result.
			return nil, shared.NewDomainError("PRICE_UNAVAILABLE",
				fmt.Sprintf("No price record for product %s", id))
		}

		stock := stocks[id] // zero value when not provisioned

		result[id] = ArticleSnapshot{
			ProductID: id,
			Name:      product.Name,
			ImageRef:  product.ImageRef,
			Price:     price,
			Stock:     stock,
			Available: stock > 0,
		}
	}

	return result, nil
}

// Ensure CompositeArticleResolver implements ArticleResolver
var _ ArticleResolver = (*CompositeArticleResolver)(nil)
