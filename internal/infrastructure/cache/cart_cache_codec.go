package cache

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// encodeCart converts a domain cart into its cached form
func encodeCart(c *cart.Cart) cachedCart {
	snapshot := cachedCart{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		Version:    c.Version,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Items:      make([]cachedCartItem, len(c.Items)),
	}

	for i, item := range c.Items {
		snapshot.Items[i] = cachedCartItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.String(),
			Quantity:    item.Quantity,
			ImageRef:    item.ImageRef,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}
	}

	return snapshot
}

// decodeCart converts a cached snapshot back into a domain cart
func decodeCart(snapshot cachedCart) (*cart.Cart, error) {
	c := &cart.Cart{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        snapshot.ID,
				CreatedAt: snapshot.CreatedAt,
				UpdatedAt: snapshot.UpdatedAt,
			},
			Version: snapshot.Version,
		},
		CustomerID: snapshot.CustomerID,
		Items:      make([]cart.CartItem, len(snapshot.Items)),
	}

	for i, item := range snapshot.Items {
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("decode cached unit price %q: %w", item.UnitPrice, err)
		}
		c.Items[i] = cart.CartItem{
			ID:          item.ID,
			CartID:      snapshot.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   price,
			Quantity:    item.Quantity,
			ImageRef:    item.ImageRef,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}
	}

	return c, nil
}
