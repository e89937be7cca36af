package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout/acl"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartService handles cart business operations, including the reconciliation
// of anonymous and account carts at login
type CartService struct {
	cartRepo       cart.CartRepository
	articles       acl.ArticleResolver
	eventPublisher shared.EventPublisher
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, articles acl.ArticleResolver) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		articles: articles,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CartService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetCart returns the customer's cart enriched with fresh article data.
// A customer without a cart gets an empty view, not an error.
func (s *CartService) GetCart(ctx context.Context, customerID uuid.UUID) (*CartResponse, error) {
	c, err := s.findOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.enrichedResponse(ctx, c)
}

// AddItem adds a product to the customer's cart, creating the cart on first
// use. The article is resolved first so the line snapshots the current name,
// price, and image.
func (s *CartService) AddItem(ctx context.Context, customerID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	articles, err := s.articles.Resolve(ctx, []uuid.UUID{req.ProductID})
	if err != nil {
		return nil, err
	}
	article, ok := articles[req.ProductID]
	if !ok {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product is not listed")
	}
	if !article.Available {
		return nil, shared.ErrInsufficientStock
	}

	c, err := s.findOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := c.AddItem(article.ProductID, article.Name, article.PriceMoney(), req.Quantity, article.ImageRef); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.enrichedResponse(ctx, c)
}

// UpdateItemQuantity changes the quantity of an existing cart line
func (s *CartService) UpdateItemQuantity(ctx context.Context, customerID, productID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateItemQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.enrichedResponse(ctx, c)
}

// RemoveItem removes a product from the customer's cart
func (s *CartService) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.enrichedResponse(ctx, c)
}

// ClearCart empties the customer's cart after a completed checkout
func (s *CartService) ClearCart(ctx context.Context, customerID uuid.UUID) error {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	c.Clear()
	return s.cartRepo.Save(ctx, c)
}

// MergeCarts reconciles the anonymous cart into the account cart using the
// chosen strategy. The anonymous cart is deleted afterwards; a missing
// anonymous cart is treated as an empty one, so the merge still runs and the
// strategy is still honored.
func (s *CartService) MergeCarts(ctx context.Context, accountCustomerID uuid.UUID, req MergeCartsRequest) (*MergeCartsResponse, error) {
	if !req.Strategy.IsValid() {
		return nil, shared.NewDomainError("INVALID_STRATEGY", "Unknown cart merge strategy")
	}
	if accountCustomerID == req.AnonymousCustomerID {
		// Same identity on both sides, nothing to reconcile
		c, err := s.findOrCreateCart(ctx, accountCustomerID)
		if err != nil {
			return nil, err
		}
		return &MergeCartsResponse{CartID: c.ID, Strategy: req.Strategy, ItemCount: c.ItemCount()}, nil
	}

	accountCart, err := s.findOrCreateCart(ctx, accountCustomerID)
	if err != nil {
		return nil, err
	}

	anonymousCart, err := s.cartRepo.FindByCustomer(ctx, req.AnonymousCustomerID)
	anonymousExists := true
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		anonymousExists = false
		anonymousCart, err = cart.NewCart(req.AnonymousCustomerID)
		if err != nil {
			return nil, err
		}
	}

	switch req.Strategy {
	case cart.MergeStrategyBoth:
		accountCart.MergeFrom(anonymousCart)
	case cart.MergeStrategyUseAccountCart:
		// keep the account cart untouched
	case cart.MergeStrategyUseAnonymousCart:
		accountCart.ReplaceItems(anonymousCart)
	}

	accountCart.AddDomainEvent(cart.NewCartsMergedEvent(accountCart, req.AnonymousCustomerID, req.Strategy))

	if err := s.cartRepo.Save(ctx, accountCart); err != nil {
		return nil, err
	}
	if anonymousExists {
		if err := s.cartRepo.Delete(ctx, anonymousCart.ID); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, accountCart)

	return &MergeCartsResponse{
		CartID:    accountCart.ID,
		Strategy:  req.Strategy,
		ItemCount: accountCart.ItemCount(),
	}, nil
}

// findOrCreateCart loads the customer's cart, substituting an unsaved fresh
// cart when none exists. Callers persist it only when they mutate it.
func (s *CartService) findOrCreateCart(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return cart.NewCart(customerID)
}

// enrichedResponse joins the cart with fresh article data into a view
func (s *CartService) enrichedResponse(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	articles, err := s.articles.Resolve(ctx, productIDs(c))
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(c, articles)
	return &response, nil
}

// publishEvents publishes and clears the aggregate's pending domain events
func (s *CartService) publishEvents(ctx context.Context, c *cart.Cart) {
	if s.eventPublisher == nil {
		return
	}
	events := c.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// event delivery failures never fail the business operation
	_ = s.eventPublisher.Publish(ctx, events...)
	c.ClearDomainEvents()
}

func productIDs(c *cart.Cart) []uuid.UUID {
	ids := make([]uuid.UUID, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.ProductID
	}
	return ids
}
