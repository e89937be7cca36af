package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/checkout/acl"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// shippingOptions is the fixed set of delivery methods offered at checkout
var shippingOptions = map[string]struct {
	name string
	cost float64
}{
	"standard": {"Standard Shipping", 4.95},
	"express":  {"Express Shipping", 12.95},
	"pickup":   {"Store Pickup", 0},
}

// CheckoutService orchestrates the multi-step checkout flow
type CheckoutService struct {
	sessionRepo    checkout.CheckoutSessionRepository
	cartRepo       cart.CartRepository
	articles       acl.ArticleResolver
	eventPublisher shared.EventPublisher
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	sessionRepo checkout.CheckoutSessionRepository,
	cartRepo cart.CartRepository,
	articles acl.ArticleResolver,
) *CheckoutService {
	return &CheckoutService{
		sessionRepo: sessionRepo,
		cartRepo:    cartRepo,
		articles:    articles,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// StartCheckout starts a checkout session from the customer's cart. If the
// customer already has an active session it is returned unchanged, so
// repeated starts are harmless. Cart lines are frozen into the session with
// the price captured when they were added.
func (s *CheckoutService) StartCheckout(ctx context.Context, customerID uuid.UUID) (*SessionResponse, error) {
	existing, err := s.sessionRepo.FindActiveByCustomer(ctx, customerID)
	if err == nil {
		response := ToSessionResponse(existing)
		return &response, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("EMPTY_CART", "Cannot start checkout from an empty cart")
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot start checkout from an empty cart")
	}

	// every line must still resolve to a listed, in-stock article
	articles, err := s.articles.Resolve(ctx, cartProductIDs(c))
	if err != nil {
		return nil, err
	}

	snapshots := make([]checkout.ItemSnapshot, 0, len(c.Items))
	for _, item := range c.Items {
		article, ok := articles[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_AVAILABLE",
				fmt.Sprintf("Product %s is no longer listed", item.ProductName))
		}
		if article.Stock < item.Quantity {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Not enough stock for %s", item.ProductName))
		}
		snapshots = append(snapshots, checkout.ItemSnapshot{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   valueobject.NewMoneyUSD(item.UnitPrice),
			Quantity:    item.Quantity,
			ImageRef:    item.ImageRef,
		})
	}

	session, err := checkout.NewCheckoutSession(c.ID, customerID, snapshots)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, session)

	response := ToSessionResponse(session)
	return &response, nil
}

// GetSession retrieves a checkout session by ID
func (s *CheckoutService) GetSession(ctx context.Context, sessionID uuid.UUID) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	response := ToSessionResponse(session)
	return &response, nil
}

// CheckStepAccess reports whether the customer may enter the requested step.
// The decision is made against the customer's most recent session, so a just
// confirmed session still grants the confirmation view; a customer without
// any session is redirected to the cart, matching direct navigation to a
// checkout URL without an ongoing checkout.
func (s *CheckoutService) CheckStepAccess(ctx context.Context, customerID uuid.UUID, step checkout.CheckoutStep) (*StepAccessResponse, error) {
	if !step.IsValid() {
		return nil, shared.NewDomainError("INVALID_STEP", "Unknown checkout step")
	}

	session, err := s.sessionRepo.FindLatestByCustomer(ctx, customerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	redirect := checkout.ValidateStepAccess(session, step)
	resp := &StepAccessResponse{Step: step, Allowed: redirect == nil}
	if redirect != nil {
		resp.RedirectPath = redirect.Path
	}
	return resp, nil
}

// SubmitBuyerInfo submits the buyer contact form for the session
func (s *CheckoutService) SubmitBuyerInfo(ctx context.Context, sessionID uuid.UUID, req SubmitBuyerInfoRequest) (*SessionResponse, error) {
	return s.mutate(ctx, sessionID, func(session *checkout.CheckoutSession) error {
		info, err := checkout.NewBuyerInfo(req.FirstName, req.LastName, req.Email, req.Phone)
		if err != nil {
			return err
		}
		return session.SubmitBuyerInfo(info)
	})
}

// SubmitDelivery submits the delivery address and shipping selection
func (s *CheckoutService) SubmitDelivery(ctx context.Context, sessionID uuid.UUID, req SubmitDeliveryRequest) (*SessionResponse, error) {
	option, ok := shippingOptions[strings.ToLower(req.ShippingCode)]
	if !ok {
		return nil, shared.NewDomainError("INVALID_SHIPPING_OPTION", "Unknown shipping option")
	}

	return s.mutate(ctx, sessionID, func(session *checkout.CheckoutSession) error {
		address, err := valueobject.NewAddress(req.AddressLine1, req.City, req.PostalCode, req.Country,
			valueobject.WithLine2(req.AddressLine2), valueobject.WithRegion(req.Region))
		if err != nil {
			return err
		}
		shipping, err := checkout.NewShippingOption(strings.ToLower(req.ShippingCode), option.name,
			valueobject.NewMoneyUSDFromFloat(option.cost))
		if err != nil {
			return err
		}
		return session.SubmitDelivery(address, shipping)
	})
}

// SubmitPayment submits the payment selection
func (s *CheckoutService) SubmitPayment(ctx context.Context, sessionID uuid.UUID, req SubmitPaymentRequest) (*SessionResponse, error) {
	return s.mutate(ctx, sessionID, func(session *checkout.CheckoutSession) error {
		selection, err := checkout.NewPaymentSelection(req.Method, req.Reference)
		if err != nil {
			return err
		}
		return session.SubmitPayment(selection)
	})
}

// ConfirmCheckout confirms the session from the review step. Articles are
// re-resolved first: a delisted product, a changed price, or a stock
// shortfall rejects the confirmation and the session stays active on review.
func (s *CheckoutService) ConfirmCheckout(ctx context.Context, sessionID uuid.UUID) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	articles, err := s.articles.Resolve(ctx, session.ProductIDs())
	if err != nil {
		return nil, err
	}
	for _, item := range session.Items {
		article, ok := articles[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_AVAILABLE",
				fmt.Sprintf("Product %s is no longer listed", item.ProductName))
		}
		if !article.Price.Equal(item.UnitPrice) {
			return nil, shared.NewDomainError("PRICE_CHANGED",
				fmt.Sprintf("Price of %s changed from %s to %s", item.ProductName, item.UnitPrice, article.Price))
		}
		if article.Stock < item.Quantity {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Not enough stock for %s", item.ProductName))
		}
	}

	if err := session.Confirm(); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.SaveWithLock(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, session)

	response := ToSessionResponse(session)
	return &response, nil
}

// CompleteCheckout finalizes a confirmed session with a generated order
// reference. Called after the stock reduction triggered by the confirmation
// has been processed.
func (s *CheckoutService) CompleteCheckout(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := session.Complete(generateOrderReference()); err != nil {
		return err
	}
	if err := s.sessionRepo.SaveWithLock(ctx, session); err != nil {
		return err
	}

	s.publishEvents(ctx, session)
	return nil
}

// AbandonCheckout abandons an active session
func (s *CheckoutService) AbandonCheckout(ctx context.Context, sessionID uuid.UUID) (*SessionResponse, error) {
	return s.mutate(ctx, sessionID, func(session *checkout.CheckoutSession) error {
		return session.Abandon()
	})
}

// ExpireStaleSessions expires active sessions that have not been touched for
// the given duration. Driven externally (scheduler or admin call), never by
// session reads.
func (s *CheckoutService) ExpireStaleSessions(ctx context.Context, olderThan time.Duration) (*ExpireStaleResponse, error) {
	cutoff := time.Now().Add(-olderThan)
	stale, err := s.sessionRepo.FindStaleActive(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	expired := 0
	for i := range stale {
		session := &stale[i]
		if err := session.Expire(); err != nil {
			continue
		}
		if err := s.sessionRepo.Save(ctx, session); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, session)
		expired++
	}

	return &ExpireStaleResponse{ExpiredCount: expired}, nil
}

// mutate loads a session, applies the operation, and saves it
func (s *CheckoutService) mutate(ctx context.Context, sessionID uuid.UUID, op func(*checkout.CheckoutSession) error) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := op(session); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, session)

	response := ToSessionResponse(session)
	return &response, nil
}

// publishEvents publishes and clears the aggregate's pending domain events
func (s *CheckoutService) publishEvents(ctx context.Context, session *checkout.CheckoutSession) {
	if s.eventPublisher == nil {
		return
	}
	events := session.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	session.ClearDomainEvents()
}

// generateOrderReference builds a human-readable order reference
func generateOrderReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

func cartProductIDs(c *cart.Cart) []uuid.UUID {
	ids := make([]uuid.UUID, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.ProductID
	}
	return ids
}
