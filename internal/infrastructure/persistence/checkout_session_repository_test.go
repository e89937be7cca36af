package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCheckoutTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.CheckoutSessionModel{}, &models.CheckoutLineItemModel{})
	require.NoError(t, err)

	return db
}

func newStoredSession(t *testing.T) *checkout.CheckoutSession {
	t.Helper()

	session, err := checkout.NewCheckoutSession(uuid.New(), uuid.New(), []checkout.ItemSnapshot{
		{
			ProductID:   uuid.New(),
			ProductName: "Walnut Desk Organizer",
			UnitPrice:   valueobject.NewMoneyUSDFromFloat(49.90),
			Quantity:    2,
			ImageRef:    "img/organizer.jpg",
		},
		{
			ProductID:   uuid.New(),
			ProductName: "Brass Bookend",
			UnitPrice:   valueobject.NewMoneyUSDFromFloat(19.00),
			Quantity:    1,
			ImageRef:    "img/bookend.jpg",
		},
	})
	require.NoError(t, err)
	session.ClearDomainEvents()

	return session
}

func TestCheckoutSessionRepository_SaveAndFind(t *testing.T) {
	db := setupCheckoutTestDB(t)
	repo := NewGormCheckoutSessionRepository(db)
	ctx := context.Background()

	t.Run("round trips a fresh session", func(t *testing.T) {
		session := newStoredSession(t)

		require.NoError(t, repo.Save(ctx, session))

		found, err := repo.FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, found.ID)
		assert.Equal(t, session.CartID, found.CartID)
		assert.Equal(t, session.CustomerID, found.CustomerID)
		assert.Equal(t, checkout.StepBuyerInfo, found.CurrentStep)
		assert.Equal(t, checkout.StatusActive, found.Status)
		assert.Len(t, found.Items, 2)
		assert.True(t, found.Subtotal.Equal(decimal.NewFromFloat(118.80)))
		assert.Nil(t, found.Buyer)
		assert.Nil(t, found.DeliveryAddress)
	})

	t.Run("round trips submitted step data", func(t *testing.T) {
		session := newStoredSession(t)

		buyer, err := checkout.NewBuyerInfo("Ada", "Byrne", "ada@example.com", "+35312345678")
		require.NoError(t, err)
		require.NoError(t, session.SubmitBuyerInfo(buyer))

		address, err := valueobject.NewAddress("12 Quay St", "Galway", "H91 XY12", "IE",
			valueobject.WithLine2("Apt 4"))
		require.NoError(t, err)
		shipping, err := checkout.NewShippingOption("express", "Express delivery", valueobject.NewMoneyUSDFromFloat(12.95))
		require.NoError(t, err)
		require.NoError(t, session.SubmitDelivery(address, shipping))

		payment, err := checkout.NewPaymentSelection(checkout.PaymentMethodCard, "tok_visa")
		require.NoError(t, err)
		require.NoError(t, session.SubmitPayment(payment))

		require.NoError(t, repo.Save(ctx, session))

		found, err := repo.FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, checkout.StepReview, found.CurrentStep)
		require.NotNil(t, found.Buyer)
		assert.Equal(t, "Ada Byrne", found.Buyer.FullName())
		require.NotNil(t, found.DeliveryAddress)
		assert.Equal(t, "12 Quay St", found.DeliveryAddress.Line1())
		assert.Equal(t, "Apt 4", found.DeliveryAddress.Line2())
		require.NotNil(t, found.Shipping)
		assert.Equal(t, "express", found.Shipping.Code)
		require.NotNil(t, found.Payment)
		assert.Equal(t, checkout.PaymentMethodCard, found.Payment.Method)
		assert.True(t, found.Total.Equal(decimal.NewFromFloat(131.75)))
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestCheckoutSessionRepository_FindActiveByCustomer(t *testing.T) {
	db := setupCheckoutTestDB(t)
	repo := NewGormCheckoutSessionRepository(db)
	ctx := context.Background()

	t.Run("finds the active session", func(t *testing.T) {
		session := newStoredSession(t)
		require.NoError(t, repo.Save(ctx, session))

		found, err := repo.FindActiveByCustomer(ctx, session.CustomerID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, found.ID)
	})

	t.Run("ignores terminal sessions", func(t *testing.T) {
		session := newStoredSession(t)
		require.NoError(t, session.Abandon())
		session.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, session))

		_, err := repo.FindActiveByCustomer(ctx, session.CustomerID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestCheckoutSessionRepository_FindLatestByCustomer(t *testing.T) {
	db := setupCheckoutTestDB(t)
	repo := NewGormCheckoutSessionRepository(db)
	ctx := context.Background()

	t.Run("returns the most recent session regardless of status", func(t *testing.T) {
		customerID := uuid.New()

		older := newStoredSession(t)
		older.CustomerID = customerID
		older.CreatedAt = time.Now().Add(-time.Hour)
		require.NoError(t, older.Abandon())
		older.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, older))

		newer := newStoredSession(t)
		newer.CustomerID = customerID
		require.NoError(t, repo.Save(ctx, newer))

		found, err := repo.FindLatestByCustomer(ctx, customerID)
		require.NoError(t, err)
		assert.Equal(t, newer.ID, found.ID)
	})

	t.Run("returns not found for an unknown customer", func(t *testing.T) {
		_, err := repo.FindLatestByCustomer(ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestCheckoutSessionRepository_FindStaleActive(t *testing.T) {
	db := setupCheckoutTestDB(t)
	repo := NewGormCheckoutSessionRepository(db)
	ctx := context.Background()

	stale := newStoredSession(t)
	stale.UpdatedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, repo.Save(ctx, stale))

	fresh := newStoredSession(t)
	require.NoError(t, repo.Save(ctx, fresh))

	abandoned := newStoredSession(t)
	require.NoError(t, abandoned.Abandon())
	abandoned.UpdatedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, repo.Save(ctx, abandoned))

	found, err := repo.FindStaleActive(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, stale.ID, found[0].ID)
}

func TestCheckoutSessionRepository_SaveWithLock(t *testing.T) {
	db := setupCheckoutTestDB(t)
	repo := NewGormCheckoutSessionRepository(db)
	ctx := context.Background()

	t.Run("increments the version on success", func(t *testing.T) {
		session := newStoredSession(t)
		require.NoError(t, repo.Save(ctx, session))

		buyer, err := checkout.NewBuyerInfo("Ada", "Byrne", "ada@example.com", "")
		require.NoError(t, err)
		require.NoError(t, session.SubmitBuyerInfo(buyer))

		require.NoError(t, repo.SaveWithLock(ctx, session))
		assert.Equal(t, 2, session.Version)

		found, err := repo.FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.Version)
		assert.Equal(t, checkout.StepDelivery, found.CurrentStep)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		session := newStoredSession(t)
		require.NoError(t, repo.Save(ctx, session))

		// Another writer moves the stored row ahead.
		other, err := repo.FindByID(ctx, session.ID)
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, other))

		err = repo.SaveWithLock(ctx, session)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
	})
}
