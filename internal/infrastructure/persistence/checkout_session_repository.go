package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCheckoutSessionRepository implements checkout.CheckoutSessionRepository using GORM
type GormCheckoutSessionRepository struct {
	db *gorm.DB
}

// NewGormCheckoutSessionRepository creates a new GormCheckoutSessionRepository
func NewGormCheckoutSessionRepository(db *gorm.DB) *GormCheckoutSessionRepository {
	return &GormCheckoutSessionRepository{db: db}
}

// FindByID finds a checkout session by its ID
func (r *GormCheckoutSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkout.CheckoutSession, error) {
	var model models.CheckoutSessionModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindActiveByCustomer finds the customer's active session, if any
func (r *GormCheckoutSessionRepository) FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*checkout.CheckoutSession, error) {
	var model models.CheckoutSessionModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ? AND status = ?", customerID, checkout.StatusActive.String()).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindLatestByCustomer finds the customer's most recent session in any status
func (r *GormCheckoutSessionRepository) FindLatestByCustomer(ctx context.Context, customerID uuid.UUID) (*checkout.CheckoutSession, error) {
	var model models.CheckoutSessionModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindStaleActive finds active sessions not updated since the cutoff
func (r *GormCheckoutSessionRepository) FindStaleActive(ctx context.Context, cutoff time.Time) ([]checkout.CheckoutSession, error) {
	var modelList []models.CheckoutSessionModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND updated_at < ?", checkout.StatusActive.String(), cutoff).
		Order("updated_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]checkout.CheckoutSession, 0, len(modelList))
	for i := range modelList {
		s, err := modelList[i].ToDomain()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, nil
}

// Save creates or updates a session together with its line items
func (r *GormCheckoutSessionRepository) Save(ctx context.Context, s *checkout.CheckoutSession) error {
	var model models.CheckoutSessionModel
	if err := model.FromDomain(s); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(&model).Error; err != nil {
			return err
		}
		return saveLineItems(tx, &model)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormCheckoutSessionRepository) SaveWithLock(ctx context.Context, s *checkout.CheckoutSession) error {
	var model models.CheckoutSessionModel
	if err := model.FromDomain(s); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		err := tx.Model(&models.CheckoutSessionModel{}).
			Where("id = ?", model.ID).
			Select("version").
			Scan(&currentVersion).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != model.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The checkout session has been modified by another request")
		}

		model.Version++
		model.UpdatedAt = time.Now()

		result := tx.Model(&models.CheckoutSessionModel{}).
			Where("id = ? AND version = ?", model.ID, currentVersion).
			Updates(map[string]interface{}{
				"current_step":     model.CurrentStep,
				"status":           model.Status,
				"buyer":            model.Buyer,
				"delivery_address": model.DeliveryAddress,
				"shipping":         model.Shipping,
				"payment":          model.Payment,
				"subtotal":         model.Subtotal,
				"shipping_cost":    model.ShippingCost,
				"total":            model.Total,
				"confirmed_at":     model.ConfirmedAt,
				"order_reference":  model.OrderReference,
				"version":          model.Version,
				"updated_at":       model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The checkout session has been modified by another request")
		}

		if err := saveLineItems(tx, &model); err != nil {
			return err
		}

		s.Version = model.Version
		return nil
	})
}

// saveLineItems reconciles the stored line items with the model's current
// ones: removed items are deleted, the rest are upserted
func saveLineItems(tx *gorm.DB, model *models.CheckoutSessionModel) error {
	currentItemIDs := make([]uuid.UUID, len(model.Items))
	for i, item := range model.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("session_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
			Delete(&models.CheckoutLineItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("session_id = ?", model.ID).
			Delete(&models.CheckoutLineItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range model.Items {
		model.Items[i].SessionID = model.ID
		if err := tx.Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// Ensure GormCheckoutSessionRepository implements the repository interface
var _ checkout.CheckoutSessionRepository = (*GormCheckoutSessionRepository)(nil)
