package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCartRepository implements cart.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart by its ID
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	var model models.CartModel
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
	return model.ToDomain(), nil
}

// FindByCustomer finds the cart owned by a customer
func (r *GormCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	var model models.CartModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a cart together with its items
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	var model models.CartModel
	model.FromDomain(c)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(&model).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(model.Items))
		for i, item := range model.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("cart_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
				Delete(&models.CartItemModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("cart_id = ?", model.ID).
				Delete(&models.CartItemModel{}).Error; err != nil {
				return err
			}
		}

		for i := range model.Items {
			model.Items[i].CartID = model.ID
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a cart and its items
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).
			Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.CartModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormCartRepository implements the repository interface
var _ cart.CartRepository = (*GormCartRepository)(nil)
