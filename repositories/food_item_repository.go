package repositories

import (
	"context"
	"fmt"

	"github.com/karmic/meals-api/models"
	"gorm.io/gorm"
)

// FoodItemRepositoryInterface is the storage contract for the catalog
type FoodItemRepositoryInterface interface {
	Create(ctx context.Context, item *models.FoodItem) error
	FindAll(ctx context.Context) ([]models.FoodItem, error)
	FindByID(ctx context.Context, id uint) (*models.FoodItem, error)
	FindByDay(ctx context.Context, day string) ([]models.FoodItem, error)
	Update(ctx context.Context, item *models.FoodItem) error
	Delete(ctx context.Context, id uint) error
}

// FoodItemRepository stores food items with gorm
type FoodItemRepository struct {
	db *gorm.DB
}

// NewFoodItemRepository creates a new FoodItemRepository
func NewFoodItemRepository(db *gorm.DB) *FoodItemRepository {
	return &FoodItemRepository{db: db}
}

func (r *FoodItemRepository) Create(ctx context.Context, item *models.FoodItem) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

// FindAll returns every food item in insertion order
func (r *FoodItemRepository) FindAll(ctx context.Context) ([]models.FoodItem, error) {
	items := []models.FoodItem{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *FoodItemRepository) FindByID(ctx context.Context, id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// FindByDay returns items whose day matches case-insensitively
func (r *FoodItemRepository) FindByDay(ctx context.Context, day string) ([]models.FoodItem, error) {
	items := []models.FoodItem{}
	err := r.db.WithContext(ctx).
		Where("LOWER(day) = LOWER(?)", day).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Update saves all fields of an existing item
func (r *FoodItemRepository) Update(ctx context.Context, item *models.FoodItem) error {
	return translate(r.db.WithContext(ctx).Save(item).Error)
}

// Delete removes a food item and every order item referencing it in one
// transaction. It returns ErrNotFound when the item does not exist.
func (r *FoodItemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.FoodItem
		if err := tx.First(&item, id).Error; err != nil {
			return translate(err)
		}

		if err := tx.Where("food_item_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}

		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to delete food item: %w", err)
		}
		return nil
	})
}
