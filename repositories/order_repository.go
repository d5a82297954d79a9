package repositories

import (
	"context"
	"fmt"

	"github.com/karmic/meals-api/models"
	"gorm.io/gorm"
)

// OrderRepositoryInterface is the storage contract for orders
type OrderRepositoryInterface interface {
	CreateWithItems(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	AggregateByFoodItem(ctx context.Context) ([]models.DashboardRow, error)
}

// OrderRepository stores orders and their items with gorm
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithItems inserts the order and all of its items in one transaction.
// If any item references a food item that does not exist, nothing is written
// and a *MissingFoodItemsError is returned.
func (r *OrderRepository) CreateWithItems(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := distinctFoodItemIDs(order.Items)

		var found []uint
		if err := tx.Model(&models.FoodItem{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
			return fmt.Errorf("failed to look up food items: %w", err)
		}
		if missing := difference(ids, found); len(missing) > 0 {
			return &MissingFoodItemsError{IDs: missing}
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		var created models.Order
		if err := tx.Preload("Items.FoodItem").First(&created, order.ID).Error; err != nil {
			return fmt.Errorf("failed to load order: %w", err)
		}
		fillFoodItemNames(&created)
		*order = created
		return nil
	})
}

// FindByID returns an order with its items and their food item names
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items.FoodItem").First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	fillFoodItemNames(&order)
	return &order, nil
}

// AggregateByFoodItem sums ordered quantities for every food item, including
// items that were never ordered (total 0).
func (r *OrderRepository) AggregateByFoodItem(ctx context.Context) ([]models.DashboardRow, error) {
	rows := []models.DashboardRow{}
	err := r.db.WithContext(ctx).
		Table("food_items AS f").
		Select("f.id AS food_item_id, f.name AS food_item, f.day AS day, f.session AS session, " +
			"COALESCE(SUM(oi.quantity), 0) AS total_ordered").
		Joins("LEFT JOIN order_items AS oi ON oi.food_item_id = f.id").
		Group("f.id, f.name, f.day, f.session").
		Order("f.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func fillFoodItemNames(order *models.Order) {
	for i := range order.Items {
		order.Items[i].FoodItemName = order.Items[i].FoodItem.Name
	}
}

func distinctFoodItemIDs(items []models.OrderItem) []uint {
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if !seen[item.FoodItemID] {
			seen[item.FoodItemID] = true
			ids = append(ids, item.FoodItemID)
		}
	}
	return ids
}

// difference returns the ids in want that are absent from have, keeping want's order
func difference(want, have []uint) []uint {
	present := make(map[uint]bool, len(have))
	for _, id := range have {
		present[id] = true
	}
	var missing []uint
	for _, id := range want {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
