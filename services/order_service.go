package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/karmic/meals-api/models"
	"github.com/karmic/meals-api/repositories"
	"github.com/rs/zerolog/log"
)

// OrderItemInput is one requested line of an order. A nil Quantity means 1.
type OrderItemInput struct {
	FoodItemID uint
	Quantity   *int
}

// PlaceOrderInput is the data submitted to place an order
type PlaceOrderInput struct {
	EmployeeName string
	Day          string
	Items        []OrderItemInput
}

// OrderService places orders and aggregates ordered quantities
type OrderService struct {
	orders repositories.OrderRepositoryInterface
}

// NewOrderService creates a new OrderService
func NewOrderService(orders repositories.OrderRepositoryInterface) *OrderService {
	return &OrderService{orders: orders}
}

// PlaceOrder creates the order and all its items atomically. Either every row
// is written or none is.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	order := &models.Order{
		EmployeeName: strings.TrimSpace(in.EmployeeName),
		Day:          strings.TrimSpace(in.Day),
	}

	verr := &ValidationError{}
	checkLength(verr, "employee_name", order.EmployeeName, 100)
	checkLength(verr, "day", order.Day, 20)
	if len(in.Items) == 0 {
		verr.Add("items", "An order must contain at least one item.")
	}

	for i, item := range in.Items {
		quantity := 1
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		if item.FoodItemID == 0 {
			verr.Add(itemField(i, "food_item"), "This field is required.")
		}
		if quantity < 1 {
			verr.Add(itemField(i, "quantity"), "Ensure this value is greater than or equal to 1.")
		}
		order.Items = append(order.Items, models.OrderItem{
			FoodItemID: item.FoodItemID,
			Quantity:   quantity,
		})
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		var missing *repositories.MissingFoodItemsError
		if errors.As(err, &missing) {
			return nil, missingFoodItemsError(in.Items, missing.IDs)
		}
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	log.Info().
		Uint("order_id", order.ID).
		Str("day", order.Day).
		Int("items", len(order.Items)).
		Msg("Order placed")
	return order, nil
}

// GetOrder returns a placed order with its items and their food item names
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Resource: "order", ID: id}
		}
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return order, nil
}

// AggregateByItem returns the total quantity ordered for every food item;
// items that were never ordered have a total of 0.
func (s *OrderService) AggregateByItem(ctx context.Context) ([]models.DashboardRow, error) {
	rows, err := s.orders.AggregateByFoodItem(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}
	return rows, nil
}

func missingFoodItemsError(items []OrderItemInput, ids []uint) *ValidationError {
	missing := make(map[uint]bool, len(ids))
	for _, id := range ids {
		missing[id] = true
	}

	verr := &ValidationError{}
	for i, item := range items {
		if missing[item.FoodItemID] {
			verr.Add(itemField(i, "food_item"),
				fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", item.FoodItemID))
		}
	}
	return verr
}

func itemField(index int, field string) string {
	return fmt.Sprintf("items[%d].%s", index, field)
}
