package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karmic/meals-api/models"
	"github.com/karmic/meals-api/services"
)

// OrderService is what the order endpoints need from the order service
type OrderService interface {
	PlaceOrder(ctx context.Context, in services.PlaceOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
}

// OrderItemRequest is one line of an order; quantity defaults to 1
type OrderItemRequest struct {
	FoodItem uint `json:"food_item" binding:"required"`
	Quantity *int `json:"quantity" binding:"omitempty,gt=0"`
}

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	EmployeeName string             `json:"employee_name" binding:"required"`
	Day          string             `json:"day" binding:"required"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderController handles order placement
type OrderController struct {
	orders OrderService
}

// NewOrderController creates a new OrderController
func NewOrderController(orders OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// PlaceOrder handles POST /api/v1/order/add
func (ctl *OrderController) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := services.PlaceOrderInput{
		EmployeeName: req.EmployeeName,
		Day:          req.Day,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, services.OrderItemInput{
			FoodItemID: item.FoodItem,
			Quantity:   item.Quantity,
		})
	}

	order, err := ctl.orders.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to place order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully",
		"data":    order,
	})
}

// GetOrder handles GET /api/v1/order/:id
func (ctl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctl.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
