package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karmic/meals-api/models"
	"github.com/karmic/meals-api/services"
	"github.com/shopspring/decimal"
)

// CatalogService is what the food endpoints need from the catalog
type CatalogService interface {
	AddItem(ctx context.Context, in services.FoodItemInput) (*models.FoodItem, error)
	ListItems(ctx context.Context) ([]models.FoodItem, error)
	GetItem(ctx context.Context, id uint) (*models.FoodItem, error)
	EditItem(ctx context.Context, id uint, upd services.FoodItemUpdate) (*models.FoodItem, error)
	DeleteItem(ctx context.Context, id uint) error
	Menu(ctx context.Context, now time.Time) (*services.Menu, error)
}

// FoodItemRequest represents the request body for adding a food item.
// Price accepts a JSON number or string, e.g. 12.5 or "12.50".
type FoodItemRequest struct {
	Name    string           `json:"name" binding:"required"`
	Session string           `json:"session" binding:"required"`
	Day     string           `json:"day" binding:"required"`
	Price   *decimal.Decimal `json:"price" binding:"required"`
}

// UpdateFoodItemRequest represents the request body for editing a food item.
// Omitted fields keep their current value.
type UpdateFoodItemRequest struct {
	Name    *string          `json:"name"`
	Session *string          `json:"session"`
	Day     *string          `json:"day"`
	Price   *decimal.Decimal `json:"price"`
}

// FoodController handles the catalog and menu endpoints
type FoodController struct {
	catalog CatalogService
	clock   func() time.Time
}

// NewFoodController creates a new FoodController. clock defaults to time.Now.
func NewFoodController(catalog CatalogService, clock func() time.Time) *FoodController {
	if clock == nil {
		clock = time.Now
	}
	return &FoodController{catalog: catalog, clock: clock}
}

// AddFoodItem handles POST /api/v1/food/add
func (ctl *FoodController) AddFoodItem(c *gin.Context) {
	var req FoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := ctl.catalog.AddItem(c.Request.Context(), services.FoodItemInput{
		Name:    req.Name,
		Session: req.Session,
		Day:     req.Day,
		Price:   *req.Price,
	})
	if err != nil {
		respondError(c, err, "Failed to add food item")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Food item added successfully!",
		"data":    item,
	})
}

// ListFoodItems handles GET /api/v1/food/list
func (ctl *FoodController) ListFoodItems(c *gin.Context) {
	items, err := ctl.catalog.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch food items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// GetFoodItem handles GET /api/v1/food/:id
func (ctl *FoodController) GetFoodItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := ctl.catalog.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch food item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// EditFoodItem handles PUT /api/v1/food/edit/:id
func (ctl *FoodController) EditFoodItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := ctl.catalog.EditItem(c.Request.Context(), id, services.FoodItemUpdate{
		Name:    req.Name,
		Session: req.Session,
		Day:     req.Day,
		Price:   req.Price,
	})
	if err != nil {
		respondError(c, err, "Failed to update food item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Food item updated successfully",
		"data":    item,
	})
}

// DeleteFoodItem handles DELETE /api/v1/food/delete/:id
func (ctl *FoodController) DeleteFoodItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.catalog.DeleteItem(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete food item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Food item deleted successfully",
	})
}

// Menu handles GET /api/v1/food/menu - today's and tomorrow's items
func (ctl *FoodController) Menu(c *gin.Context) {
	menu, err := ctl.catalog.Menu(c.Request.Context(), ctl.clock())
	if err != nil {
		respondError(c, err, "Failed to fetch menu")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    menu,
	})
}
