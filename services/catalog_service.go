package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/karmic/meals-api/models"
	"github.com/karmic/meals-api/repositories"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// maxPrice is the first value that no longer fits decimal(6,2)
var maxPrice = decimal.NewFromInt(10000)

// FoodItemInput holds every field of a food item
type FoodItemInput struct {
	Name    string
	Session string
	Day     string
	Price   decimal.Decimal
}

// FoodItemUpdate holds the fields to change; nil fields are left as they are
type FoodItemUpdate struct {
	Name    *string
	Session *string
	Day     *string
	Price   *decimal.Decimal
}

// Menu is the catalog for today and tomorrow
type Menu struct {
	Today        string            `json:"today"`
	Tomorrow     string            `json:"tomorrow"`
	TodayMenu    []models.FoodItem `json:"today_menu"`
	TomorrowMenu []models.FoodItem `json:"tomorrow_menu"`
}

// CatalogService manages food items and derives the daily menu
type CatalogService struct {
	items repositories.FoodItemRepositoryInterface
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(items repositories.FoodItemRepositoryInterface) *CatalogService {
	return &CatalogService{items: items}
}

// AddItem validates and stores a new food item
func (s *CatalogService) AddItem(ctx context.Context, in FoodItemInput) (*models.FoodItem, error) {
	item := &models.FoodItem{
		Name:    strings.TrimSpace(in.Name),
		Session: models.NormalizeSession(in.Session),
		Day:     strings.TrimSpace(in.Day),
		Price:   in.Price,
	}
	if err := validateFoodItem(item); err != nil {
		return nil, err
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create food item: %w", err)
	}

	log.Info().Uint("food_item_id", item.ID).Str("day", item.Day).Str("session", item.Session).Msg("Food item added")
	return item, nil
}

// ListItems returns every food item in storage order
func (s *CatalogService) ListItems(ctx context.Context) ([]models.FoodItem, error) {
	items, err := s.items.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}
	return items, nil
}

// GetItem returns one food item
func (s *CatalogService) GetItem(ctx context.Context, id uint) (*models.FoodItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, foodItemLookupError(id, err)
	}
	return item, nil
}

// EditItem applies a partial update; every supplied field is validated with
// the same rules as AddItem.
func (s *CatalogService) EditItem(ctx context.Context, id uint, upd FoodItemUpdate) (*models.FoodItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, foodItemLookupError(id, err)
	}

	if upd.Name != nil {
		item.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Session != nil {
		item.Session = models.NormalizeSession(*upd.Session)
	}
	if upd.Day != nil {
		item.Day = strings.TrimSpace(*upd.Day)
	}
	if upd.Price != nil {
		item.Price = *upd.Price
	}

	if err := validateFoodItem(item); err != nil {
		return nil, err
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update food item: %w", err)
	}

	log.Info().Uint("food_item_id", item.ID).Msg("Food item updated")
	return item, nil
}

// DeleteItem removes a food item together with the order items that reference it
func (s *CatalogService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return foodItemLookupError(id, err)
	}

	log.Info().Uint("food_item_id", id).Msg("Food item deleted")
	return nil
}

// Menu returns the items served on the weekday of now and of the following
// day, using now's location for the calendar.
func (s *CatalogService) Menu(ctx context.Context, now time.Time) (*Menu, error) {
	today := now.Weekday().String()
	tomorrow := now.AddDate(0, 0, 1).Weekday().String()

	todayMenu, err := s.items.FindByDay(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu for %s: %w", today, err)
	}
	tomorrowMenu, err := s.items.FindByDay(ctx, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu for %s: %w", tomorrow, err)
	}

	return &Menu{
		Today:        today,
		Tomorrow:     tomorrow,
		TodayMenu:    todayMenu,
		TomorrowMenu: tomorrowMenu,
	}, nil
}

func validateFoodItem(item *models.FoodItem) error {
	verr := &ValidationError{}
	checkLength(verr, "name", item.Name, 100)
	checkLength(verr, "day", item.Day, 20)

	if !models.IsValidSession(item.Session) {
		verr.Add("session", fmt.Sprintf("%q is not a valid choice. Use one of: %s.",
			item.Session, strings.Join(models.Sessions, ", ")))
	}

	switch {
	case item.Price.IsNegative():
		verr.Add("price", "Ensure this value is greater than or equal to 0.")
	case !item.Price.Equal(item.Price.Round(2)):
		verr.Add("price", "Ensure that there are no more than 2 decimal places.")
	case item.Price.GreaterThanOrEqual(maxPrice):
		verr.Add("price", "Ensure that there are no more than 6 digits in total.")
	}

	return verr.OrNil()
}

func foodItemLookupError(id uint, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &NotFoundError{Resource: "food item", ID: id}
	}
	return fmt.Errorf("failed to load food item %d: %w", id, err)
}
