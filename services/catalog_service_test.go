package services

import (
	"context"
	"testing"
	"time"

	"github.com/karmic/meals-api/models"
	"github.com/karmic/meals-api/repositories"
	"github.com/karmic/meals-api/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogService(t *testing.T) (*CatalogService, *gorm.DB) {
	db := testutil.NewTestDB(t)
	return NewCatalogService(repositories.NewFoodItemRepository(db)), db
}

func strPtr(s string) *string { return &s }

func TestAddItem(t *testing.T) {
	svc, _ := setupCatalogService(t)

	item, err := svc.AddItem(context.Background(), FoodItemInput{
		Name:    " Masala Dosa ",
		Session: "Morning",
		Day:     "Monday",
		Price:   decimal.RequireFromString("45.50"),
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "Masala Dosa", item.Name)
	assert.Equal(t, models.SessionMorning, item.Session, "Session should be normalized to lower case")
	assert.True(t, item.Price.Equal(decimal.RequireFromString("45.5")))
}

func TestAddItem_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    FoodItemInput
		field string
	}{
		{"invalid session", FoodItemInput{Name: "Tea", Session: "night", Day: "Monday", Price: decimal.NewFromInt(5)}, "session"},
		{"negative price", FoodItemInput{Name: "Tea", Session: "evening", Day: "Monday", Price: decimal.RequireFromString("-1.00")}, "price"},
		{"three decimal places", FoodItemInput{Name: "Tea", Session: "evening", Day: "Monday", Price: decimal.RequireFromString("1.005")}, "price"},
		{"too many digits", FoodItemInput{Name: "Tea", Session: "evening", Day: "Monday", Price: decimal.RequireFromString("10000.00")}, "price"},
		{"blank name", FoodItemInput{Name: "", Session: "evening", Day: "Monday", Price: decimal.NewFromInt(5)}, "name"},
		{"blank day", FoodItemInput{Name: "Tea", Session: "evening", Day: " ", Price: decimal.NewFromInt(5)}, "day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := setupCatalogService(t)

			_, err := svc.AddItem(context.Background(), tt.in)
			requireValidationField(t, err, tt.field)
			assert.Equal(t, int64(0), testutil.CountRows(t, db, &models.FoodItem{}))
		})
	}
}

func TestAddItem_PriceBoundaries(t *testing.T) {
	svc, _ := setupCatalogService(t)

	for _, price := range []string{"0", "0.00", "9999.99", "12.5", "12.500"} {
		_, err := svc.AddItem(context.Background(), FoodItemInput{
			Name: "Item", Session: "morning", Day: "Monday", Price: decimal.RequireFromString(price),
		})
		assert.NoError(t, err, "price %s should be accepted", price)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	svc, _ := setupCatalogService(t)

	_, err := svc.GetItem(context.Background(), 7)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(7), notFound.ID)
	assert.Equal(t, "food item", notFound.Resource)
}

func TestEditItem_PartialUpdate(t *testing.T) {
	svc, db := setupCatalogService(t)
	existing := testutil.CreateFoodItem(t, db, "Poha", models.SessionMorning, "Monday", "20.00")

	price := decimal.RequireFromString("22.75")
	updated, err := svc.EditItem(context.Background(), existing.ID, FoodItemUpdate{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, "Poha", updated.Name, "Omitted fields keep their value")
	assert.Equal(t, "Monday", updated.Day)
	assert.True(t, updated.Price.Equal(price))

	var stored models.FoodItem
	require.NoError(t, db.First(&stored, existing.ID).Error)
	assert.True(t, stored.Price.Equal(price))
}

func TestEditItem_FullUpdate(t *testing.T) {
	svc, db := setupCatalogService(t)
	existing := testutil.CreateFoodItem(t, db, "Poha", models.SessionMorning, "Monday", "20.00")

	price := decimal.RequireFromString("150.00")
	updated, err := svc.EditItem(context.Background(), existing.ID, FoodItemUpdate{
		Name:    strPtr("Paneer Thali"),
		Session: strPtr("AFTERNOON"),
		Day:     strPtr("Friday"),
		Price:   &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "Paneer Thali", updated.Name)
	assert.Equal(t, models.SessionAfternoon, updated.Session)
	assert.Equal(t, "Friday", updated.Day)
}

func TestEditItem_Errors(t *testing.T) {
	svc, db := setupCatalogService(t)
	existing := testutil.CreateFoodItem(t, db, "Poha", models.SessionMorning, "Monday", "20.00")

	_, err := svc.EditItem(context.Background(), existing.ID+1, FoodItemUpdate{Name: strPtr("X")})
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = svc.EditItem(context.Background(), existing.ID, FoodItemUpdate{Session: strPtr("brunch")})
	requireValidationField(t, err, "session")

	var stored models.FoodItem
	require.NoError(t, db.First(&stored, existing.ID).Error)
	assert.Equal(t, models.SessionMorning, stored.Session, "Rejected edits must not be saved")
}

func TestDeleteItem(t *testing.T) {
	svc, db := setupCatalogService(t)
	item := testutil.CreateFoodItem(t, db, "Poha", models.SessionMorning, "Monday", "20.00")
	testutil.CreateOrder(t, db, "Asha", "Monday", map[uint]int{item.ID: 2})

	require.NoError(t, svc.DeleteItem(context.Background(), item.ID))
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &models.FoodItem{}))
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &models.OrderItem{}))

	err := svc.DeleteItem(context.Background(), item.ID)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound, "Deleting twice should report not found")
}

func TestMenu(t *testing.T) {
	svc, db := setupCatalogService(t)
	testutil.CreateFoodItem(t, db, "Poha", models.SessionMorning, "wednesday", "20.00")
	testutil.CreateFoodItem(t, db, "Thali", models.SessionAfternoon, "Wednesday", "80.00")
	testutil.CreateFoodItem(t, db, "Pasta", models.SessionEvening, "THURSDAY", "90.00")
	testutil.CreateFoodItem(t, db, "Biryani", models.SessionAfternoon, "Friday", "120.00")

	// 2024-01-10 was a Wednesday
	now := time.Date(2024, time.January, 10, 9, 30, 0, 0, time.Local)
	menu, err := svc.Menu(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "Wednesday", menu.Today)
	assert.Equal(t, "Thursday", menu.Tomorrow)
	require.Len(t, menu.TodayMenu, 2)
	assert.Equal(t, "Poha", menu.TodayMenu[0].Name)
	assert.Equal(t, "Thali", menu.TodayMenu[1].Name)
	require.Len(t, menu.TomorrowMenu, 1)
	assert.Equal(t, "Pasta", menu.TomorrowMenu[0].Name)
}

func TestMenu_WeekWrapsAround(t *testing.T) {
	svc, _ := setupCatalogService(t)

	// 2024-01-14 was a Sunday, late in the evening
	now := time.Date(2024, time.January, 14, 23, 59, 0, 0, time.Local)
	menu, err := svc.Menu(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "Sunday", menu.Today)
	assert.Equal(t, "Monday", menu.Tomorrow)
	assert.NotNil(t, menu.TodayMenu)
	assert.Empty(t, menu.TodayMenu)
}
