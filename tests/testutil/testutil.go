package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/karmic/meals-api/config"
	"github.com/karmic/meals-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// NewTestDB opens a fresh, migrated in-memory SQLite database
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.OpenDatabase(config.DriverSQLite, ":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// TestConfig returns a configuration suitable for building a router in tests
func TestConfig() *config.Config {
	return &config.Config{
		DatabaseURL:        ":memory:",
		DBDriver:           config.DriverSQLite,
		Port:               "8080",
		GoEnv:              "test",
		LogLevel:           "error",
		LogFormat:          "json",
		CORSAllowedOrigins: []string{"*"},
		EmailDomain:        "@karmic.com",
		EmployeeIDPrefix:   "EMP",
		ChefIDPrefix:       "CHEF",
		AWSRegion:          "us-east-1",
	}
}

// FixedClock returns a clock that always reports t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// CreateFoodItem inserts a food item directly, bypassing validation
func CreateFoodItem(t *testing.T, db *gorm.DB, name, session, day, price string) models.FoodItem {
	t.Helper()

	item := models.FoodItem{
		Name:    name,
		Session: session,
		Day:     day,
		Price:   decimal.RequireFromString(price),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create food item %q: %v", name, err)
	}
	return item
}

// CreateOrder inserts an order with one item per food item ID and quantity pair
func CreateOrder(t *testing.T, db *gorm.DB, employeeName, day string, quantities map[uint]int) models.Order {
	t.Helper()

	order := models.Order{EmployeeName: employeeName, Day: day}
	for foodItemID, quantity := range quantities {
		order.Items = append(order.Items, models.OrderItem{FoodItemID: foodItemID, Quantity: quantity})
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	return order
}

// CountRows returns the number of rows in a model's table
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}

// PrintEnvironmentInfo prints the current test environment configuration.
// Useful for debugging test environment issues.
func PrintEnvironmentInfo() {
	fmt.Printf("Test Environment Info:\n")
	fmt.Printf("  GO_ENV: %s\n", os.Getenv("GO_ENV"))
	fmt.Printf("  DB_DRIVER: %s\n", os.Getenv("DB_DRIVER"))
	fmt.Printf("  DATABASE_URL: %s\n", maskDatabaseURL(os.Getenv("DATABASE_URL")))
}

// maskDatabaseURL hides credentials in a database URL for safe printing
func maskDatabaseURL(url string) string {
	if url == "" {
		return "(not set)"
	}
	at := strings.LastIndex(url, "@")
	scheme := strings.Index(url, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return url
	}
	return url[:scheme+3] + "****" + url[at:]
}
