package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Meal sessions a food item can be served in
const (
	SessionMorning   = "morning"
	SessionAfternoon = "afternoon"
	SessionEvening   = "evening"
)

// Sessions lists the valid session values in serving order
var Sessions = []string{SessionMorning, SessionAfternoon, SessionEvening}

// FoodItem is a catalog entry served on a given weekday and session
type FoodItem struct {
	ID      uint            `gorm:"primaryKey" json:"id"`
	Name    string          `gorm:"size:100;not null" json:"name"`
	Session string          `gorm:"size:20;not null" json:"session"`
	Day     string          `gorm:"size:20;not null;index" json:"day"` // weekday name, e.g. "Monday"
	Price   decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
}

// TableName specifies the table name for the FoodItem model
func (FoodItem) TableName() string {
	return "food_items"
}

// IsValidSession reports whether s is one of the known sessions
func IsValidSession(s string) bool {
	for _, session := range Sessions {
		if s == session {
			return true
		}
	}
	return false
}

// NormalizeSession lowercases and trims a session value
func NormalizeSession(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MarshalJSON renders the price with exactly two decimal places
func (f FoodItem) MarshalJSON() ([]byte, error) {
	type foodItem FoodItem
	return json.Marshal(struct {
		foodItem
		Price string `json:"price"`
	}{
		foodItem: foodItem(f),
		Price:    f.Price.StringFixed(2),
	})
}
