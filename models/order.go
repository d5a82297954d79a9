package models

import (
	"time"
)

// Order is a meal order placed for one employee and one day.
// EmployeeName is free text and not a reference to the employees table.
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	EmployeeName string      `gorm:"size:100;not null" json:"employee_name"`
	Day          string      `gorm:"size:20;not null" json:"day"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order: a food item and how many of it
type OrderItem struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	OrderID      uint     `gorm:"not null;index" json:"-"`
	FoodItemID   uint     `gorm:"not null;index" json:"food_item"`
	FoodItem     FoodItem `gorm:"foreignKey:FoodItemID;constraint:OnDelete:CASCADE" json:"-"`
	FoodItemName string   `gorm:"-" json:"food_item_name,omitempty"`
	Quantity     int      `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// DashboardRow is the total quantity ordered for one catalog item
type DashboardRow struct {
	FoodItemID   uint   `gorm:"column:food_item_id" json:"food_item_id"`
	FoodItem     string `gorm:"column:food_item" json:"food_item"`
	Day          string `gorm:"column:day" json:"day"`
	Session      string `gorm:"column:session" json:"session"`
	TotalOrdered int64  `gorm:"column:total_ordered" json:"total_ordered"`
}
