package models

import (
	"time"
)

// Role names returned by login
const (
	RoleEmployee = "employee"
	RoleChef     = "chef"
)

// StaffAccount holds the fields shared by employee and chef accounts.
// Employees and chefs live in separate tables, so email and staff_id are
// unique per table only.
type StaffAccount struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PhoneNumber  string    `gorm:"size:15;not null" json:"phone_number"`
	StaffID      string    `gorm:"size:20;uniqueIndex;not null" json:"staff_id"`
	PasswordHash string    `gorm:"column:password;size:255;not null" json:"-"` // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at"`
}

// Employee is a staff member who places meal orders
type Employee struct {
	StaffAccount
}

// TableName specifies the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// Chef is a kitchen account that manages the catalog
type Chef struct {
	StaffAccount
	SecretKey string `gorm:"size:255;not null" json:"-"`
}

// TableName specifies the table name for the Chef model
func (Chef) TableName() string {
	return "chefs"
}
