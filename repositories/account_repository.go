package repositories

import (
	"context"
	"strings"

	"github.com/karmic/meals-api/models"
	"gorm.io/gorm"
)

// Account is the set of account models stored by AccountRepository
type Account interface {
	models.Employee | models.Chef
}

// AccountRepositoryInterface is the storage contract for one account table
type AccountRepositoryInterface[T Account] interface {
	Create(ctx context.Context, account *T) error
	FindByEmail(ctx context.Context, email string) (*T, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByStaffID(ctx context.Context, staffID string) (bool, error)
}

// AccountRepository stores employees or chefs in their own table
type AccountRepository[T Account] struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a repository for the employees table
func NewEmployeeRepository(db *gorm.DB) *AccountRepository[models.Employee] {
	return &AccountRepository[models.Employee]{db: db}
}

// NewChefRepository creates a repository for the chefs table
func NewChefRepository(db *gorm.DB) *AccountRepository[models.Chef] {
	return &AccountRepository[models.Chef]{db: db}
}

// Create inserts a new account. Unique violations are reported as ErrDuplicate.
func (r *AccountRepository[T]) Create(ctx context.Context, account *T) error {
	return translate(r.db.WithContext(ctx).Create(account).Error)
}

// FindByEmail returns the account with the given email (compared case-insensitively)
func (r *AccountRepository[T]) FindByEmail(ctx context.Context, email string) (*T, error) {
	var account T
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&account).Error
	if err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// ExistsByEmail reports whether an account with this email exists
func (r *AccountRepository[T]) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// ExistsByStaffID reports whether an account with this staff ID exists
func (r *AccountRepository[T]) ExistsByStaffID(ctx context.Context, staffID string) (bool, error) {
	return r.exists(ctx, "staff_id = ?", strings.ToUpper(strings.TrimSpace(staffID)))
}

func (r *AccountRepository[T]) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
