package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/karmic/meals-api/config"
	"github.com/karmic/meals-api/models"
	"github.com/karmic/meals-api/repositories"
	"github.com/karmic/meals-api/utils"
	"github.com/rs/zerolog/log"
)

// AccountPolicy holds the format rules for staff accounts
type AccountPolicy struct {
	EmailDomain      string // required email suffix, e.g. "@karmic.com"
	EmployeeIDPrefix string
	ChefIDPrefix     string
}

// DefaultAccountPolicy returns the built-in account rules
func DefaultAccountPolicy() AccountPolicy {
	return AccountPolicy{
		EmailDomain:      "@karmic.com",
		EmployeeIDPrefix: "EMP",
		ChefIDPrefix:     "CHEF",
	}
}

// AccountPolicyFromConfig builds the account rules from application config
func AccountPolicyFromConfig(cfg *config.Config) AccountPolicy {
	return AccountPolicy{
		EmailDomain:      cfg.EmailDomain,
		EmployeeIDPrefix: cfg.EmployeeIDPrefix,
		ChefIDPrefix:     cfg.ChefIDPrefix,
	}
}

// SignupInput is the data submitted to create an employee or chef account
type SignupInput struct {
	Name        string
	Email       string
	PhoneNumber string
	StaffID     string
	Password    string
	SecretKey   string // chefs only
}

// LoginResult identifies the account that matched a login
type LoginResult struct {
	Role      string `json:"role"`
	StaffID   string `json:"staff_id"`
	AccountID uint   `json:"-"`
}

// CredentialService creates accounts and resolves logins to a role
type CredentialService struct {
	employees repositories.AccountRepositoryInterface[models.Employee]
	chefs     repositories.AccountRepositoryInterface[models.Chef]
	policy    AccountPolicy
}

// NewCredentialService creates a new CredentialService
func NewCredentialService(
	employees repositories.AccountRepositoryInterface[models.Employee],
	chefs repositories.AccountRepositoryInterface[models.Chef],
	policy AccountPolicy,
) *CredentialService {
	return &CredentialService{employees: employees, chefs: chefs, policy: policy}
}

// SignupEmployee validates and stores a new employee account
func (s *CredentialService) SignupEmployee(ctx context.Context, in SignupInput) (*models.Employee, error) {
	account, err := s.prepareAccount(ctx, in, s.policy.EmployeeIDPrefix, "Employee", s.employees)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{StaffAccount: *account}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, createError("employee", err)
	}

	log.Info().Str("staff_id", employee.StaffID).Msg("Employee account created")
	return employee, nil
}

// SignupChef validates and stores a new chef account
func (s *CredentialService) SignupChef(ctx context.Context, in SignupInput) (*models.Chef, error) {
	account, err := s.prepareAccount(ctx, in, s.policy.ChefIDPrefix, "Chef", s.chefs)
	if err != nil {
		return nil, err
	}

	chef := &models.Chef{StaffAccount: *account, SecretKey: in.SecretKey}
	if err := s.chefs.Create(ctx, chef); err != nil {
		return nil, createError("chef", err)
	}

	log.Info().Str("staff_id", chef.StaffID).Msg("Chef account created")
	return chef, nil
}

// Login checks the employee table first and then the chef table.
// An email present in both tables resolves to the employee when the
// password matches the employee account.
func (s *CredentialService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	employee, err := s.employees.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	if employee != nil && utils.CheckPasswordHash(password, employee.PasswordHash) {
		return &LoginResult{Role: models.RoleEmployee, StaffID: employee.StaffID, AccountID: employee.ID}, nil
	}

	chef, err := s.chefs.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up chef: %w", err)
	}
	if chef != nil && utils.CheckPasswordHash(password, chef.PasswordHash) {
		return &LoginResult{Role: models.RoleChef, StaffID: chef.StaffID, AccountID: chef.ID}, nil
	}

	log.Info().Msg("Login rejected: no matching account")
	return nil, &AuthenticationError{}
}

// uniquenessChecker is the part of an account repository used for signup checks
type uniquenessChecker interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByStaffID(ctx context.Context, staffID string) (bool, error)
}

// prepareAccount validates the input against the policy and the target table
// and returns the account fields ready to insert, with the password hashed.
func (s *CredentialService) prepareAccount(
	ctx context.Context,
	in SignupInput,
	prefix, label string,
	repo uniquenessChecker,
) (*models.StaffAccount, error) {
	account := models.StaffAccount{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		StaffID:     strings.ToUpper(strings.TrimSpace(in.StaffID)),
	}

	verr := &ValidationError{}
	checkLength(verr, "name", account.Name, 100)
	checkLength(verr, "phone_number", account.PhoneNumber, 15)
	checkLength(verr, "staff_id", account.StaffID, 20)

	if !strings.HasSuffix(account.Email, s.policy.EmailDomain) {
		verr.Add("email", fmt.Sprintf("Email must be a %s address", s.policy.EmailDomain))
	}
	if !strings.HasPrefix(account.StaffID, prefix) {
		verr.Add("staff_id", fmt.Sprintf("%s ID must start with '%s' (e.g., %s001)", label, prefix, prefix))
	}
	if in.Password == "" {
		verr.Add("password", "This field may not be blank.")
	} else if len(in.Password) > utils.MaxPasswordBytes {
		verr.Add("password", utils.ErrPasswordTooLong.Error())
	}

	if _, ok := verr.Fields["email"]; !ok && account.Email != "" {
		exists, err := repo.ExistsByEmail(ctx, account.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			verr.Add("email", fmt.Sprintf("%s with this email already exists.", strings.ToLower(label)))
		}
	}
	if _, ok := verr.Fields["staff_id"]; !ok {
		exists, err := repo.ExistsByStaffID(ctx, account.StaffID)
		if err != nil {
			return nil, fmt.Errorf("failed to check staff ID: %w", err)
		}
		if exists {
			verr.Add("staff_id", fmt.Sprintf("%s with this staff id already exists.", strings.ToLower(label)))
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	account.PasswordHash = hash
	return &account, nil
}

// createError maps an insert failure; a unique violation that slipped past the
// pre-checks (concurrent signup) is still reported as a validation error.
func createError(resource string, err error) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return NewValidationError("non_field_errors",
			fmt.Sprintf("A %s with this email or staff ID already exists", resource))
	}
	return fmt.Errorf("failed to create %s: %w", resource, err)
}

func checkLength(verr *ValidationError, field, value string, max int) {
	switch {
	case value == "":
		verr.Add(field, "This field may not be blank.")
	case len([]rune(value)) > max:
		verr.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
}
