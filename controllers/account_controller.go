package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karmic/meals-api/models"
	"github.com/karmic/meals-api/services"
)

// AccountService is what the account endpoints need from the credential service
type AccountService interface {
	SignupEmployee(ctx context.Context, in services.SignupInput) (*models.Employee, error)
	SignupChef(ctx context.Context, in services.SignupInput) (*models.Chef, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

// EmployeeSignupRequest represents the request body for employee signup
type EmployeeSignupRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	StaffID     string `json:"staff_id" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// ChefSignupRequest represents the request body for chef signup
type ChefSignupRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	StaffID     string `json:"staff_id" binding:"required"`
	Password    string `json:"password" binding:"required"`
	SecretKey   string `json:"secret_key" binding:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AccountController handles signup and login
type AccountController struct {
	accounts AccountService
}

// NewAccountController creates a new AccountController
func NewAccountController(accounts AccountService) *AccountController {
	return &AccountController{accounts: accounts}
}

// SignupEmployee handles POST /api/v1/signup/employee
func (ctl *AccountController) SignupEmployee(c *gin.Context) {
	var req EmployeeSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	employee, err := ctl.accounts.SignupEmployee(c.Request.Context(), services.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		StaffID:     req.StaffID,
		Password:    req.Password,
	})
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Employee created successfully",
		"data":    employee,
	})
}

// SignupChef handles POST /api/v1/signup/chef
func (ctl *AccountController) SignupChef(c *gin.Context) {
	var req ChefSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	chef, err := ctl.accounts.SignupChef(c.Request.Context(), services.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		StaffID:     req.StaffID,
		Password:    req.Password,
		SecretKey:   req.SecretKey,
	})
	if err != nil {
		respondError(c, err, "Failed to create chef")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Chef created successfully",
		"data":    chef,
	})
}

// Login handles POST /api/v1/login - resolves the account role for an email/password pair
func (ctl *AccountController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "MISSING_CREDENTIALS", "Email and password are required", nil)
		return
	}

	result, err := ctl.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Login successful",
		"role":     result.Role,
		"staff_id": result.StaffID,
	})
}
