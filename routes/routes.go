package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karmic/meals-api/config"
	"github.com/karmic/meals-api/controllers"
	"github.com/karmic/meals-api/middleware"
	"github.com/karmic/meals-api/repositories"
	"github.com/karmic/meals-api/services"
	"gorm.io/gorm"
)

// Dependencies are the external resources the router is built from
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Storage services.S3Interface // nil disables report archiving
	Clock   func() time.Time     // menu and report clock; nil means time.Now
}

// SetupRouter wires repositories, services and controllers into a Gin engine
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	employeeRepo := repositories.NewEmployeeRepository(deps.DB)
	chefRepo := repositories.NewChefRepository(deps.DB)
	foodItemRepo := repositories.NewFoodItemRepository(deps.DB)
	orderRepo := repositories.NewOrderRepository(deps.DB)

	credentialService := services.NewCredentialService(employeeRepo, chefRepo, services.AccountPolicyFromConfig(cfg))
	catalogService := services.NewCatalogService(foodItemRepo)
	orderService := services.NewOrderService(orderRepo)
	reportService := services.NewReportService(orderService, deps.Storage, deps.Clock)

	healthController := controllers.NewHealthController(deps.DB)
	accountController := controllers.NewAccountController(credentialService)
	foodController := controllers.NewFoodController(catalogService, deps.Clock)
	orderController := controllers.NewOrderController(orderService)
	dashboardController := controllers.NewDashboardController(orderService, reportService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthController.HealthCheck)
		v1.GET("/database/status", healthController.DatabaseStatus)

		// Accounts
		v1.POST("/signup/employee", accountController.SignupEmployee)
		v1.POST("/signup/chef", accountController.SignupChef)
		v1.POST("/login", accountController.Login)

		// Catalog
		food := v1.Group("/food")
		{
			food.POST("/add", foodController.AddFoodItem)
			food.GET("/list", foodController.ListFoodItems)
			food.GET("/menu", foodController.Menu)
			food.GET("/:id", foodController.GetFoodItem)
			food.PUT("/edit/:id", foodController.EditFoodItem)
			food.DELETE("/delete/:id", foodController.DeleteFoodItem)
		}

		// Orders
		v1.POST("/order/add", orderController.PlaceOrder)
		v1.GET("/order/:id", orderController.GetOrder)

		// Chef dashboard
		chef := v1.Group("/chef")
		{
			chef.GET("/dashboard", dashboardController.Dashboard)
			chef.GET("/dashboard/pdf", dashboardController.DashboardPDF)
			chef.POST("/dashboard/archive", dashboardController.ArchiveDashboard)
		}
	}

	return router
}
