// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/transfer-desk/backend/internal/integration/entrypoint/controller"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	authController         *controller.AuthController
	userController         *controller.UserController
	clientController       *controller.ClientController
	transactionController  *controller.TransactionController
	summaryController      *controller.SummaryController
	exportController       *controller.ExportController
	dailyBalanceController *controller.DailyBalanceController
	maintenanceController  *controller.MaintenanceController
	loginRateLimiter       *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	clientController *controller.ClientController,
	transactionController *controller.TransactionController,
	summaryController *controller.SummaryController,
	exportController *controller.ExportController,
	dailyBalanceController *controller.DailyBalanceController,
	maintenanceController *controller.MaintenanceController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		authController:         authController,
		userController:         userController,
		clientController:       clientController,
		transactionController:  transactionController,
		summaryController:      summaryController,
		exportController:       exportController,
		dailyBalanceController: dailyBalanceController,
		maintenanceController:  maintenanceController,
		loginRateLimiter:       loginRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
		}

		protected := v1.Group("")
		protected.Use(r.authMiddleware.Authenticate())

		clients := protected.Group("/clients")
		{
			clients.GET("", r.clientController.Search)
			clients.POST("", r.clientController.Create)
			clients.PATCH("/:id", r.clientController.Rename)
			clients.DELETE("/:id", r.clientController.Delete)
			clients.GET("/:id/transactions", r.transactionController.ListByClient)
			clients.GET("/:id/summary", r.summaryController.GetClient)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.POST("/send", r.transactionController.RecordSend)
			transactions.POST("/payment", r.transactionController.RecordPayment)
			transactions.PATCH("/:id", r.transactionController.Update)
			// Hard delete of an erroneous entry
			transactions.DELETE("/:id", r.authMiddleware.RequireAdmin(), r.transactionController.Delete)
		}

		summaries := protected.Group("/summaries")
		{
			summaries.GET("", r.summaryController.List)
			summaries.GET("/calendar", r.summaryController.Calendar)
		}
		protected.GET("/dashboard", r.summaryController.Dashboard)

		protected.POST("/exports", r.exportController.Export)

		dailyBalances := protected.Group("/daily-balances")
		{
			dailyBalances.GET("", r.dailyBalanceController.List)
			dailyBalances.PUT("", r.dailyBalanceController.Upsert)
			dailyBalances.PATCH("/:id", r.dailyBalanceController.Rename)
		}

		admin := protected.Group("")
		admin.Use(r.authMiddleware.RequireAdmin())

		users := admin.Group("/users")
		{
			users.GET("", r.userController.List)
			users.POST("", r.userController.Create)
			users.PATCH("/:id", r.userController.Update)
			users.POST("/:id/toggle-block", r.userController.ToggleBlock)
			users.DELETE("/:id", r.userController.Deactivate)
		}

		admin.POST("/maintenance/archive", r.maintenanceController.Archive)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
