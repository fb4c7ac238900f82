package routes

import (
	"finance-api/handlers"
	"finance-api/services"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, svc *services.FinanceService) {
	authHandler := &handlers.AuthHandler{Service: svc}

	rg.POST("/auth/register", authHandler.Register)
	rg.POST("/auth/login", authHandler.Login)
}

// SetupUserRoutes sets up protected user routes.
func SetupUserRoutes(rg *gin.RouterGroup, svc *services.FinanceService) {
	userHandler := &handlers.UserHandler{Service: svc}

	rg.GET("/users/me", userHandler.Me)
	rg.POST("/users/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/users/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/users/2fa/disable", userHandler.DisableTOTP)
}

// SetupCategoryRoutes sets up protected category routes.
func SetupCategoryRoutes(rg *gin.RouterGroup, svc *services.FinanceService) {
	categoryHandler := &handlers.CategoryHandler{Service: svc}

	rg.POST("/categories", categoryHandler.Create)
	rg.GET("/categories", categoryHandler.List)
	rg.PUT("/categories/:id", categoryHandler.Rename)
}

// SetupTransactionRoutes sets up protected transaction and reporting routes.
func SetupTransactionRoutes(rg *gin.RouterGroup, svc *services.FinanceService) {
	txHandler := &handlers.TransactionHandler{Service: svc}

	rg.POST("/transactions", txHandler.Create)
	rg.GET("/transactions/report", txHandler.Report)
	rg.GET("/transactions/stats", txHandler.Stats)
	rg.GET("/transactions/chart", txHandler.Chart)
}
