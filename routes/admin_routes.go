// routes/admin_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/luxoria/luxoria_backend/controllers"
	"github.com/luxoria/luxoria_backend/middleware"
)

// RegisterAdminRoutes registers the admin login and payout endpoints
func RegisterAdminRoutes(e *echo.Echo, adminController *controllers.AdminController) {
	e.POST("/api/admin/login", adminController.Login)

	adminGroup := e.Group("/api/admin")
	adminGroup.Use(middleware.AdminJWTMiddleware())

	adminGroup.GET("/commissions", adminController.ListCommissions)
	adminGroup.PUT("/commissions/:id/pay", adminController.MarkCommissionPaid)
	adminGroup.GET("/dashboard", adminController.Dashboard)
}
