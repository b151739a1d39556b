// routes/seller_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/luxoria/luxoria_backend/controllers"
)

// RegisterSellerRoutes registers seller registration and sale recording
func RegisterSellerRoutes(e *echo.Echo, sellerController *controllers.SellerController, saleController *controllers.SaleController) {
	sellerGroup := e.Group("/api/sellers")
	sellerGroup.POST("/register", sellerController.RegisterSeller)

	saleGroup := e.Group("/api/sales")
	saleGroup.POST("/record", saleController.RecordSale)
}
