// routes/asset_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/luxoria/luxoria_backend/controllers"
)

// RegisterAssetRoutes registers the asset listing and tokenization stubs
func RegisterAssetRoutes(e *echo.Echo, assetController *controllers.AssetController) {
	assetGroup := e.Group("/api/assets")

	assetGroup.POST("", assetController.CreateAsset)
	assetGroup.GET("", assetController.ListAssets)
	assetGroup.POST("/:id/tokenize", assetController.RequestTokenization)
}
