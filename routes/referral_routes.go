// routes/referral_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/luxoria/luxoria_backend/controllers"
)

// RegisterReferralRoutes registers the referral tracking endpoints. These
// are public: the pixel is embedded in landing pages and must never require
// authentication.
func RegisterReferralRoutes(e *echo.Echo, trackingController *controllers.ReferralTrackingController) {
	referralGroup := e.Group("/api/referrals")

	referralGroup.GET("/track", trackingController.HandleTrackingPixel)
	referralGroup.POST("/track", trackingController.HandleTrackClick)
}
