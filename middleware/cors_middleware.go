package middleware

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// GlobalCORS creates the global CORS middleware. The API is consumed by the
// marketplace web app and third-party broker dashboards, so origins are not
// restricted; pre-flight requests succeed for every route.
func GlobalCORS() echo.MiddlewareFunc {
	return echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Wallet-Address"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        86400, // 24 hours
	})
}

// PreflightHandler handles preflight CORS requests
func PreflightHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Wallet-Address")
		c.Response().Header().Set("Access-Control-Max-Age", "86400")
		return c.NoContent(204)
	}
}
