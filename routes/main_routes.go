package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/luxoria/luxoria_backend/middleware"
)

// SetupMainRoutes registers the root, health and CORS preflight routes
func SetupMainRoutes(e *echo.Echo) {
	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Luxoria Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	e.OPTIONS("/*", middleware.PreflightHandler())
}
