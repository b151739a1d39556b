package main

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/luxoria/luxoria_backend/config"
	"github.com/luxoria/luxoria_backend/controllers"
	"github.com/luxoria/luxoria_backend/middleware"
	"github.com/luxoria/luxoria_backend/repositories"
	"github.com/luxoria/luxoria_backend/routes"
	"github.com/luxoria/luxoria_backend/services"
	"github.com/luxoria/luxoria_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.LoadConfig()

	// Connect to Redis (leaderboard cache, optional)
	redisClient := config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	luxoriaDB := config.GetDatabase(client)

	// Create WebSocket hub for live broker dashboards
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())

	// Initialize repositories
	sellerRepo := repositories.NewSellerRepository(luxoriaDB)
	brokerRepo := repositories.NewBrokerRepository(luxoriaDB)
	commissionRepo := repositories.NewCommissionRepository(luxoriaDB)
	clickRepo := repositories.NewClickRepository(luxoriaDB)
	assetRepo := repositories.NewAssetRepository(luxoriaDB)

	// Initialize services
	attribution := services.NewAttributionService(brokerRepo)
	calculator := services.NewCommissionCalculator(cfg.CommissionRate)

	// Initialize controllers
	trackingController := controllers.NewReferralTrackingController(brokerRepo, clickRepo)
	sellerController := controllers.NewSellerController(sellerRepo, brokerRepo, attribution, wsHub)
	saleController := controllers.NewSaleController(sellerRepo, brokerRepo, commissionRepo, attribution, calculator, wsHub)
	brokerController := controllers.NewBrokerController(brokerRepo, commissionRepo, redisClient, cfg.BaseURL)
	assetController := controllers.NewAssetController(assetRepo, sellerRepo)
	adminController := controllers.NewAdminController(commissionRepo, cfg)

	// Register routes
	routes.SetupMainRoutes(e)
	routes.RegisterReferralRoutes(e, trackingController)
	routes.RegisterSellerRoutes(e, sellerController, saleController)
	routes.RegisterBrokerRoutes(e, brokerController, brokerRepo, wsHub)
	routes.RegisterAssetRoutes(e, assetController)
	routes.RegisterAdminRoutes(e, adminController)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
