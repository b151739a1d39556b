// routes/broker_routes.go
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luxoria/luxoria_backend/controllers"
	"github.com/luxoria/luxoria_backend/models"
	"github.com/luxoria/luxoria_backend/repositories"
	"github.com/luxoria/luxoria_backend/websocket"
)

// RegisterBrokerRoutes registers the broker-facing endpoints, including the
// live dashboard WebSocket.
func RegisterBrokerRoutes(e *echo.Echo, brokerController *controllers.BrokerController, brokerRepo *repositories.BrokerRepository, wsHub *websocket.Hub) {
	brokerGroup := e.Group("/api/brokers")

	brokerGroup.POST("/register", brokerController.RegisterBroker)
	brokerGroup.GET("/profile", brokerController.GetProfile)
	brokerGroup.GET("/commissions", brokerController.GetCommissions)
	brokerGroup.GET("/qrcode", brokerController.GetReferralQRCode)
	brokerGroup.GET("/leaderboard", brokerController.GetLeaderboard)

	// Live dashboard: the broker identifies by wallet, then the connection
	// is upgraded and registered with the hub
	e.GET("/api/ws", func(c echo.Context) error {
		wallet := c.QueryParam("wallet")
		if wallet == "" {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Wallet query parameter is required",
			})
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		broker, err := brokerRepo.FindByWallet(ctx, wallet)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return c.JSON(http.StatusNotFound, models.Response{
					Status:  http.StatusNotFound,
					Message: "Broker not found",
				})
			}
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Database error",
			})
		}

		return websocket.HandleWebSocket(c, wsHub, broker.ID)
	})
}
