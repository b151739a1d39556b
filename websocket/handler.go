package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection and registers the broker's
// dashboard with the hub. The broker id is resolved by the route handler
// before the upgrade.
func HandleWebSocket(c echo.Context, hub *Hub, brokerID primitive.ObjectID) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		BrokerID: brokerID,
		Conn:     conn,
	}

	hub.register <- client

	conn.WriteJSON(Notification{
		Type:     "connected",
		Message:  "WebSocket connection established",
		BrokerID: brokerID.Hex(),
	})

	// Drain incoming messages until the peer disconnects
	go func() {
		defer func() {
			hub.unregister <- client
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	return nil
}
