package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types pushed to broker dashboards
const (
	NotificationTypeCommissionRecorded = "commission_recorded"
	NotificationTypeSellerReferred     = "seller_referred"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type     string      `json:"type"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data,omitempty"`
	BrokerID string      `json:"brokerId,omitempty"`
}

// Client represents a connected broker dashboard
type Client struct {
	BrokerID primitive.ObjectID
	Conn     *websocket.Conn
}

// Hub maintains the set of connected broker dashboards and pushes
// notifications to them. All pushes are best-effort; a disconnected broker
// simply misses the live event and sees it on the next profile load.
type Hub struct {
	clients    map[primitive.ObjectID]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[primitive.ObjectID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.BrokerID] = client
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if existing, ok := h.clients[client.BrokerID]; ok && existing == client {
				delete(h.clients, client.BrokerID)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// SendToBroker sends a notification to a connected broker
func (h *Hub) SendToBroker(brokerID primitive.ObjectID, notification Notification) error {
	h.mu.RLock()
	client, ok := h.clients[brokerID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("broker not connected")
	}

	return client.Conn.WriteJSON(notification)
}

// NotifyCommissionRecorded pushes a new-commission event to the broker.
// Safe to call on a nil hub.
func (h *Hub) NotifyCommissionRecorded(brokerID primitive.ObjectID, commissionData interface{}) error {
	if h == nil {
		return nil
	}
	notification := Notification{
		Type:     NotificationTypeCommissionRecorded,
		Message:  "A new commission was recorded for one of your sellers",
		Data:     commissionData,
		BrokerID: brokerID.Hex(),
	}
	return h.SendToBroker(brokerID, notification)
}

// NotifySellerReferred pushes a new-referral event to the broker.
// Safe to call on a nil hub.
func (h *Hub) NotifySellerReferred(brokerID primitive.ObjectID, sellerData interface{}) error {
	if h == nil {
		return nil
	}
	notification := Notification{
		Type:     NotificationTypeSellerReferred,
		Message:  "A new seller registered with your referral code",
		Data:     sellerData,
		BrokerID: brokerID.Hex(),
	}
	return h.SendToBroker(brokerID, notification)
}
