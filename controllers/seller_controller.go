// controllers/seller_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luxoria/luxoria_backend/models"
	"github.com/luxoria/luxoria_backend/repositories"
	"github.com/luxoria/luxoria_backend/services"
	"github.com/luxoria/luxoria_backend/utils"
	"github.com/luxoria/luxoria_backend/websocket"
)

type SellerController struct {
	sellers     SellerStore
	brokers     BrokerStore
	attribution *services.AttributionService
	hub         *websocket.Hub
}

func NewSellerController(sellers SellerStore, brokers BrokerStore, attribution *services.AttributionService, hub *websocket.Hub) *SellerController {
	return &SellerController{
		sellers:     sellers,
		brokers:     brokers,
		attribution: attribution,
		hub:         hub,
	}
}

// RegisterSeller creates a seller at first wallet connection. Idempotent at
// the seller level: a wallet that is already registered gets its existing
// record back and attribution is not re-run. A referral code arriving in the
// attribution cookie is resolved to a broker; an unresolvable code degrades
// to an unattributed registration instead of failing the call.
func (sc *SellerController) RegisterSeller(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.SellerRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if !utils.IsValidWalletAddress(req.WalletAddress) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid wallet address",
		})
	}

	// Existing seller: return as-is, stored attribution is authoritative
	if existing, err := sc.sellers.FindByWallet(ctx, req.WalletAddress); err == nil {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Seller already registered",
			Data: map[string]interface{}{
				"seller":     existing,
				"referredBy": sc.brokerSummary(ctx, existing),
			},
		})
	} else if err != mongo.ErrNoDocuments {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	code := services.ReferralCodeFromRequest(c.Request())
	result := sc.attribution.Resolve(ctx, code)

	seller := &models.Seller{WalletAddress: req.WalletAddress}
	if result.Attributed() {
		lockedUntil := time.Now().Add(services.AttributionLockWindow)
		seller.ReferredBy = &result.Broker.ID
		seller.ReferralLockedUntil = &lockedUntil
	}

	sellerID, err := sc.sellers.Insert(ctx, seller)
	if err != nil {
		if err == repositories.ErrDuplicateWallet {
			// Lost a registration race; the earlier row wins
			if existing, ferr := sc.sellers.FindByWallet(ctx, req.WalletAddress); ferr == nil {
				return c.JSON(http.StatusOK, models.Response{
					Status:  http.StatusOK,
					Message: "Seller already registered",
					Data: map[string]interface{}{
						"seller":     existing,
						"referredBy": sc.brokerSummary(ctx, existing),
					},
				})
			}
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to register seller",
		})
	}
	seller.ID = sellerID

	// The counter increment is best-effort: the registration stands even
	// if it fails
	if result.Attributed() {
		if err := sc.brokers.IncrementReferredSellers(ctx, result.Broker.ID); err != nil {
			log.Printf("Failed to increment referred sellers for broker %s: %v", result.Broker.ID.Hex(), err)
		}
		if err := sc.hub.NotifySellerReferred(result.Broker.ID, map[string]interface{}{
			"sellerId":      sellerID.Hex(),
			"walletAddress": seller.WalletAddress,
		}); err != nil {
			log.Printf("Failed to notify broker %s of new referral: %v", result.Broker.ID.Hex(), err)
		}
	}

	message := "Seller registered successfully"
	data := map[string]interface{}{
		"seller":      seller,
		"attribution": result.Outcome,
	}
	if result.Attributed() {
		data["referredBy"] = map[string]interface{}{
			"brokerId":     result.Broker.ID,
			"fullName":     result.Broker.FullName,
			"referralCode": result.Broker.ReferralCode,
		}
		message = "Seller registered and attributed to broker"
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// brokerSummary resolves the seller's stored attribution to a small broker
// summary for responses. Nil when unattributed or the broker is gone.
func (sc *SellerController) brokerSummary(ctx context.Context, seller *models.Seller) map[string]interface{} {
	if seller.ReferredBy == nil {
		return nil
	}
	broker, err := sc.brokers.FindByID(ctx, *seller.ReferredBy)
	if err != nil {
		log.Printf("Seller %s references missing broker %s: %v", seller.ID.Hex(), seller.ReferredBy.Hex(), err)
		return nil
	}
	return map[string]interface{}{
		"brokerId":     broker.ID,
		"fullName":     broker.FullName,
		"referralCode": broker.ReferralCode,
	}
}
