// controllers/sale_controller.go
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

// Stubbed out in tests
var sendCommissionEmail = utils.SendCommissionEarnedEmail

type SaleController struct {
	sellers     SellerStore
	brokers     BrokerStore
	commissions CommissionStore
	attribution *services.AttributionService
	calculator  *services.CommissionCalculator
	hub         *websocket.Hub
}

func NewSaleController(sellers SellerStore, brokers BrokerStore, commissions CommissionStore,
	attribution *services.AttributionService, calculator *services.CommissionCalculator, hub *websocket.Hub) *SaleController {
	return &SaleController{
		sellers:     sellers,
		brokers:     brokers,
		commissions: commissions,
		attribution: attribution,
		calculator:  calculator,
		hub:         hub,
	}
}

// RecordSale records a completed sale and the resulting broker commission.
//
// The request moves through validation, attribution, fee computation,
// commission persistence and stats update, in that order. A failure before
// the commission insert aborts with no side effects; a failure after it
// (stats update, live notification, email) is logged and swallowed, so the
// aggregate counters are only eventually consistent with the commission log.
func (sc *SaleController) RecordSale(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// validating
	var req models.SaleRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if req.SellerWallet == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Seller wallet address is required",
		})
	}
	if req.SaleAmountUSD <= 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Sale amount must be a positive number",
		})
	}

	// attributing
	seller, err := sc.sellers.FindByWallet(ctx, req.SellerWallet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Seller not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	broker := sc.resolveBroker(ctx, seller, req.ReferralCode)

	// computing_fees
	quote, err := services.QuoteFee(
		services.ParseCategory(req.Category),
		req.SaleAmountUSD,
		services.ParsePayMethod(req.PayMethod),
		req.Auction,
	)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	detail := models.CommissionDetail{
		PlatformFee: quote.PlatformFee,
		Rate:        quote.FeeRate,
		BrokerRate:  sc.calculator.Rate(),
	}

	// No attributed broker: the sale is recorded as commission-free and no
	// commission row is created
	if broker == nil {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Sale recorded without broker commission",
			Data: map[string]interface{}{
				"success":    true,
				"commission": detail,
				"fees":       quote,
			},
		})
	}

	detail.Amount = sc.calculator.Commission(quote.PlatformFee)

	// A commission that rounds to zero is recorded like an unattributed
	// sale: no row, nothing to pay out
	if detail.Amount <= 0 {
		detail.Amount = 0
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Sale recorded without broker commission",
			Data: map[string]interface{}{
				"success":    true,
				"commission": detail,
				"fees":       quote,
			},
		})
	}

	commission := &models.Commission{
		BrokerID:        broker.ID,
		SellerID:        seller.ID,
		SaleAmountUSD:   req.SaleAmountUSD,
		CommissionUSD:   detail.Amount,
		PlatformFeeUSD:  quote.PlatformFee,
		CommissionRate:  sc.calculator.Rate(),
		FeeRate:         quote.FeeRate,
		Category:        string(services.ParseCategory(req.Category)),
		PayMethod:       string(services.ParsePayMethod(req.PayMethod)),
		Auction:         req.Auction,
		TransactionHash: req.TransactionHash,
	}

	// persisting
	commissionID, err := sc.commissions.Insert(ctx, commission)
	if err != nil {
		if err == repositories.ErrDuplicateTransaction {
			existing, ferr := sc.commissions.FindByTransactionHash(ctx, req.TransactionHash)
			data := map[string]interface{}{}
			if ferr == nil {
				data["commissionId"] = existing.ID.Hex()
			}
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "A commission for this transaction has already been recorded",
				Data:    data,
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record commission",
		})
	}
	commission.ID = commissionID
	detail.ID = commissionID.Hex()

	// updating_stats: best-effort from here on, the commission row stands
	if err := sc.brokers.AddSaleTotals(ctx, broker.ID, req.SaleAmountUSD, detail.Amount); err != nil {
		log.Printf("Failed to update aggregate stats for broker %s: %v", broker.ID.Hex(), err)
	}
	if err := sc.hub.NotifyCommissionRecorded(broker.ID, detail); err != nil {
		log.Printf("Failed to push commission notification to broker %s: %v", broker.ID.Hex(), err)
	}
	go func(b models.Broker, cm models.Commission) {
		_ = sendCommissionEmail(&b, &cm)
	}(*broker, *commission)

	// done
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sale and commission recorded successfully",
		Data: map[string]interface{}{
			"success":    true,
			"commission": detail,
			"fees":       quote,
		},
	})
}

// resolveBroker returns the broker credited for this sale. An explicit
// referral code on the request, when resolvable, overrides the seller's
// stored attribution for this sale only and is never persisted back to the
// seller. Otherwise the stored attribution is used; a dangling broker
// reference degrades to an unattributed sale.
func (sc *SaleController) resolveBroker(ctx context.Context, seller *models.Seller, overrideCode string) *models.Broker {
	if overrideCode != "" {
		result := sc.attribution.Resolve(ctx, overrideCode)
		if result.Attributed() {
			return result.Broker
		}
		log.Printf("Override referral code %q did not resolve, falling back to stored attribution", overrideCode)
	}

	if seller.ReferredBy == nil {
		return nil
	}

	broker, err := sc.brokers.FindByID(ctx, *seller.ReferredBy)
	if err != nil {
		log.Printf("Seller %s references missing broker %s: %v", seller.ID.Hex(), seller.ReferredBy.Hex(), err)
		return nil
	}
	return broker
}
