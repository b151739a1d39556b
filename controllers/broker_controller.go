// controllers/broker_controller.go
package controllers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luxoria/luxoria_backend/models"
	"github.com/luxoria/luxoria_backend/utils"
)

// WalletHeader carries the broker's wallet address on authenticated-by-wallet
// endpoints.
const WalletHeader = "X-Wallet-Address"

// leaderboardCacheTTL bounds how stale a cached leaderboard page may be
const leaderboardCacheTTL = 60 * time.Second

type BrokerController struct {
	brokers     BrokerStore
	commissions CommissionStore
	redis       *redis.Client
	baseURL     string
}

func NewBrokerController(brokers BrokerStore, commissions CommissionStore, redisClient *redis.Client, baseURL string) *BrokerController {
	return &BrokerController{
		brokers:     brokers,
		commissions: commissions,
		redis:       redisClient,
		baseURL:     baseURL,
	}
}

// RegisterBroker creates a broker account with a freshly generated referral
// code.
func (bc *BrokerController) RegisterBroker(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.BrokerRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    err.Error(),
		})
	}
	if req.WalletAddress != "" && !utils.IsValidWalletAddress(req.WalletAddress) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid wallet address",
		})
	}

	referralCode, err := utils.GenerateBrokerReferralCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate referral code",
		})
	}

	broker := &models.Broker{
		FullName:      req.FullName,
		Email:         req.Email,
		WalletAddress: req.WalletAddress,
		ReferralCode:  referralCode,
	}

	brokerID, err := bc.brokers.Insert(ctx, broker)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to register broker",
		})
	}
	broker.ID = brokerID

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Broker registered successfully",
		Data: map[string]interface{}{
			"broker":       broker,
			"referralLink": bc.referralLink(referralCode),
		},
	})
}

// GetProfile returns the broker identified by the wallet address header
// together with their aggregate stats.
func (bc *BrokerController) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	broker, errResp := bc.brokerFromHeader(ctx, c)
	if errResp != nil {
		return errResp
	}

	activeSellers, err := bc.commissions.ActiveSellerCount(ctx, broker.ID)
	if err != nil {
		log.Printf("Failed to count active sellers for broker %s: %v", broker.ID.Hex(), err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Broker profile fetched successfully",
		Data: map[string]interface{}{
			"broker": broker,
			"stats": models.BrokerStats{
				TotalSalesUSD:      broker.TotalSalesUSD,
				TotalCommissionUSD: broker.TotalCommissionUSD,
				ActiveSellers:      activeSellers,
			},
			"referralLink": bc.referralLink(broker.ReferralCode),
		},
	})
}

// GetCommissions lists the broker's commissions, newest first
func (bc *BrokerController) GetCommissions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	broker, errResp := bc.brokerFromHeader(ctx, c)
	if errResp != nil {
		return errResp
	}

	status := c.QueryParam("status")
	limit, offset := parsePagination(c, 20)

	commissions, err := bc.commissions.ListByBroker(ctx, broker.ID, status, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch commissions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commissions fetched successfully",
		Data: map[string]interface{}{
			"commissions": commissions,
			"limit":       limit,
			"offset":      offset,
		},
	})
}

// GetReferralQRCode returns a QR code image of the broker's referral link,
// base64 encoded for direct embedding.
func (bc *BrokerController) GetReferralQRCode(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	broker, errResp := bc.brokerFromHeader(ctx, c)
	if errResp != nil {
		return errResp
	}

	qrCodeBase64, err := bc.generateReferralQRCode(broker.ReferralCode)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "QR code generated successfully",
		Data: map[string]interface{}{
			"qrCode":       qrCodeBase64,
			"referralCode": broker.ReferralCode,
			"referralLink": bc.referralLink(broker.ReferralCode),
		},
	})
}

// GetLeaderboard ranks brokers by commission totals for a period. Pages are
// cached in Redis for a short TTL; the cache is skipped entirely when Redis
// is not available.
func (bc *BrokerController) GetLeaderboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	period := c.QueryParam("period")
	switch period {
	case "", "all":
		period = "all"
	case "month", "week":
	default:
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid period, expected one of: all, month, week",
		})
	}
	limit, offset := parsePagination(c, 10)

	cacheKey := fmt.Sprintf("leaderboard:%s:%d:%d", period, limit, offset)
	if bc.redis != nil {
		if cached, err := bc.redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []models.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return bc.leaderboardResponse(c, period, limit, offset, entries)
			}
		}
	}

	var entries []models.LeaderboardEntry
	var err error
	switch period {
	case "month":
		entries, err = bc.commissions.TotalsSince(ctx, time.Now().AddDate(0, 0, -30), limit, offset)
	case "week":
		entries, err = bc.commissions.TotalsSince(ctx, time.Now().AddDate(0, 0, -7), limit, offset)
	default:
		entries, err = bc.brokers.TopByCommission(ctx, limit, offset)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to build leaderboard",
		})
	}

	if bc.redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := bc.redis.Set(ctx, cacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache leaderboard page %s: %v", cacheKey, err)
			}
		}
	}

	return bc.leaderboardResponse(c, period, limit, offset, entries)
}

func (bc *BrokerController) leaderboardResponse(c echo.Context, period string, limit, offset int64, entries []models.LeaderboardEntry) error {
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Leaderboard fetched successfully",
		Data: map[string]interface{}{
			"period": period,
			"limit":  limit,
			"offset": offset,
			"items":  entries,
		},
	})
}

// brokerFromHeader resolves the broker from the wallet address header. The
// returned error is a ready JSON response.
func (bc *BrokerController) brokerFromHeader(ctx context.Context, c echo.Context) (*models.Broker, error) {
	wallet := c.Request().Header.Get(WalletHeader)
	if wallet == "" {
		return nil, c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Wallet address header is required",
		})
	}

	broker, err := bc.brokers.FindByWallet(ctx, wallet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Broker not found",
			})
		}
		return nil, c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}
	return broker, nil
}

func (bc *BrokerController) referralLink(code string) string {
	return fmt.Sprintf("%s/?ref=%s", bc.baseURL, code)
}

// generateReferralQRCode creates a QR code image for a referral link
func (bc *BrokerController) generateReferralQRCode(referralCode string) (string, error) {
	qrCode, err := qr.Encode(bc.referralLink(referralCode), qr.M, qr.Auto)
	if err != nil {
		return "", err
	}

	// Scale the QR code to a reasonable size (300x300 pixels)
	qrCode, err = barcode.Scale(qrCode, 300, 300)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// parsePagination reads limit/offset query params with sane bounds
func parsePagination(c echo.Context, defaultLimit int64) (int64, int64) {
	limit := defaultLimit
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}

	var offset int64
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		if parsed, err := strconv.ParseInt(offsetStr, 10, 64); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
