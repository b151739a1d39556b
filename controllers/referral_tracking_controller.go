// controllers/referral_tracking_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/luxoria/luxoria_backend/models"
	"github.com/luxoria/luxoria_backend/services"
)

// visitorCookieName carries an anonymous visitor key so repeat clicks from
// the same browser can be correlated in the click log.
const visitorCookieName = "lux_vid"

// 1x1 transparent GIF served by the tracking pixel
var trackingPixelGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3B,
}

type ReferralTrackingController struct {
	brokers BrokerStore
	clicks  ClickStore
}

func NewReferralTrackingController(brokers BrokerStore, clicks ClickStore) *ReferralTrackingController {
	return &ReferralTrackingController{brokers: brokers, clicks: clicks}
}

// HandleTrackingPixel serves the referral tracking pixel. It records the
// click and sets the attribution cookies, but the image is returned with
// HTTP 200 no matter what fails internally: a broken pixel on a landing
// page is worse than a lost click.
func (tc *ReferralTrackingController) HandleTrackingPixel(c echo.Context) error {
	code := c.QueryParam("ref")
	if code != "" {
		for _, cookie := range services.NewReferralCookies(code) {
			c.SetCookie(cookie)
		}
		tc.recordClick(c, code)
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, "image/gif", trackingPixelGIF)
}

// HandleTrackClick is the JSON variant used by the web app
func (tc *ReferralTrackingController) HandleTrackClick(c echo.Context) error {
	var req models.ReferralTrackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.ReferralCode == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Referral code is required",
		})
	}

	for _, cookie := range services.NewReferralCookies(req.ReferralCode) {
		c.SetCookie(cookie)
	}
	tc.recordClick(c, req.ReferralCode)

	// An unknown code is not an error for the caller; the click simply
	// carries no attribution weight
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Referral click tracked",
		Data:    map[string]interface{}{"success": true},
	})
}

// recordClick appends a click to the log. Best-effort: failures are logged
// and swallowed.
func (tc *ReferralTrackingController) recordClick(c echo.Context, code string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	broker, err := tc.brokers.FindByReferralCode(ctx, code)
	if err != nil {
		log.Printf("Tracking click for unknown referral code %q: %v", code, err)
		return
	}

	click := &models.ReferralClick{
		ReferralCode: code,
		BrokerID:     broker.ID,
		VisitorKey:   tc.visitorKey(c),
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		ClickedAt:    time.Now(),
	}

	if err := tc.clicks.Insert(ctx, click); err != nil {
		log.Printf("Failed to record referral click for code %q: %v", code, err)
	}
}

// visitorKey returns the anonymous visitor key, minting one if the browser
// does not carry it yet.
func (tc *ReferralTrackingController) visitorKey(c echo.Context) string {
	if cookie, err := c.Cookie(visitorCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	key := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     visitorCookieName,
		Value:    key,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	return key
}
