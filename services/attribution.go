package services

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/luxoria/luxoria_backend/models"
)

// Referral cookie names and lifetimes. The 90-day cookie carries the
// attribution; the 7-day cookie is a short-lived first-touch marker used by
// the web front end.
const (
	ReferralCookieName      = "lux_ref"
	ReferralShortCookieName = "lux_ref_7"
	ReferralCookieMaxAge    = 90 * 24 * time.Hour
	ReferralShortMaxAge     = 7 * 24 * time.Hour
)

// AttributionLockWindow is how long a seller's broker attribution stays
// locked after it is set.
const AttributionLockWindow = 90 * 24 * time.Hour

// AttributionOutcome enumerates how a referral code resolution ended.
// Unresolvable codes are a soft failure: the caller proceeds unattributed
// but the two unattributed paths stay distinguishable.
type AttributionOutcome string

const (
	OutcomeAttributed              AttributionOutcome = "attributed"
	OutcomeUnattributedNoCode      AttributionOutcome = "unattributed_no_code"
	OutcomeUnattributedInvalidCode AttributionOutcome = "unattributed_invalid_code"
)

// AttributionResult is the outcome of resolving a referral code to a broker
type AttributionResult struct {
	Outcome AttributionOutcome `json:"outcome"`
	Broker  *models.Broker     `json:"-"`
}

// Attributed reports whether a broker was resolved
func (r *AttributionResult) Attributed() bool {
	return r.Outcome == OutcomeAttributed && r.Broker != nil
}

// BrokerFinder resolves referral codes to brokers
type BrokerFinder interface {
	FindByReferralCode(ctx context.Context, code string) (*models.Broker, error)
}

// AttributionService resolves referral codes into broker attributions
type AttributionService struct {
	brokers BrokerFinder
}

// NewAttributionService creates a new attribution service
func NewAttributionService(brokers BrokerFinder) *AttributionService {
	return &AttributionService{brokers: brokers}
}

// Resolve maps a referral code to a broker. An empty code and an unknown
// code both resolve to an unattributed result; only the outcome differs.
// Lookup errors are treated as an invalid code and logged, never surfaced.
func (s *AttributionService) Resolve(ctx context.Context, code string) *AttributionResult {
	if code == "" {
		return &AttributionResult{Outcome: OutcomeUnattributedNoCode}
	}

	broker, err := s.brokers.FindByReferralCode(ctx, code)
	if err != nil {
		log.Printf("Referral code %q did not resolve to a broker: %v", code, err)
		return &AttributionResult{Outcome: OutcomeUnattributedInvalidCode}
	}

	return &AttributionResult{Outcome: OutcomeAttributed, Broker: broker}
}

// ReferralCodeFromRequest extracts and decodes the referral code from the
// 90-day attribution cookie. Returns "" when the cookie is absent or
// undecodable.
func ReferralCodeFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(ReferralCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	code, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		log.Printf("Failed to decode referral cookie value %q: %v", cookie.Value, err)
		return ""
	}
	return code
}

// NewReferralCookies builds the two referral cookies for a code. Values are
// URL-encoded and both cookies are SameSite=Lax.
func NewReferralCookies(code string) []*http.Cookie {
	encoded := url.QueryEscape(code)
	return []*http.Cookie{
		{
			Name:     ReferralCookieName,
			Value:    encoded,
			Path:     "/",
			MaxAge:   int(ReferralCookieMaxAge.Seconds()),
			SameSite: http.SameSiteLaxMode,
		},
		{
			Name:     ReferralShortCookieName,
			Value:    encoded,
			Path:     "/",
			MaxAge:   int(ReferralShortMaxAge.Seconds()),
			SameSite: http.SameSiteLaxMode,
		},
	}
}
