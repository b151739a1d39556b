package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Broker represents a referring broker. The aggregate counters are only ever
// mutated through atomic $inc updates triggered by registrations and recorded
// sales, never by read-modify-write from the application.
type Broker struct {
	ID                   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FullName             string             `json:"fullName" bson:"fullName"`
	Email                string             `json:"email,omitempty" bson:"email,omitempty"`
	WalletAddress        string             `json:"walletAddress,omitempty" bson:"walletAddress,omitempty"`
	ReferralCode         string             `json:"referralCode" bson:"referralCode"`
	ReferredSellersCount int                `json:"referredSellersCount" bson:"referredSellersCount"`
	TotalSalesUSD        float64            `json:"totalSalesUSD" bson:"totalSalesUSD"`
	TotalCommissionUSD   float64            `json:"totalCommissionUSD" bson:"totalCommissionUSD"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BrokerRegistrationRequest is the body of the broker registration endpoint
type BrokerRegistrationRequest struct {
	FullName      string `json:"fullName" validate:"required"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

// BrokerStats holds the aggregate figures returned by the profile endpoint
type BrokerStats struct {
	TotalSalesUSD      float64 `json:"total_sales_usd"`
	TotalCommissionUSD float64 `json:"total_commission_usd"`
	ActiveSellers      int     `json:"active_sellers"`
}

// LeaderboardEntry is one row of the broker leaderboard
type LeaderboardEntry struct {
	Rank               int                `json:"rank"`
	BrokerID           primitive.ObjectID `json:"brokerId" bson:"_id"`
	FullName           string             `json:"fullName" bson:"fullName"`
	ReferralCode       string             `json:"referralCode" bson:"referralCode"`
	TotalSalesUSD      float64            `json:"totalSalesUSD" bson:"totalSalesUSD"`
	TotalCommissionUSD float64            `json:"totalCommissionUSD" bson:"totalCommissionUSD"`
	SalesCount         int                `json:"salesCount" bson:"salesCount"`
}
