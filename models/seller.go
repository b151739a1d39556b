package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seller represents a seller account created at first wallet connection.
// ReferredBy is set once during the attribution lock window and is immutable
// while ReferralLockedUntil is in the future.
type Seller struct {
	ID                  primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	WalletAddress       string              `json:"walletAddress" bson:"walletAddress"`
	ReferredBy          *primitive.ObjectID `json:"referredBy,omitempty" bson:"referredBy,omitempty"`
	ReferralLockedUntil *time.Time          `json:"referralLockedUntil,omitempty" bson:"referralLockedUntil,omitempty"`
	CreatedAt           time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// SellerRegistrationRequest is the body of the seller registration endpoint.
// The referral code itself travels in the lux_ref cookie, not the body.
type SellerRegistrationRequest struct {
	WalletAddress string `json:"wallet_address"`
}
