package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferralClick is one hit of the referral tracking pixel. Append-only.
type ReferralClick struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ReferralCode string             `json:"referralCode" bson:"referralCode"`
	BrokerID     primitive.ObjectID `json:"brokerId" bson:"brokerId"`
	VisitorKey   string             `json:"visitorKey,omitempty" bson:"visitorKey,omitempty"`
	IPAddress    string             `json:"ipAddress" bson:"ipAddress"`
	UserAgent    string             `json:"userAgent" bson:"userAgent"`
	ClickedAt    time.Time          `json:"clickedAt" bson:"clickedAt"`
}

// ReferralTrackRequest is the body of the POST variant of the tracking endpoint
type ReferralTrackRequest struct {
	ReferralCode string `json:"referralCode"`
}
