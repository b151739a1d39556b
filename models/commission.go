package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Commission status values. A commission is created as pending and moves to
// paid exactly once, via the admin payout endpoint.
const (
	CommissionStatusPending = "pending"
	CommissionStatusPaid    = "paid"
)

// Commission records a broker's cut of the platform fee for a single sale.
// The fee rate and commission rate in effect at recording time are captured
// on the row so historical commissions are stable against rate-table changes.
// Immutable after creation except for the pending -> paid transition.
type Commission struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	BrokerID        primitive.ObjectID `json:"brokerId" bson:"brokerId"`
	SellerID        primitive.ObjectID `json:"sellerId" bson:"sellerId"`
	SaleAmountUSD   float64            `json:"saleAmountUSD" bson:"saleAmountUSD"`
	CommissionUSD   float64            `json:"commissionUSD" bson:"commissionUSD"`
	PlatformFeeUSD  float64            `json:"platformFeeUSD" bson:"platformFeeUSD"`
	CommissionRate  float64            `json:"commissionRate" bson:"commissionRate"`
	FeeRate         float64            `json:"feeRate" bson:"feeRate"`
	Category        string             `json:"category" bson:"category"`
	PayMethod       string             `json:"payMethod" bson:"payMethod"`
	Auction         bool               `json:"auction" bson:"auction"`
	TransactionHash string             `json:"transactionHash,omitempty" bson:"transactionHash,omitempty"`
	Status          string             `json:"status" bson:"status"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	PaidAt          *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
}

// CommissionDetail is the summary of a recorded commission returned to the
// caller of the sale recording endpoint.
type CommissionDetail struct {
	ID          string  `json:"id,omitempty"`
	Amount      float64 `json:"amount"`
	PlatformFee float64 `json:"platformFee"`
	Rate        float64 `json:"rate"`
	BrokerRate  float64 `json:"brokerRate"`
}
