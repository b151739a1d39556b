package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tokenization status values for a listed asset. Actual on-ledger minting is
// performed by an external XRPL service; this backend only tracks the request.
const (
	TokenizationStatusPending   = "pending"
	TokenizationStatusRequested = "requested"
)

// Asset is a luxury asset listed by a seller
type Asset struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SellerID           primitive.ObjectID `json:"sellerId" bson:"sellerId"`
	Title              string             `json:"title" bson:"title"`
	Category           string             `json:"category" bson:"category"`
	PriceUSD           float64            `json:"priceUSD" bson:"priceUSD"`
	TokenizationStatus string             `json:"tokenizationStatus" bson:"tokenizationStatus"`
	TokenizationReqAt  *time.Time         `json:"tokenizationRequestedAt,omitempty" bson:"tokenizationRequestedAt,omitempty"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AssetCreateRequest is the body of the asset listing endpoint
type AssetCreateRequest struct {
	SellerWallet string  `json:"sellerWallet" validate:"required"`
	Title        string  `json:"title" validate:"required"`
	Category     string  `json:"category,omitempty"`
	PriceUSD     float64 `json:"priceUSD" validate:"required,gt=0"`
}
