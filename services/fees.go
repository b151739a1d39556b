package services

import (
	"errors"
	"math"
)

// Category identifies the asset category of a sale. Values outside the
// closed set normalize to CategoryDefault rather than being rejected.
type Category string

const (
	CategoryJewelry    Category = "jewelry"
	CategoryCars       Category = "cars"
	CategoryRealEstate Category = "real_estate"
	CategoryArt        Category = "art"
	CategoryWatches    Category = "watches"
	CategoryDefault    Category = "default"
)

// PayMethod identifies how the buyer paid. Unknown values normalize to
// PayMethodOther and carry no fee adjustment.
type PayMethod string

const (
	PayMethodCrypto PayMethod = "crypto"
	PayMethodFiat   PayMethod = "fiat"
	PayMethodOther  PayMethod = "other"
)

// Base platform fee rate per category
var baseFeeRates = map[Category]float64{
	CategoryJewelry:    0.055,
	CategoryCars:       0.06,
	CategoryRealEstate: 0.045,
	CategoryArt:        0.065,
	CategoryWatches:    0.05,
	CategoryDefault:    0.05,
}

// Multiplicative adjustments, applied in fixed order: category -> payment -> auction
const (
	cryptoDiscount    = 0.90
	fiatSurcharge     = 1.10
	auctionMultiplier = 1.20
)

// ErrInvalidPrice is returned when the sale price is not a positive number
var ErrInvalidPrice = errors.New("price must be a positive number")

// ParseCategory normalizes a free-form category string to a Category
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryJewelry, CategoryCars, CategoryRealEstate, CategoryArt, CategoryWatches:
		return Category(s)
	default:
		return CategoryDefault
	}
}

// ParsePayMethod normalizes a free-form payment method string to a PayMethod
func ParsePayMethod(s string) PayMethod {
	switch PayMethod(s) {
	case PayMethodCrypto, PayMethodFiat:
		return PayMethod(s)
	default:
		return PayMethodOther
	}
}

// FeeQuote is the platform fee breakdown for a single sale
type FeeQuote struct {
	PlatformFee float64  `json:"platformFee"`
	FeeRate     float64  `json:"feeRate"`
	BuyerFee    float64  `json:"buyerFee"`
	SellerFee   float64  `json:"sellerFee"`
	Notes       []string `json:"notes"`
}

// QuoteFee computes the platform fee for a sale. The effective rate is the
// category base rate adjusted multiplicatively for payment method and auction,
// in that order. The combined rate is intentionally not clamped.
func QuoteFee(category Category, price float64, method PayMethod, auction bool) (*FeeQuote, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, ErrInvalidPrice
	}

	rate, ok := baseFeeRates[category]
	if !ok {
		rate = baseFeeRates[CategoryDefault]
	}

	notes := []string{"Base rate for category '" + string(category) + "'"}

	switch method {
	case PayMethodCrypto:
		rate *= cryptoDiscount
		notes = append(notes, "10% crypto payment discount applied")
	case PayMethodFiat:
		rate *= fiatSurcharge
		notes = append(notes, "10% fiat payment surcharge applied")
	}

	if auction {
		rate *= auctionMultiplier
		notes = append(notes, "20% auction premium applied")
	}

	platformFee := price * rate

	// Fee split: buyer and seller each cover half of the platform fee
	buyerFee := Round2(platformFee / 2)
	sellerFee := Round2(platformFee - buyerFee)

	return &FeeQuote{
		PlatformFee: platformFee,
		FeeRate:     rate,
		BuyerFee:    buyerFee,
		SellerFee:   sellerFee,
		Notes:       notes,
	}, nil
}

// DefaultCommissionRate is the broker's share of the platform fee when no
// rate is configured.
const DefaultCommissionRate = 0.30

// CommissionCalculator computes a broker's commission from a platform fee.
// The rate is fixed at construction; it is never read from the environment
// inside the calculation.
type CommissionCalculator struct {
	rate float64
}

// NewCommissionCalculator creates a calculator with the given commission
// rate, falling back to DefaultCommissionRate for non-positive values.
func NewCommissionCalculator(rate float64) *CommissionCalculator {
	if rate <= 0 {
		rate = DefaultCommissionRate
	}
	return &CommissionCalculator{rate: rate}
}

// Rate returns the configured commission rate
func (cc *CommissionCalculator) Rate() float64 {
	return cc.rate
}

// Commission returns the broker commission for a platform fee, rounded to
// two decimal places. The commission is a share of the platform fee, never
// of the gross sale amount.
func (cc *CommissionCalculator) Commission(platformFee float64) float64 {
	return Round2(platformFee * cc.rate)
}

// Round2 rounds a currency amount to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
