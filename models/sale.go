package models

// SaleRecordRequest is the body of the sale recording endpoint.
// ReferralCode, when supplied and resolvable, overrides the seller's stored
// broker attribution for this sale only. TransactionHash is the caller's
// unique external reference; duplicate hashes are rejected so retries cannot
// create duplicate commission rows.
type SaleRecordRequest struct {
	SellerWallet    string  `json:"sellerWallet" validate:"required"`
	SaleAmountUSD   float64 `json:"saleAmountUSD" validate:"required,gt=0"`
	Category        string  `json:"category,omitempty"`
	PayMethod       string  `json:"payMethod,omitempty"`
	Auction         bool    `json:"auction,omitempty"`
	TransactionHash string  `json:"transactionHash,omitempty"`
	ReferralCode    string  `json:"referralCode,omitempty"`
}
