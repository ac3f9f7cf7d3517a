package models

import "github.com/shopspring/decimal"

// MonthlyTerms holds the deposit of a monthly rental.
type MonthlyTerms struct {
	ID            int             `json:"id"`
	RentalID      int             `json:"rental_id"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	IsRefundable  bool            `json:"is_refundable"`
	FilesURL      string          `json:"files_url,omitempty"`
}

type MonthlyTermsRequest struct {
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	IsRefundable  *bool           `json:"is_refundable"`
	FilesURL      string          `json:"files_url"`
}

// AirbnbTerms tracks platform payout for an airbnb rental.
type AirbnbTerms struct {
	ID       int  `json:"id"`
	RentalID int  `json:"rental_id"`
	IsPaid   bool `json:"is_paid"`
}

type AirbnbTermsRequest struct {
	IsPaid bool `json:"is_paid"`
}
