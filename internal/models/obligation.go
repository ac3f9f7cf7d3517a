package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Obligation types seeded by the schema; admins may add more.
const (
	ObligationTax       = "tax"
	ObligationInsurance = "insurance"
	ObligationFee       = "fee"
)

type ObligationType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var Temporalities = []string{"weekly", "monthly", "bimonthly", "quarterly", "biannual", "annual", "one_time"}

type Obligation struct {
	ID             int             `json:"id"`
	PropertyID     int             `json:"property_id"`
	PropertyName   string          `json:"property_name,omitempty"`
	ObligationType string          `json:"obligation_type"`
	EntityName     string          `json:"entity_name"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        time.Time       `json:"due_date"`
	Temporality    string          `json:"temporality"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (o Obligation) Balance() decimal.Decimal {
	return o.Amount.Sub(o.TotalPaid)
}

type ObligationRequest struct {
	PropertyID     int             `json:"property_id"`
	ObligationType string          `json:"obligation_type"`
	EntityName     string          `json:"entity_name"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        string          `json:"due_date"`
	Temporality    string          `json:"temporality"`
}

// ObligationFilter mirrors the list query parameters; zero values are ignored.
type ObligationFilter struct {
	PropertyID     int
	DueDateFrom    *time.Time
	DueDateTo      *time.Time
	AmountMin      *decimal.Decimal
	AmountMax      *decimal.Decimal
	EntityContains string
	Temporality    string
}

type ObligationPayment struct {
	ID                int             `json:"id"`
	ObligationID      int             `json:"obligation_id"`
	PaymentMethodID   int             `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method_name,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentDate       time.Time       `json:"payment_date"`
	VoucherRef        string          `json:"voucher_ref,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

type ObligationPaymentRequest struct {
	PaymentMethodID int             `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     string          `json:"payment_date"`
	VoucherRef      string          `json:"voucher_ref"`
}

// PaymentFilter applies to both rental and obligation payment lists.
type PaymentFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	AmountMin *decimal.Decimal
	AmountMax *decimal.Decimal
}
