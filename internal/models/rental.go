package models

import (
	"time"

	"github.com/shopspring/decimal"

	"property-backend/internal/booking"
)

const (
	RentalTypeMonthly = "monthly"
	RentalTypeDaily   = "daily"
	RentalTypeAirbnb  = "airbnb"
)

type Rental struct {
	ID           int             `json:"id"`
	PropertyID   int             `json:"property_id"`
	PropertyName string          `json:"property_name,omitempty"`
	TenantID     *int            `json:"tenant_id"`
	TenantName   string          `json:"tenant_name,omitempty"`
	TenantEmail  string          `json:"tenant_email,omitempty"`
	RentalType   string          `json:"rental_type"`
	CheckIn      *time.Time      `json:"check_in"`
	CheckOut     *time.Time      `json:"check_out"`
	Amount       decimal.Decimal `json:"amount"`
	PeopleCount  int             `json:"people_count"`
	Notes        string          `json:"notes,omitempty"`
	Status       string          `json:"status"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Period projects the rental onto the fields the booking guard validates.
func (r Rental) Period() booking.Period {
	return booking.Period{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		TenantID:   r.TenantID,
		TenantName: r.TenantName,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Status:     booking.Status(r.Status),
	}
}

func (r Rental) Balance() decimal.Decimal {
	return r.Amount.Sub(r.TotalPaid)
}

// RentalRequest carries dates as YYYY-MM-DD strings; empty means unset.
type RentalRequest struct {
	PropertyID  int             `json:"property_id"`
	TenantID    *int            `json:"tenant_id"`
	RentalType  string          `json:"rental_type"`
	CheckIn     string          `json:"check_in"`
	CheckOut    string          `json:"check_out"`
	Amount      decimal.Decimal `json:"amount"`
	PeopleCount int             `json:"people_count"`
	Notes       string          `json:"notes"`
	Status      string          `json:"status"`
}

type RentalFilter struct {
	PropertyID int
	TenantID   int
	Status     string
}

type RentalPayment struct {
	ID                int             `json:"id"`
	RentalID          int             `json:"rental_id"`
	PaymentMethodID   int             `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method_name,omitempty"`
	Location          string          `json:"location"`
	PaymentDate       time.Time       `json:"payment_date"`
	Amount            decimal.Decimal `json:"amount"`
	VoucherRef        string          `json:"voucher_ref,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

type RentalPaymentRequest struct {
	PaymentMethodID int             `json:"payment_method_id"`
	Location        string          `json:"location"`
	PaymentDate     string          `json:"payment_date"`
	Amount          decimal.Decimal `json:"amount"`
	VoucherRef      string          `json:"voucher_ref"`
}
