package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Repair struct {
	ID           int             `json:"id"`
	PropertyID   int             `json:"property_id"`
	PropertyName string          `json:"property_name,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	RepairDate   time.Time       `json:"repair_date"`
	Description  string          `json:"description"`
	Observation  string          `json:"observation,omitempty"`
}

type RepairRequest struct {
	PropertyID  int             `json:"property_id"`
	Cost        decimal.Decimal `json:"cost"`
	RepairDate  string          `json:"repair_date"`
	Description string          `json:"description"`
	Observation string          `json:"observation"`
}

// AlertRecord is a row of the append-only alert ledger.
type AlertRecord struct {
	ID         int       `json:"id"`
	EntityKind string    `json:"entity_kind"`
	EntityID   int       `json:"entity_id"`
	AlertKind  string    `json:"alert_kind"`
	Recipient  string    `json:"recipient"`
	SentAt     time.Time `json:"sent_at"`
}

const (
	NotificationStatusSent   = "sent"
	NotificationStatusFailed = "failed"
)

// NotificationLog records every outbound mail attempt.
type NotificationLog struct {
	ID           int       `json:"id"`
	Recipient    string    `json:"recipient"`
	Subject      string    `json:"subject"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type SendEmailRequest struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type RunAlertsRequest struct {
	AlertDays []int  `json:"alert_days"`
	Date      string `json:"date"`
}

type DashboardSummary struct {
	Properties         int             `json:"properties"`
	OccupiedRentals    int             `json:"occupied_rentals"`
	OutstandingBalance decimal.Decimal `json:"outstanding_obligation_balance"`
	MonthIncome        decimal.Decimal `json:"month_rental_income"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

// Page is a paginated list response.
type Page[T any] struct {
	Count    int `json:"count"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Results  []T `json:"results"`
}
