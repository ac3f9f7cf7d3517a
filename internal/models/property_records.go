package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PropertyDetails is the one-per-property physical description.
type PropertyDetails struct {
	ID           int       `json:"id"`
	PropertyID   int       `json:"property_id"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Floors       int       `json:"floors"`
	Buildings    int       `json:"buildings"`
	Observations string    `json:"observations"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PropertyDetailsRequest struct {
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`
	Floors       int    `json:"floors"`
	Buildings    int    `json:"buildings"`
	Observations string `json:"observations"`
}

// PropertyLaw is a legal charge or regulation attached to a property.
type PropertyLaw struct {
	ID             int             `json:"id"`
	PropertyID     int             `json:"property_id"`
	PropertyName   string          `json:"property_name,omitempty"`
	EntityName     string          `json:"entity_name"`
	DocumentURL    string          `json:"document_url,omitempty"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	LegalNumber    string          `json:"legal_number"`
	IsPaid         bool            `json:"is_paid"`
	CreatedAt      time.Time       `json:"created_at"`
}

type PropertyLawRequest struct {
	PropertyID     int             `json:"property_id"`
	EntityName     string          `json:"entity_name"`
	DocumentURL    string          `json:"document_url"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	LegalNumber    string          `json:"legal_number"`
	IsPaid         bool            `json:"is_paid"`
}

type PropertyLawFilter struct {
	PropertyID int
	IsPaid     *bool
}

const (
	ConditionNew  = "new"
	ConditionGood = "good"
	ConditionFair = "fair"
	ConditionPoor = "poor"
)

var EnserConditions = []string{ConditionNew, ConditionGood, ConditionFair, ConditionPoor}

// Enser is a furniture or appliance catalogue entry.
type Enser struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Condition string          `json:"condition"`
}

type EnserRequest struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Condition string          `json:"condition"`
}

type EnserFilter struct {
	Condition    string
	NameContains string
}

// InventoryItem places a catalogue entry in a property.
type InventoryItem struct {
	ID         int             `json:"id"`
	PropertyID int             `json:"property_id"`
	EnserID    int             `json:"enser_id"`
	EnserName  string          `json:"enser_name"`
	Condition  string          `json:"condition"`
	Price      decimal.Decimal `json:"price"`
	MediaURL   string          `json:"media_url,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type InventoryItemRequest struct {
	EnserID  int    `json:"enser_id"`
	MediaURL string `json:"media_url"`
}
