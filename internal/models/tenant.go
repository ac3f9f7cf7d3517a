package models

import (
	"strings"
	"time"
)

type Tenant struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email,omitempty"` // empty when unknown
	Phone1       string    `json:"phone1"`
	Phone2       string    `json:"phone2,omitempty"`
	Observations string    `json:"observations,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (t Tenant) FullName() string {
	return strings.TrimSpace(t.Name + " " + t.LastName)
}

type TenantRequest struct {
	Name         string `json:"name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone1       string `json:"phone1"`
	Phone2       string `json:"phone2"`
	Observations string `json:"observations"`
}
