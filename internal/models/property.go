package models

import "time"

type Property struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Use          string     `json:"use"`
	Address      string     `json:"address"`
	Location     string     `json:"location"`
	ZipCode      string     `json:"zip_code"`
	BuildingType string     `json:"building_type"`
	City         string     `json:"city"`
	DeletedAt    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type PropertyRequest struct {
	Name         string `json:"name"`
	Use          string `json:"use"`
	Address      string `json:"address"`
	Location     string `json:"location"`
	ZipCode      string `json:"zip_code"`
	BuildingType string `json:"building_type"`
	City         string `json:"city"`
}
