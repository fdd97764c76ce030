package models

import (
	"time"
)

// Listing statuses. A listing starts as a draft and may only be published
// once title, positive price, coordinates and at least one photo are present.
const (
	ListingStatusDraft     = "draft"
	ListingStatusPublished = "published"
)

type Listing struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address,omitempty"`
	Price       float64    `json:"price"`
	Currency    string     `json:"currency"`
	Deposit     float64    `json:"deposit"`
	Status      string     `json:"status"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Images      []Image    `json:"images,omitempty"`
	DistanceKm  *float64   `json:"distance_km,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Image is one stored photo; the images column keeps an ordered JSON array.
type Image struct {
	Path string `json:"path"`
}

// ListingFilter carries the search parameters of POST /listing/filtered.
// Lat/Lng/RadiusKm enable the near-me mode.
type ListingFilter struct {
	PriceFrom *float64 `json:"price_from,omitempty"`
	PriceTo   *float64 `json:"price_to,omitempty"`
	Query     string   `json:"query,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	RadiusKm  *float64 `json:"radius_km,omitempty"`
	Page      int      `json:"page"`
	PageSize  int      `json:"page_size"`
}
