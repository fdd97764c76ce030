package models

import "time"

type Favorite struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ListingID int       `json:"listing_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Status    string    `json:"status"`
	ImagePath *string   `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ToggleFavoriteRequest struct {
	ListingID int `json:"listing_id"`
}

type ToggleFavoriteResult struct {
	Favorited bool `json:"favorited"`
}
