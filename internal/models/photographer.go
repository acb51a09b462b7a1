package models

import "time"

// Photographer is a service-provider profile in the marketplace directory.
type Photographer struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Name       string    `db:"name" json:"name"`
	Specialty  string    `db:"specialty" json:"specialty"`
	Location   string    `db:"location" json:"location"`
	Bio        string    `db:"bio" json:"bio"`
	HourlyRate float64   `db:"hourly_rate" json:"hourly_rate"`
	Rating     float64   `db:"rating" json:"rating"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// PhotographerFilter captures criteria for listing photographers.
type PhotographerFilter struct {
	Specialty string
	Location  string
	Search    string
	Page      int
	PageSize  int
}

// UserFavorite links a customer to a saved photographer.
type UserFavorite struct {
	UserID         string    `db:"user_id" json:"user_id"`
	PhotographerID string    `db:"photographer_id" json:"photographer_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
