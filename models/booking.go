package models

import "time"

// Booking records that a user bought a place on a tour.
type Booking struct {
	ID     int64   `json:"id"`
	TourID int64   `json:"tour_id"`
	UserID int64   `json:"user_id"`
	Price  float64 `json:"price"`

	// Paid defaults to true when omitted on creation.
	Paid *bool `json:"paid,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	Version   int64     `json:"-"`
}

func (b *Booking) Columns() map[string]any {
	return map[string]any{
		"id":         &b.ID,
		"tour_id":    &b.TourID,
		"user_id":    &b.UserID,
		"price":      &b.Price,
		"paid":       &b.Paid,
		"created_at": &b.CreatedAt,
		"version":    &b.Version,
	}
}
