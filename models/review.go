package models

import "time"

// Review is a user's rating of a tour. A user can review a tour only once.
type Review struct {
	ID        int64     `json:"id"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	TourID    int64     `json:"tour_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Version   int64     `json:"-"`

	// Author is populated on reads with the reviewer's public profile.
	Author *ReviewAuthor `json:"user,omitempty"`
}

// ReviewAuthor is the subset of [User] shown next to a review.
type ReviewAuthor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

func (r *Review) Columns() map[string]any {
	return map[string]any{
		"id":         &r.ID,
		"review":     &r.Review,
		"rating":     &r.Rating,
		"tour_id":    &r.TourID,
		"user_id":    &r.UserID,
		"created_at": &r.CreatedAt,
		"version":    &r.Version,
	}
}
