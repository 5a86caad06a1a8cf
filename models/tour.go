package models

import "time"

// Tour difficulty levels.
const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

// DefaultRatingsAverage is assigned to tours that have not been rated yet.
const DefaultRatingsAverage = 4.5

// Tour is a bookable trip offered by the agency.
type Tour struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Duration        int        `json:"duration"`
	MaxGroupSize    int        `json:"max_group_size"`
	Difficulty      string     `json:"difficulty"`
	RatingsAverage  float64    `json:"ratings_average"`
	RatingsQuantity int        `json:"ratings_quantity"`
	Price           float64    `json:"price"`
	PriceDiscount   *float64   `json:"price_discount,omitempty"`
	Summary         string     `json:"summary"`
	Description     string     `json:"description"`
	ImageCover      string     `json:"image_cover"`
	Images          StringList `json:"images"`
	StartDates      TimeList   `json:"start_dates"`

	// SecretTour hides the tour from every read query.
	SecretTour bool `json:"secret_tour"`

	CreatedAt time.Time `json:"created_at"`
	Version   int64     `json:"-"`

	// Reviews is populated only when a single tour is requested.
	Reviews []Review `json:"reviews,omitempty"`
}

// DurationWeeks is the virtual duration expressed in weeks.
func (t *Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

func (t *Tour) Columns() map[string]any {
	return map[string]any{
		"id":               &t.ID,
		"name":             &t.Name,
		"slug":             &t.Slug,
		"duration":         &t.Duration,
		"max_group_size":   &t.MaxGroupSize,
		"difficulty":       &t.Difficulty,
		"ratings_average":  &t.RatingsAverage,
		"ratings_quantity": &t.RatingsQuantity,
		"price":            &t.Price,
		"price_discount":   &t.PriceDiscount,
		"summary":          &t.Summary,
		"description":      &t.Description,
		"image_cover":      &t.ImageCover,
		"images":           &t.Images,
		"start_dates":      &t.StartDates,
		"secret_tour":      &t.SecretTour,
		"created_at":       &t.CreatedAt,
		"version":          &t.Version,
	}
}
