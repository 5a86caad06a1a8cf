package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/models"
)

type reviewRepository struct {
	*resourceRepository[models.Review, *models.Review]
}

// NewReviewRepository constructs a [ReviewRepository] backed by the provided
// database connection and logger.
func NewReviewRepository(db *DB, logger *logger.Logger) ReviewRepository {
	return &reviewRepository{
		resourceRepository: newResourceRepository[models.Review](db, ReviewSchema(), logger),
	}
}

// RecalculateTourRatings refreshes the rating aggregates of a tour. A tour
// left without reviews ends up with zero ratings and a zero average.
func (r *reviewRepository) RecalculateTourRatings(ctx context.Context, tourID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, recalculateTourRatings, tourID); err != nil {
		log.Err(err).Str("func", "*reviewRepository.RecalculateTourRatings").Int64("tour_id", tourID).Msg("failed to recalculate ratings")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, translateError(err))
	}

	return nil
}

// NewTourRepository constructs a [TourRepository] over the tours table.
func NewTourRepository(db *DB, logger *logger.Logger) TourRepository {
	return newResourceRepository[models.Tour](db, TourSchema(), logger)
}

// NewBookingRepository constructs a [BookingRepository] over the bookings table.
func NewBookingRepository(db *DB, logger *logger.Logger) BookingRepository {
	return newResourceRepository[models.Booking](db, BookingSchema(), logger)
}
