package service

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/internal/utils"
	"github.com/MKhiriev/go-tour-booking/internal/validators"
	"github.com/MKhiriev/go-tour-booking/models"
)

type tourService struct {
	*resourceService[models.Tour]

	reviews *reviewService
}

// NewTourService constructs a [TourService]. Single tours are returned with
// their reviews.
func NewTourService(tours store.TourRepository, reviews store.ReviewRepository, users store.UserRepository, validator validators.Validator, logger *logger.Logger) TourService {
	s := &tourService{reviews: newReviewService(reviews, users, validator, logger)}
	s.resourceService = newResourceService[models.Tour](tours, validator, resourceHooks[models.Tour]{
		beforeSave:  s.beforeSave,
		populateOne: s.populateReviews,
	}, logger)
	return s
}

// beforeSave derives the slug from the name and rates new tours with the
// default average.
func (s *tourService) beforeSave(_ context.Context, tour *models.Tour, columns []string) []string {
	tour.Slug = utils.Slugify(tour.Name)

	if columns == nil {
		if tour.RatingsAverage == 0 {
			tour.RatingsAverage = models.DefaultRatingsAverage
		}
		return nil
	}

	if slices.Contains(columns, "name") && !slices.Contains(columns, "slug") {
		columns = append(columns, "slug")
	}
	return columns
}

func (s *tourService) populateReviews(ctx context.Context, tour *models.Tour) error {
	reviews, err := s.reviews.forTour(ctx, tour.ID)
	if err != nil {
		return err
	}
	tour.Reviews = reviews
	return nil
}
