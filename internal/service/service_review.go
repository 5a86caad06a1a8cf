package service

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/internal/validators"
	"github.com/MKhiriev/go-tour-booking/models"
)

type reviewService struct {
	*resourceService[models.Review]

	reviews store.ReviewRepository
	users   store.UserRepository
}

// NewReviewService constructs a [ReviewService]. Reviews are returned with
// their author, and every write refreshes the rating aggregates of the
// affected tours.
func NewReviewService(reviews store.ReviewRepository, users store.UserRepository, validator validators.Validator, logger *logger.Logger) ReviewService {
	return newReviewService(reviews, users, validator, logger)
}

func newReviewService(reviews store.ReviewRepository, users store.UserRepository, validator validators.Validator, logger *logger.Logger) *reviewService {
	s := &reviewService{reviews: reviews, users: users}
	s.resourceService = newResourceService[models.Review](reviews, validator, resourceHooks[models.Review]{
		afterWrite:   s.recalculateRatings,
		populateOne:  s.populateAuthor,
		populateMany: s.populateAuthors,
	}, logger)
	return s
}

func (s *reviewService) recalculateRatings(ctx context.Context, reviews ...models.Review) error {
	var tourIDs []int64
	for _, r := range reviews {
		if !slices.Contains(tourIDs, r.TourID) {
			tourIDs = append(tourIDs, r.TourID)
		}
	}

	for _, id := range tourIDs {
		if err := s.reviews.RecalculateTourRatings(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// forTour returns every review of a tour, oldest first, with authors.
func (s *reviewService) forTour(ctx context.Context, tourID int64) ([]models.Review, error) {
	reviews, err := s.reviews.Find(ctx, models.Query{
		Filters: []models.Filter{{Field: "tour_id", Op: models.OpEq, Value: tourID}},
		Sort:    []models.SortKey{{Field: "created_at"}},
	})
	if err != nil {
		return nil, err
	}

	if len(reviews) > 0 {
		if err = s.populateAuthors(ctx, reviews); err != nil {
			return nil, err
		}
	}
	return reviews, nil
}

func (s *reviewService) populateAuthor(ctx context.Context, review *models.Review) error {
	reviews := []models.Review{*review}
	if err := s.populateAuthors(ctx, reviews); err != nil {
		return err
	}
	*review = reviews[0]
	return nil
}

// populateAuthors loads the name and photo of every author with one query.
// Reviews projected without user_id are left untouched.
func (s *reviewService) populateAuthors(ctx context.Context, reviews []models.Review) error {
	ids := make([]any, 0, len(reviews))
	for _, r := range reviews {
		if r.UserID != 0 && !slices.Contains(ids, any(r.UserID)) {
			ids = append(ids, r.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	users, err := s.users.Find(ctx, models.Query{
		Filters: []models.Filter{{Field: "id", Op: models.OpIn, Value: ids}},
		Fields:  []string{"id", "name", "photo"},
	})
	if err != nil {
		return err
	}

	authors := make(map[int64]*models.ReviewAuthor, len(users))
	for _, u := range users {
		authors[u.ID] = &models.ReviewAuthor{ID: u.ID, Name: u.Name, Photo: u.Photo}
	}

	for i := range reviews {
		reviews[i].Author = authors[reviews[i].UserID]
	}
	return nil
}
