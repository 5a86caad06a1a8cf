package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/mock"
	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/internal/validators"
	"github.com/MKhiriev/go-tour-booking/models"
)

func newTestReviewSvc(t *testing.T, ctrl *gomock.Controller) (ReviewService, *mock.MockReviewRepository, *mock.MockUserRepository) {
	t.Helper()
	reviews := mock.NewMockReviewRepository(ctrl)
	users := mock.NewMockUserRepository(ctrl)
	reviews.EXPECT().Schema().Return(store.ReviewSchema()).AnyTimes()

	return NewReviewService(reviews, users, validators.NewResourceValidator(), logger.Nop()), reviews, users
}

func TestReviewService_Create_RecalculatesTourRatings(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, reviews, _ := newTestReviewSvc(t, ctrl)
	ctx := context.Background()

	input := models.Review{Review: "Amazing views", Rating: 5, TourID: 4, UserID: 2}

	gomock.InOrder(
		reviews.EXPECT().Create(ctx, input).DoAndReturn(
			func(_ context.Context, r models.Review) (models.Review, error) {
				r.ID = 10
				return r, nil
			},
		),
		reviews.EXPECT().RecalculateTourRatings(ctx, int64(4)).Return(nil),
	)

	got, err := svc.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
}

func TestReviewService_Create_DuplicateReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, reviews, _ := newTestReviewSvc(t, ctrl)

	dup := &store.DuplicateKeyError{Field: "tour_id, user_id", Value: "4, 2"}
	reviews.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.Review{}, dup)

	_, err := svc.Create(context.Background(), models.Review{Review: "Again", Rating: 4, TourID: 4, UserID: 2})

	var dupErr *store.DuplicateKeyError
	assert.ErrorAs(t, err, &dupErr)
}

func TestReviewService_Create_RatingOutOfRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestReviewSvc(t, ctrl)

	_, err := svc.Create(context.Background(), models.Review{Review: "Meh", Rating: 6, TourID: 4, UserID: 2})

	var verrs validators.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, validators.ValidationErrors{"Rating must be between 1 and 5"}, verrs)
}

func TestReviewService_Update_RecalculatesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, reviews, _ := newTestReviewSvc(t, ctrl)
	ctx := context.Background()

	stored := models.Review{ID: 10, Review: "Good", Rating: 3, TourID: 4, UserID: 2}

	reviews.EXPECT().FindByID(ctx, int64(10)).Return(stored, nil)
	reviews.EXPECT().Update(ctx, int64(10), gomock.Any(), []string{"rating"}).DoAndReturn(
		func(_ context.Context, _ int64, r models.Review, _ []string) (models.Review, error) {
			assert.Equal(t, 5, r.Rating)
			return r, nil
		},
	)
	// before and after belong to the same tour
	reviews.EXPECT().RecalculateTourRatings(ctx, int64(4)).Return(nil).Times(1)

	got, err := svc.Update(ctx, 10, []byte(`{"rating":5}`))
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
}

func TestReviewService_Delete_RecalculatesTourRatings(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, reviews, _ := newTestReviewSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		reviews.EXPECT().FindByID(ctx, int64(10)).Return(models.Review{ID: 10, TourID: 4}, nil),
		reviews.EXPECT().Delete(ctx, int64(10)).Return(nil),
		reviews.EXPECT().RecalculateTourRatings(ctx, int64(4)).Return(nil),
	)

	assert.NoError(t, svc.Delete(ctx, 10))
}

func TestReviewService_Delete_RecalculateErrorKeepsDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, reviews, _ := newTestReviewSvc(t, ctrl)

	boom := errors.New("deadlock")
	reviews.EXPECT().FindByID(gomock.Any(), int64(10)).Return(models.Review{ID: 10, TourID: 4}, nil)
	reviews.EXPECT().Delete(gomock.Any(), int64(10)).Return(nil)
	reviews.EXPECT().RecalculateTourRatings(gomock.Any(), int64(4)).Return(boom)

	assert.NoError(t, svc.Delete(context.Background(), 10))
}

func TestReviewService_Create_RecalculateErrorReturnsReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, reviews, _ := newTestReviewSvc(t, ctrl)

	input := models.Review{Review: "Amazing views", Rating: 5, TourID: 4, UserID: 2}
	reviews.EXPECT().Create(gomock.Any(), input).DoAndReturn(
		func(_ context.Context, r models.Review) (models.Review, error) {
			r.ID = 10
			return r, nil
		},
	)
	reviews.EXPECT().RecalculateTourRatings(gomock.Any(), int64(4)).Return(errors.New("deadlock"))

	got, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
}

func TestReviewService_List_NestedTourScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, reviews, users := newTestReviewSvc(t, ctrl)
	ctx := context.Background()

	scope := models.Filter{Field: "tour_id", Op: models.OpEq, Value: int64(4)}

	reviews.EXPECT().Find(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, q models.Query) ([]models.Review, error) {
			assert.Contains(t, q.Filters, scope)
			return []models.Review{{ID: 1, TourID: 4, UserID: 2}}, nil
		},
	)
	users.EXPECT().Find(ctx, gomock.Any()).Return([]models.User{{ID: 2, Name: "Jane Doe", Photo: "jane.jpg"}}, nil)

	got, _, err := svc.List(ctx, url.Values{}, scope)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, &models.ReviewAuthor{ID: 2, Name: "Jane Doe", Photo: "jane.jpg"}, got[0].Author)
}

func TestReviewService_List_ProjectionWithoutUserSkipsAuthors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, reviews, _ := newTestReviewSvc(t, ctrl)

	reviews.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]models.Review{{ID: 1, Rating: 5}}, nil)

	got, _, err := svc.List(context.Background(), url.Values{"fields": {"rating"}})
	require.NoError(t, err)
	assert.Nil(t, got[0].Author)
}

func TestReviewService_Get_AuthorDeleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, reviews, users := newTestReviewSvc(t, ctrl)

	reviews.EXPECT().FindByID(gomock.Any(), int64(1)).Return(models.Review{ID: 1, TourID: 4, UserID: 2}, nil)
	users.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil)

	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got.Author)
}
