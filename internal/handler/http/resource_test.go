package http

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/models"
)

var staffUser = models.User{ID: 1, Name: "Admin", Role: models.RoleAdmin}

func TestResource_CreateOne(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.loggedInAs(staffUser)
	client := newTestClient(t, h)

	ts.tours.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tour models.Tour) (models.Tour, error) {
			assert.Equal(t, "The Snow Adventurer", tour.Name)
			assert.Equal(t, 997.0, tour.Price)
			tour.ID = 12
			return tour, nil
		},
	)

	res, err := client.R().SetAuthToken(testToken).
		SetBody(map[string]any{"name": "The Snow Adventurer", "price": 997}).
		Post("/api/v1/tours")
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, res.StatusCode())
	body := decodeBody(t, res)
	assert.Equal(t, models.StatusSuccess, body["status"])
	doc := body["data"].(map[string]any)["doc"].(map[string]any)
	assert.EqualValues(t, 12, doc["id"])
}

func TestResource_CreateOne_InvalidJSON(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.loggedInAs(staffUser)
	client := newTestClient(t, h)

	res, err := client.R().SetAuthToken(testToken).
		SetHeader("Content-Type", "application/json").
		SetBody(`{"name":`).
		Post("/api/v1/tours")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode())
	assert.Equal(t, ErrInvalidJSON.Error(), decodeBody(t, res)["message"])
}

func TestResource_GetOne(t *testing.T) {
	h, ts := newTestHandler(t)
	client := newTestClient(t, h)

	ts.tours.EXPECT().Get(gomock.Any(), int64(5)).Return(models.Tour{
		ID:      5,
		Name:    "The Park Camper",
		Reviews: []models.Review{{ID: 1, Rating: 5, Author: &models.ReviewAuthor{ID: 2, Name: "Jane"}}},
	}, nil)

	res, err := client.R().Get("/api/v1/tours/5")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode())
	doc := decodeBody(t, res)["data"].(map[string]any)["doc"].(map[string]any)
	assert.Equal(t, "The Park Camper", doc["name"])
	require.Len(t, doc["reviews"], 1)
}

func TestResource_GetOne_Errors(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		setup       func(ts *testServices)
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "malformed id",
			path:        "/api/v1/tours/abc",
			setup:       func(*testServices) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid id: abc",
		},
		{
			name: "missing",
			path: "/api/v1/tours/404",
			setup: func(ts *testServices) {
				ts.tours.EXPECT().Get(gomock.Any(), int64(404)).Return(models.Tour{}, store.ErrNotFound)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "No document found with that ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ts := newTestHandler(t)
			tt.setup(ts)
			client := newTestClient(t, h)

			res, err := client.R().Get(tt.path)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, res.StatusCode())
			body := decodeBody(t, res)
			assert.Equal(t, models.StatusFail, body["status"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestResource_GetAll_ProjectsFields(t *testing.T) {
	h, ts := newTestHandler(t)
	client := newTestClient(t, h)

	ts.tours.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params url.Values, _ ...models.Filter) ([]models.Tour, models.Query, error) {
			assert.Equal(t, "name", params.Get("fields"))
			return []models.Tour{
					{ID: 1, Name: "The Forest Hiker", Price: 397},
					{ID: 2, Name: "The Sea Explorer", Price: 497},
				},
				models.Query{Fields: []string{"id", "name"}},
				nil
		},
	)

	res, err := client.R().SetQueryParam("fields", "name").Get("/api/v1/tours")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode())
	body := decodeBody(t, res)
	assert.EqualValues(t, 2, body["results"])

	docs := body["data"].(map[string]any)["docs"].([]any)
	require.Len(t, docs, 2)
	assert.Equal(t, map[string]any{"id": float64(1), "name": "The Forest Hiker"}, docs[0])
}

func TestResource_UpdateOne_PassesSanitizedPatch(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.loggedInAs(staffUser)
	client := newTestClient(t, h)

	ts.tours.EXPECT().Update(gomock.Any(), int64(3), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, patch []byte) (models.Tour, error) {
			assert.JSONEq(t, `{"price":1497,"summary":"&lt;b>bold"}`, string(patch))
			return models.Tour{ID: 3, Price: 1497}, nil
		},
	)

	res, err := client.R().SetAuthToken(testToken).
		SetHeader("Content-Type", "application/json").
		SetBody(`{"price":1497,"summary":"<b>bold","$where":"1==1"}`).
		Patch("/api/v1/tours/3")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode())
}

func TestResource_UpdateOne_EmptyBody(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.loggedInAs(staffUser)
	client := newTestClient(t, h)

	res, err := client.R().SetAuthToken(testToken).Patch("/api/v1/tours/3")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode())
}

func TestResource_DeleteOne(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.loggedInAs(staffUser)
	client := newTestClient(t, h)

	ts.tours.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)

	res, err := client.R().SetAuthToken(testToken).Delete("/api/v1/tours/3")
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, res.StatusCode())
	assert.Empty(t, res.Body())
}

func TestResource_DeleteOne_MissingIsNotFound(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.loggedInAs(staffUser)
	client := newTestClient(t, h)

	ts.tours.EXPECT().Delete(gomock.Any(), int64(404)).Return(store.ErrNotFound)

	res, err := client.R().SetAuthToken(testToken).Delete("/api/v1/tours/404")
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, res.StatusCode())
}

// ---- Nested reviews ----

func TestResource_NestedReviews_Create(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.loggedInAs(models.User{ID: 3, Role: models.RoleUser})
	client := newTestClient(t, h)

	ts.reviews.EXPECT().Create(gomock.Any(), models.Review{Review: "Unforgettable", Rating: 5, TourID: 7, UserID: 3}).
		Return(models.Review{ID: 1, Review: "Unforgettable", Rating: 5, TourID: 7, UserID: 3}, nil)

	res, err := client.R().SetAuthToken(testToken).
		SetBody(map[string]any{"review": "Unforgettable", "rating": 5}).
		Post("/api/v1/tours/7/reviews")
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, res.StatusCode())
}

func TestResource_NestedReviews_List(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.loggedInAs(models.User{ID: 3, Role: models.RoleUser})
	client := newTestClient(t, h)

	scope := models.Filter{Field: "tour_id", Op: models.OpEq, Value: int64(7)}
	ts.reviews.EXPECT().List(gomock.Any(), gomock.Any(), scope).
		Return([]models.Review{{ID: 1, TourID: 7}}, models.Query{}, nil)

	res, err := client.R().SetAuthToken(testToken).Get("/api/v1/tours/7/reviews")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.EqualValues(t, 1, decodeBody(t, res)["results"])
}

func TestResource_Reviews_DuplicateIsBadRequest(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.loggedInAs(models.User{ID: 3, Role: models.RoleUser})
	client := newTestClient(t, h)

	ts.reviews.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(models.Review{}, &store.DuplicateKeyError{Field: "tour_id, user_id", Value: "7, 3"})

	res, err := client.R().SetAuthToken(testToken).
		SetBody(map[string]any{"review": "Again", "rating": 4, "tour_id": 7}).
		Post("/api/v1/reviews")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode())
	assert.Equal(t, "Duplicate field value: 7, 3. Please use another value!", decodeBody(t, res)["message"])
}
