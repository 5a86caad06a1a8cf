package http

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-tour-booking/internal/metrics"
	"github.com/MKhiriev/go-tour-booking/internal/service"
	"github.com/MKhiriev/go-tour-booking/models"
)

// ---- Unknown routes ----

func TestInit_UnknownRoute(t *testing.T) {
	h, _ := newTestHandler(t)
	client := newTestClient(t, h)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/nope"},
		{http.MethodGet, "/api/v2/tours"},
		{http.MethodPut, "/api/v1/tours"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			res, err := client.R().Execute(tt.method, tt.path)
			require.NoError(t, err)

			assert.Equal(t, http.StatusNotFound, res.StatusCode())
			body := decodeBody(t, res)
			assert.Equal(t, models.StatusFail, body["status"])
			assert.Equal(t, "Can't find "+tt.path+" on this server!", body["message"])
		})
	}
}

// ---- Protected routes: 401 without token ----

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.auth.EXPECT().Protect(gomock.Any(), "").Return(models.User{}, service.ErrNotLoggedIn).AnyTimes()
	client := newTestClient(t, h)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/tours"},
		{http.MethodPatch, "/api/v1/tours/1"},
		{http.MethodDelete, "/api/v1/tours/1"},
		{http.MethodGet, "/api/v1/tours/1/reviews"},
		{http.MethodPost, "/api/v1/tours/1/reviews"},
		{http.MethodPatch, "/api/v1/users/updatepassword"},
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodPatch, "/api/v1/users/updateme"},
		{http.MethodDelete, "/api/v1/users/deleteme"},
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/reviews"},
		{http.MethodGet, "/api/v1/bookings/my"},
		{http.MethodGet, "/api/v1/bookings"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			res, err := client.R().Execute(tt.method, tt.path)
			require.NoError(t, err)

			assert.Equal(t, http.StatusUnauthorized, res.StatusCode())
			assert.Equal(t, service.ErrNotLoggedIn.Message, decodeBody(t, res)["message"])
		})
	}
}

// ---- Staff routes: 403 for regular users ----

func TestInit_StaffRoutes_ForbiddenForUsers(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.loggedInAs(models.User{ID: 3, Role: models.RoleUser})
	client := newTestClient(t, h)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/tours"},
		{http.MethodDelete, "/api/v1/tours/1"},
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/users/9"},
		{http.MethodGet, "/api/v1/bookings"},
		{http.MethodPost, "/api/v1/bookings"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			res, err := client.R().SetAuthToken(testToken).Execute(tt.method, tt.path)
			require.NoError(t, err)

			assert.Equal(t, http.StatusForbidden, res.StatusCode())
			assert.Equal(t, "You do not have permission to perform this action", decodeBody(t, res)["message"])
		})
	}
}

func TestInit_ReviewCreation_OnlyForUsers(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.loggedInAs(models.User{ID: 1, Role: models.RoleAdmin})
	client := newTestClient(t, h)

	res, err := client.R().SetAuthToken(testToken).
		SetBody(map[string]any{"review": "Great", "rating": 5}).
		Post("/api/v1/tours/7/reviews")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.StatusCode())
}

// ---- Aliases ----

func TestInit_TopFiveCheapAlias(t *testing.T) {
	h, ts := newTestHandler(t)
	client := newTestClient(t, h)

	ts.tours.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params url.Values, _ ...models.Filter) ([]models.Tour, models.Query, error) {
			assert.Equal(t, "5", params.Get("limit"))
			assert.Equal(t, "-ratings_average,price", params.Get("sort"))
			assert.Equal(t, "name,price,ratings_average,summary,difficulty", params.Get("fields"))
			return nil, models.Query{}, nil
		},
	)

	res, err := client.R().SetQueryParam("limit", "50").Get("/api/v1/tours/top-5-cheap")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.EqualValues(t, 0, decodeBody(t, res)["results"])
}

// ---- Global middleware ----

func TestInit_SecurityHeadersAndTraceID(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.tours.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, models.Query{}, nil)
	client := newTestClient(t, h)

	res, err := client.R().SetHeader(traceIDHeader, "trace-123").Get("/api/v1/tours")
	require.NoError(t, err)

	assert.Equal(t, "trace-123", res.Header().Get(traceIDHeader))
	assert.Equal(t, "nosniff", res.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", res.Header().Get("X-Frame-Options"))
}

func TestInit_MetricsEndpoint(t *testing.T) {
	h, ts := newTestHandler(t)
	h.metrics = metrics.New()
	ts.tours.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, models.Query{}, nil)
	client := newTestClient(t, h)

	_, err := client.R().Get("/api/v1/tours")
	require.NoError(t, err)

	res, err := client.R().Get("/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.Contains(t, res.String(), "tour_booking_http_requests_total{")
	assert.Contains(t, res.String(), `status="200"`)
}

func TestInit_MetricsDisabled(t *testing.T) {
	h, _ := newTestHandler(t)
	client := newTestClient(t, h)

	res, err := client.R().Get("/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode())
}
