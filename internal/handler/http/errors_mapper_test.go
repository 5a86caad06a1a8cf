package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/query"
	"github.com/MKhiriev/go-tour-booking/internal/service"
	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/internal/utils"
	"github.com/MKhiriev/go-tour-booking/internal/validators"
)

func TestNormalize_TableTest(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "operational error keeps its message",
			err:         service.ErrForbidden,
			wantStatus:  http.StatusForbidden,
			wantMessage: service.ErrForbidden.Message,
		},
		{
			name:        "wrapped operational error",
			err:         fmt.Errorf("protect: %w", service.ErrNotLoggedIn),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: service.ErrNotLoggedIn.Message,
		},
		{
			name:        "cast error",
			err:         &query.CastError{Field: "price", Value: "cheap"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid price: cheap",
		},
		{
			name:        "unknown query field",
			err:         fmt.Errorf("parse: %w", &query.FieldError{Field: "password"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid field: password",
		},
		{
			name:        "duplicate key",
			err:         &store.DuplicateKeyError{Constraint: "tours_name_key", Field: "name", Value: "The Forest Hiker"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Duplicate field value: The Forest Hiker. Please use another value!",
		},
		{
			name:        "validation errors",
			err:         fmt.Errorf("validate: %w", validators.ValidationErrors{"A tour must have a name", "A tour must have a price"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid input data. A tour must have a name. A tour must have a price",
		},
		{
			name:        "constraint violation",
			err:         &store.ConstraintError{Constraint: "tours_price_check", Column: "price"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid input data. value of price violates tours_price_check",
		},
		{
			name:        "expired token",
			err:         service.ErrTokenIsExpired,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: msgExpiredToken,
		},
		{
			name:        "invalid token",
			err:         fmt.Errorf("%w: signature is invalid", service.ErrTokenIsInvalid),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: msgInvalidToken,
		},
		{
			name:        "not found",
			err:         fmt.Errorf("get tour: %w", store.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: store.ErrNotFound.Error(),
		},
		{
			name:        "empty body",
			err:         utils.ErrEmptyBody,
			wantStatus:  http.StatusBadRequest,
			wantMessage: utils.ErrEmptyBody.Error(),
		},
		{
			name:        "invalid json",
			err:         fmt.Errorf("%w: unexpected EOF", ErrInvalidJSON),
			wantStatus:  http.StatusBadRequest,
			wantMessage: ErrInvalidJSON.Error(),
		},
		{
			name:        "token creation failure is masked",
			err:         fmt.Errorf("%w: no key", service.ErrTokenCreationFailed),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgInternal,
		},
		{
			name:        "unexpected error is masked",
			err:         errors.New("pq: connection reset"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: msgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := normalize(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestWriteError_DevelopmentExposesError(t *testing.T) {
	tests := []struct {
		name        string
		development bool
		wantError   bool
	}{
		{name: "production", development: false, wantError: false},
		{name: "development", development: true, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{development: tt.development, logger: logger.Nop()}
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/tours", nil)

			h.writeError(rr, req, errors.New("dial tcp: connection refused"))

			require.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			if tt.wantError {
				assert.JSONEq(t, `{"status":"error","message":"Something went very wrong!","error":"dial tcp: connection refused"}`, rr.Body.String())
			} else {
				assert.JSONEq(t, `{"status":"error","message":"Something went very wrong!"}`, rr.Body.String())
			}
		})
	}
}

func TestHandle_ClientErrorIsFail(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	rr := httptest.NewRecorder()

	h.handle(func(http.ResponseWriter, *http.Request) error {
		return service.ErrForbidden
	}).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/", nil))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"status":"fail","message":"You do not have permission to perform this action"}`, rr.Body.String())
}
