package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/query"
	"github.com/MKhiriev/go-tour-booking/internal/service"
	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/internal/utils"
	"github.com/MKhiriev/go-tour-booking/internal/validators"
	"github.com/MKhiriev/go-tour-booking/models"
)

// errorStatusMap lists plain sentinel errors whose text is shown as is.
var errorStatusMap = map[error]int{
	store.ErrNotFound:              http.StatusNotFound,
	utils.ErrEmptyBody:             http.StatusBadRequest,
	ErrInvalidJSON:                 http.StatusBadRequest,
	validators.ErrUnknownField:     http.StatusBadRequest,
	query.ErrUnknownField:          http.StatusBadRequest,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,
}

// handlerFunc is an HTTP handler that reports failures by returning them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to [http.HandlerFunc], funnelling every returned error
// into writeError.
func (h *Handler) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.writeError(w, r, err)
		}
	}
}

// writeError renders err as the JSON error envelope. 4xx answers carry the
// "fail" status and 5xx answers "error". Outside development the message of
// unexpected errors is masked.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status, message := normalize(err)

	resp := models.ErrorResponse{Status: models.StatusFail, Message: message}
	if status >= http.StatusInternalServerError {
		resp.Status = models.StatusError
		log.Err(err).Int("status", status).Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if h.development {
		resp.Error = err.Error()
	}

	if _, wErr := utils.WriteJSON(w, resp, status); wErr != nil {
		log.Err(wErr).Msg("failed to write error response")
	}
}

// normalize maps an error to its HTTP status and client-facing message.
func normalize(err error) (int, string) {
	var (
		appErr     *service.AppError
		castErr    *query.CastError
		fieldErr   *query.FieldError
		dupErr     *store.DuplicateKeyError
		validErr   validators.ValidationErrors
		constraint *store.ConstraintError
	)

	switch {
	case errors.As(err, &appErr):
		return appErr.StatusCode, appErr.Message
	case errors.As(err, &castErr):
		return http.StatusBadRequest, castErr.Error()
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest, fieldErr.Error()
	case errors.As(err, &dupErr):
		return http.StatusBadRequest, dupErr.Error()
	case errors.As(err, &validErr):
		return http.StatusBadRequest, validErr.Error()
	case errors.As(err, &constraint):
		return http.StatusBadRequest, validators.ValidationErrors{constraint.Error()}.Error()
	case errors.Is(err, service.ErrTokenIsExpired):
		return http.StatusUnauthorized, msgExpiredToken
	case errors.Is(err, service.ErrTokenIsInvalid):
		return http.StatusUnauthorized, msgInvalidToken
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			if status >= http.StatusInternalServerError {
				return status, msgInternal
			}
			return status, target.Error()
		}
	}

	return http.StatusInternalServerError, msgInternal
}
