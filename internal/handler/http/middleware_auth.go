package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/service"
	"github.com/MKhiriev/go-tour-booking/internal/utils"
)

// protect is an HTTP middleware that admits only authenticated users.
//
// The token is taken from the "Authorization: Bearer" header, falling back
// to the jwt cookie. [service.AuthService.Protect] verifies it and resolves
// the user, who is then stored in the request context under
// [utils.UserCtxKey] and attached to the request logger.
//
// Every failure is answered with 401 through writeError.
func (h *Handler) protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := h.services.AuthService.Protect(ctx, tokenFromRequest(r))
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		l := logger.FromRequest(r).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", user.ID)
		})
		ctx = l.WithContext(utils.WithUser(ctx, user))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// restrictTo admits only users holding one of roles. It must run after
// protect.
func (h *Handler) restrictTo(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetUserFromContext(r.Context())
			if !ok {
				h.writeError(w, r, service.ErrNotLoggedIn)
				return
			}
			if !user.HasRole(roles...) {
				h.writeError(w, r, service.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// tokenFromRequest returns the bearer token or the jwt cookie value, or an
// empty string when the request carries neither.
func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			return token
		}
	}

	if cookie, err := r.Cookie(tokenCookie); err == nil && cookie.Value != loggedOutValue {
		return cookie.Value
	}

	return ""
}
