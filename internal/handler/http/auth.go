package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/service"
	"github.com/MKhiriev/go-tour-booking/internal/utils"
	"github.com/MKhiriev/go-tour-booking/models"
)

const (
	tokenCookie     = "jwt"
	loggedOutValue  = "loggedout"
	logoutCookieTTL = 10 * time.Second
	resetPath       = "/api/v1/users/resetpassword/"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) error {
	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		return err
	}

	created, err := h.services.AuthService.Signup(r.Context(), user)
	if err != nil {
		return err
	}

	return h.sendToken(w, r, created, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) error {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	user, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		return err
	}

	logger.FromRequest(r).Debug().Int64("user_id", user.ID).Msg("user successfully logged in")

	return h.sendToken(w, r, user, http.StatusOK)
}

// logout overwrites the token cookie with a short-lived placeholder.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    loggedOutValue,
		Path:     "/",
		Expires:  time.Now().Add(logoutCookieTTL),
		HttpOnly: true,
	})
	return writeSuccess(w, "")
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) error {
	var req models.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), req.Email, resetURL(r)); err != nil {
		return err
	}

	return writeSuccess(w, "Token sent to email!")
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) error {
	var req models.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	user, err := h.services.AuthService.ResetPassword(r.Context(), chi.URLParam(r, "token"), req)
	if err != nil {
		return err
	}

	return h.sendToken(w, r, user, http.StatusOK)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) error {
	current, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		return service.ErrNotLoggedIn
	}

	var req models.UpdatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	user, err := h.services.AuthService.UpdatePassword(r.Context(), current.ID, req)
	if err != nil {
		return err
	}

	return h.sendToken(w, r, user, http.StatusOK)
}

// sendToken issues a token for user, sets it as the jwt cookie and answers
// with the token and the user.
func (h *Handler) sendToken(w http.ResponseWriter, r *http.Request, user models.User, status int) error {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieDuration),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))

	_, err = utils.WriteJSON(w, models.Response{
		Status: models.StatusSuccess,
		Token:  token.SignedString,
		Data:   map[string]any{"user": user.Sanitized()},
	}, status)
	return err
}

func resetURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, resetPath)
}
