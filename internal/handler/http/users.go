package http

import (
	"net/http"

	"github.com/MKhiriev/go-tour-booking/internal/service"
	"github.com/MKhiriev/go-tour-booking/internal/utils"
	"github.com/MKhiriev/go-tour-booking/models"
)

func currentUser(r *http.Request) (models.User, error) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		return models.User{}, service.ErrNotLoggedIn
	}
	return user, nil
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) error {
	me, err := currentUser(r)
	if err != nil {
		return err
	}

	user, err := h.services.UserService.Get(r.Context(), me.ID)
	if err != nil {
		return err
	}

	return writeDoc(w, user, http.StatusOK)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) error {
	me, err := currentUser(r)
	if err != nil {
		return err
	}

	patch, err := readBody(r)
	if err != nil {
		return err
	}

	user, err := h.services.UserService.UpdateMe(r.Context(), me.ID, patch)
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, models.Response{
		Status: models.StatusSuccess,
		Data:   map[string]any{"user": user},
	}, http.StatusOK)
	return err
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) error {
	me, err := currentUser(r)
	if err != nil {
		return err
	}

	if err = h.services.UserService.DeleteMe(r.Context(), me.ID); err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, nil, http.StatusNoContent)
	return err
}
