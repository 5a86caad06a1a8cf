package http

import (
	"net/http"

	"github.com/MKhiriev/go-tour-booking/internal/utils"
	"github.com/MKhiriev/go-tour-booking/models"
)

// myBookings lists the bookings of the calling user.
func (h *Handler) myBookings(w http.ResponseWriter, r *http.Request) error {
	me, err := currentUser(r)
	if err != nil {
		return err
	}

	bookings, _, err := h.services.BookingService.ListMine(r.Context(), me.ID, r.URL.Query())
	if err != nil {
		return err
	}

	results := len(bookings)
	_, err = utils.WriteJSON(w, models.Response{
		Status:  models.StatusSuccess,
		Results: &results,
		Data:    models.Docs(bookings),
	}, http.StatusOK)
	return err
}
