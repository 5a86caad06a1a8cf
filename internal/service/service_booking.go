package service

import (
	"context"
	"net/url"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/internal/validators"
	"github.com/MKhiriev/go-tour-booking/models"
)

type bookingService struct {
	*resourceService[models.Booking]
}

// NewBookingService constructs a [BookingService]. New bookings are paid
// unless stated otherwise.
func NewBookingService(bookings store.BookingRepository, validator validators.Validator, logger *logger.Logger) BookingService {
	return &bookingService{
		resourceService: newResourceService[models.Booking](bookings, validator, resourceHooks[models.Booking]{
			beforeSave: defaultPaid,
		}, logger),
	}
}

func defaultPaid(_ context.Context, booking *models.Booking, columns []string) []string {
	if booking.Paid == nil {
		paid := true
		booking.Paid = &paid
	}
	return columns
}

func (s *bookingService) ListMine(ctx context.Context, userID int64, params url.Values) ([]models.Booking, models.Query, error) {
	return s.List(ctx, params, models.Filter{Field: "user_id", Op: models.OpEq, Value: userID})
}
