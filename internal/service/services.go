package service

import (
	"github.com/MKhiriev/go-tour-booking/internal/adapter"
	"github.com/MKhiriev/go-tour-booking/internal/config"
	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/internal/validators"
)

type Services struct {
	AuthService    AuthService
	TourService    TourService
	UserService    UserService
	ReviewService  ReviewService
	BookingService BookingService
}

func NewServices(storages *store.Storages, mailer adapter.Mailer, cfg config.App, logger *logger.Logger) *Services {
	validator := validators.NewResourceValidator()

	return &Services{
		AuthService:    NewAuthService(storages.Users, mailer, validator, cfg, logger),
		TourService:    NewTourService(storages.Tours, storages.Reviews, storages.Users, validator, logger),
		UserService:    NewUserService(storages.Users, validator, logger),
		ReviewService:  NewReviewService(storages.Reviews, storages.Users, validator, logger),
		BookingService: NewBookingService(storages.Bookings, validator, logger),
	}
}
