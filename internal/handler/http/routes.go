package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-tour-booking/internal/service"
	"github.com/MKhiriev/go-tour-booking/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if h.trustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.metrics != nil {
		router.Use(h.metrics.Instrument)
	}
	router.Use(withSecurityHeaders)

	tours := &resource[models.Tour, *models.Tour]{svc: h.services.TourService}
	users := &resource[models.User, *models.User]{svc: h.services.UserService}
	bookings := &resource[models.Booking, *models.Booking]{svc: h.services.BookingService}
	reviews := &resource[models.Review, *models.Review]{
		svc:     h.services.ReviewService,
		prepare: prepareReview,
	}
	tourReviews := &resource[models.Review, *models.Review]{
		svc:     h.services.ReviewService,
		scope:   tourScope,
		prepare: prepareNestedReview,
	}

	staff := h.restrictTo(models.RoleAdmin, models.RoleLeadGuide)

	router.Route("/api/v1", func(r chi.Router) {
		if h.limiter != nil {
			r.Use(h.withRateLimit)
		}
		r.Use(h.withBodyLimit)
		r.Use(h.withSanitizedBody)

		r.Route("/tours", func(r chi.Router) {
			r.Get("/", h.handle(tours.getAll))
			r.With(aliasTopTours).Get("/top-5-cheap", h.handle(tours.getAll))
			r.Get("/{id}", h.handle(tours.getOne))

			// routes with authorization
			r.Group(func(r chi.Router) {
				r.Use(h.protect)
				r.Get("/{id}/reviews", h.handle(tourReviews.getAll))
				r.With(h.restrictTo(models.RoleUser)).Post("/{id}/reviews", h.handle(tourReviews.createOne))

				r.Group(func(r chi.Router) {
					r.Use(staff)
					r.Post("/", h.handle(tours.createOne))
					r.Patch("/{id}", h.handle(tours.updateOne))
					r.Delete("/{id}", h.handle(tours.deleteOne))
				})
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", h.handle(h.signup))
			r.Post("/login", h.handle(h.login))
			r.Get("/logout", h.handle(h.logout))
			r.Post("/forgotpassword", h.handle(h.forgotPassword))
			r.Patch("/resetpassword/{token}", h.handle(h.resetPassword))

			// routes with authorization
			r.Group(func(r chi.Router) {
				r.Use(h.protect)
				r.Patch("/updatepassword", h.handle(h.updatePassword))
				r.Get("/me", h.handle(h.getMe))
				r.Patch("/updateme", h.handle(h.updateMe))
				r.Delete("/deleteme", h.handle(h.deleteMe))

				r.Group(func(r chi.Router) {
					r.Use(staff)
					r.Get("/", h.handle(users.getAll))
					r.Get("/{id}", h.handle(users.getOne))
					r.Patch("/{id}", h.handle(users.updateOne))
					r.Delete("/{id}", h.handle(users.deleteOne))
				})
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(h.protect)
			r.Get("/", h.handle(reviews.getAll))
			r.Get("/{id}", h.handle(reviews.getOne))
			r.With(h.restrictTo(models.RoleUser)).Post("/", h.handle(reviews.createOne))

			r.Group(func(r chi.Router) {
				r.Use(h.restrictTo(models.RoleUser, models.RoleAdmin))
				r.Patch("/{id}", h.handle(reviews.updateOne))
				r.Delete("/{id}", h.handle(reviews.deleteOne))
			})
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(h.protect)
			r.Get("/my", h.handle(h.myBookings))

			r.Group(func(r chi.Router) {
				r.Use(staff)
				r.Get("/", h.handle(bookings.getAll))
				r.Post("/", h.handle(bookings.createOne))
				r.Get("/{id}", h.handle(bookings.getOne))
				r.Patch("/{id}", h.handle(bookings.updateOne))
				r.Delete("/{id}", h.handle(bookings.deleteOne))
			})
		})
	})

	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	router.NotFound(h.handle(routeNotFound))
	router.MethodNotAllowed(h.handle(routeNotFound))

	return router
}

func routeNotFound(_ http.ResponseWriter, r *http.Request) error {
	return service.NewAppError(http.StatusNotFound, fmt.Sprintf("Can't find %s on this server!", r.URL.RequestURI()))
}
