package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"net/url"

	"github.com/MKhiriev/go-tour-booking/internal/query"
	"github.com/MKhiriev/go-tour-booking/models"
)

// ResourceService is the CRUD contract the generic HTTP handlers work with.
type ResourceService[T any] interface {
	// Schema returns the column catalogue used to parse list parameters.
	Schema() query.Schema

	// Create validates and stores a new record.
	Create(ctx context.Context, rec T) (T, error)

	// Get returns one record with its relations populated.
	Get(ctx context.Context, id int64) (T, error)

	// List parses params into a query, narrows it with scope and returns
	// the matching records together with the parsed query.
	List(ctx context.Context, params url.Values, scope ...models.Filter) ([]T, models.Query, error)

	// Update applies a JSON merge patch to the stored record.
	Update(ctx context.Context, id int64, patch []byte) (T, error)

	// Delete removes the record, failing with store.ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error
}

type TourService interface {
	ResourceService[models.Tour]
}

type ReviewService interface {
	ResourceService[models.Review]
}

type UserService interface {
	ResourceService[models.User]

	// UpdateMe lets a user change their own name and email.
	UpdateMe(ctx context.Context, id int64, patch []byte) (models.User, error)

	// DeleteMe deactivates the account of the calling user.
	DeleteMe(ctx context.Context, id int64) error
}

type BookingService interface {
	ResourceService[models.Booking]

	// ListMine lists the bookings of one user.
	ListMine(ctx context.Context, userID int64, params url.Values) ([]models.Booking, models.Query, error)
}

type AuthService interface {
	Signup(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// Protect resolves the user a token was issued to, rejecting tokens of
	// deleted users and tokens older than the last password change.
	Protect(ctx context.Context, tokenString string) (models.User, error)

	// ForgotPassword mails a one-time reset link built from resetURL.
	ForgotPassword(ctx context.Context, email string, resetURL string) error
	ResetPassword(ctx context.Context, token string, req models.ResetPasswordRequest) (models.User, error)
	UpdatePassword(ctx context.Context, userID int64, req models.UpdatePasswordRequest) (models.User, error)
}
