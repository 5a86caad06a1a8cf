package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tour-booking/internal/query"
	"github.com/MKhiriev/go-tour-booking/models"
)

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// ResourceRepository is the CRUD contract shared by every resource table.
type ResourceRepository[T any] interface {
	// Schema returns the column catalogue the repository is driven by.
	Schema() query.Schema

	// Create inserts rec and returns the stored row.
	Create(ctx context.Context, rec T) (T, error)

	// FindByID returns the row with the given id or [ErrNotFound].
	FindByID(ctx context.Context, id int64) (T, error)

	// Find returns the rows matching q, projected to q.Fields.
	Find(ctx context.Context, q models.Query) ([]T, error)

	// Update writes the listed columns of rec to the row with the given id,
	// bumps its version and returns the stored row.
	Update(ctx context.Context, id int64, rec T, columns []string) (T, error)

	// Delete removes the row with the given id or returns [ErrNotFound].
	Delete(ctx context.Context, id int64) error
}

// TourRepository stores tours.
type TourRepository interface {
	ResourceRepository[models.Tour]
}

// BookingRepository stores bookings.
type BookingRepository interface {
	ResourceRepository[models.Booking]
}

// ReviewRepository stores reviews and maintains the tour rating aggregates.
type ReviewRepository interface {
	ResourceRepository[models.Review]

	// RecalculateTourRatings recomputes ratings_quantity and ratings_average
	// of the tour from its reviews.
	RecalculateTourRatings(ctx context.Context, tourID int64) error
}

// UserRepository stores user accounts and their credentials.
type UserRepository interface {
	ResourceRepository[models.User]

	// FindByEmail returns an active user together with the password hash.
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// FindWithPassword returns an active user together with the password hash.
	FindWithPassword(ctx context.Context, id int64) (models.User, error)

	// FindByResetToken returns the user holding the hashed reset token if it
	// expires after now.
	FindByResetToken(ctx context.Context, hashedToken string, now time.Time) (models.User, error)

	// SetResetToken stores or, with nil arguments, clears a reset token.
	SetResetToken(ctx context.Context, id int64, hashedToken *string, expires *time.Time) error

	// UpdatePassword stores a new password hash, records the change time
	// and clears any pending reset token.
	UpdatePassword(ctx context.Context, id int64, passwordHash string, changedAt time.Time) error

	// Deactivate hides the user from every query.
	Deactivate(ctx context.Context, id int64) error

	// PurgeExpiredResetTokens clears reset tokens that expired before now
	// and returns how many were cleared.
	PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
