package store

import (
	"context"

	"github.com/MKhiriev/go-tour-booking/internal/config"
	"github.com/MKhiriev/go-tour-booking/internal/logger"
)

// Storages groups the repositories used by the service layer.
type Storages struct {
	Tours    TourRepository
	Users    UserRepository
	Reviews  ReviewRepository
	Bookings BookingRepository

	db *DB
}

// NewStorages connects to Postgres, applies migrations and builds every
// repository on the shared pool.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("failed to apply migrations")
		_ = db.Close()
		return nil, err
	}

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB builds every repository on an existing pool.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Tours:    NewTourRepository(db, log),
		Users:    NewUserRepository(db, log),
		Reviews:  NewReviewRepository(db, log),
		Bookings: NewBookingRepository(db, log),
		db:       db,
	}
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
