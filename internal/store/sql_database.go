package store

import (
	"database/sql"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/migrations"
)

// DB is the shared Postgres connection pool of all repositories.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate brings the schema up to the latest embedded migration.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB); err != nil {
		return err
	}

	if db.logger != nil {
		db.logger.Info().Str("func", "*DB.Migrate").Msg("database schema is up to date")
	}
	return nil
}

// Close waits for queries in flight and closes the pool.
func (db *DB) Close() error {
	if db.logger != nil {
		db.logger.Info().Str("func", "*DB.Close").Msg("closing database connection pool")
	}
	return db.DB.Close()
}
