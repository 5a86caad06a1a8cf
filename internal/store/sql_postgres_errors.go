package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/go-tour-booking/internal/query"
)

// ErrorClassification is the result type returned by [ErrorClassificator.Classify]
// and [PostgresErrorClassifier.Classify]. It indicates whether a failed database
// operation should be retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (e.g. after a transient connection loss or a deadlock rollback).
	Retryable
)

// retryDelays are the pauses between attempts of a retryable read.
var retryDelays = []time.Duration{50 * time.Millisecond, 150 * time.Millisecond, 350 * time.Millisecond}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that are not PostgreSQL
// driver errors are [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if pgErr := postgresError(err); pgErr != nil {
		return ClassifyPgError(pgErr)
	}
	return NonRetryable
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] based on
// the PostgreSQL error code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	// Class 08: connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Retryable

	// Class 40: transaction rollback
	case pgerrcode.TransactionRollback, // 40000
		pgerrcode.SerializationFailure, // 40001
		pgerrcode.DeadlockDetected:     // 40P01
		return Retryable

	// Class 57: operator intervention
	case pgerrcode.CannotConnectNow: // 57P03
		return Retryable
	}

	return NonRetryable
}

// withRetry runs op and repeats it while the error is classified as
// retryable, pausing between attempts.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	err := op()
	for attempt := 0; err != nil && attempt < len(retryDelays); attempt++ {
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(retryDelays[attempt]):
		}

		err = op()
	}
	return err
}

// duplicateKeyDetail matches the DETAIL of a unique violation:
// Key (email)=(jane@example.com) already exists.
var duplicateKeyDetail = regexp.MustCompile(`Key \((.+?)\)=\((.*)\) already exists`)

// invalidInput matches the quoted value of an invalid_text_representation
// message: invalid input syntax for type bigint: "abc".
var invalidInput = regexp.MustCompile(`: "(.*)"$`)

// translateError converts driver errors into the package's typed errors.
// Errors it does not recognise are returned unchanged.
func translateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	pgErr := postgresError(err)
	if pgErr == nil {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		dup := &DuplicateKeyError{Constraint: pgErr.ConstraintName}
		if m := duplicateKeyDetail.FindStringSubmatch(pgErr.Detail); m != nil {
			dup.Field = m[1]
			dup.Value = m[2]
		} else {
			dup.Value = strings.TrimSpace(pgErr.ConstraintName)
		}
		return dup

	case pgerrcode.CheckViolation,
		pgerrcode.NotNullViolation,
		pgerrcode.ForeignKeyViolation:
		return &ConstraintError{Constraint: pgErr.ConstraintName, Column: pgErr.ColumnName}

	case pgerrcode.InvalidTextRepresentation:
		cast := &query.CastError{Field: pgErr.ColumnName, Value: pgErr.Message}
		if cast.Field == "" {
			cast.Field = "value"
		}
		if m := invalidInput.FindStringSubmatch(pgErr.Message); m != nil {
			cast.Value = m[1]
		}
		return cast
	}

	return err
}
