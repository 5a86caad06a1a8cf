package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tour-booking/internal/query"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{"connection failure", pgError(pgerrcode.ConnectionFailure), Retryable},
		{"deadlock", pgError(pgerrcode.DeadlockDetected), Retryable},
		{"serialization", pgError(pgerrcode.SerializationFailure), Retryable},
		{"cannot connect now", pgError(pgerrcode.CannotConnectNow), Retryable},
		{"unique violation", pgError(pgerrcode.UniqueViolation), NonRetryable},
		{"plain error", errors.New("boom"), NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestTranslateError(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		assert.ErrorIs(t, translateError(sql.ErrNoRows), ErrNotFound)
	})

	t.Run("unique violation with detail", func(t *testing.T) {
		err := translateError(&pgconn.PgError{
			Code:   pgerrcode.UniqueViolation,
			Detail: "Key (email)=(jane@example.com) already exists.",
		})

		var dup *DuplicateKeyError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "email", dup.Field)
		assert.Equal(t, "jane@example.com", dup.Value)
	})

	t.Run("unique violation without detail", func(t *testing.T) {
		err := translateError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "reviews_tour_user_key"})

		var dup *DuplicateKeyError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "reviews_tour_user_key", dup.Value)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		err := translateError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "reviews_tour_id_fkey"})

		var constraint *ConstraintError
		require.ErrorAs(t, err, &constraint)
		assert.Equal(t, "value violates reviews_tour_id_fkey", constraint.Error())
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		assert.Same(t, boom, translateError(boom))
	})
}

func TestWithRetry_StopsOnNonRetryable(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	calls := 0
	err := db.withRetry(context.Background(), func() error {
		calls++
		return pgError(pgerrcode.UniqueViolation)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_GivesUpAfterAllAttempts(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	calls := 0
	err := db.withRetry(context.Background(), func() error {
		calls++
		return pgError(pgerrcode.ConnectionFailure)
	})

	require.Error(t, err)
	assert.Equal(t, len(retryDelays)+1, calls)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := db.withRetry(ctx, func() error {
		return pgError(pgerrcode.ConnectionFailure)
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestTranslateError_InvalidTextRepresentation(t *testing.T) {
	err := translateError(&pgconn.PgError{
		Code:    pgerrcode.InvalidTextRepresentation,
		Message: `invalid input syntax for type bigint: "abc"`,
	})

	var cast *query.CastError
	require.ErrorAs(t, err, &cast)
	assert.Equal(t, "Invalid value: abc", cast.Error())
}
