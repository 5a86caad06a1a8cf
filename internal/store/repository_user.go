package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/query"
	"github.com/MKhiriev/go-tour-booking/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// On top of the generic CRUD it handles the credential columns that are
// hidden from the regular projections.
type userRepository struct {
	*resourceRepository[models.User, *models.User]
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	return &userRepository{
		resourceRepository: newResourceRepository[models.User](db, UserSchema(), logger),
	}
}

// withPassword is the default projection plus the password hash.
func (r *userRepository) withPassword() []string {
	return append(r.schema.Returnable(), "password")
}

// FindByEmail retrieves an active user by email, including the password hash
// needed to check credentials.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	columns := r.withPassword()
	builder := r.selectScoped(columns).Where(sq.Eq{"email": email})
	return r.findOne(ctx, "*userRepository.FindByEmail", builder, columns)
}

// FindWithPassword retrieves an active user by id, including the password hash.
func (r *userRepository) FindWithPassword(ctx context.Context, id int64) (models.User, error) {
	columns := r.withPassword()
	builder := r.selectScoped(columns).Where(sq.Eq{"id": id})
	return r.findOne(ctx, "*userRepository.FindWithPassword", builder, columns)
}

// FindByResetToken retrieves the active user holding hashedToken, provided
// the token has not expired at now.
func (r *userRepository) FindByResetToken(ctx context.Context, hashedToken string, now time.Time) (models.User, error) {
	columns := r.schema.Returnable()
	builder := r.selectScoped(columns).
		Where(sq.Eq{"password_reset_token": hashedToken}).
		Where(sq.Gt{"password_reset_expires": now})
	return r.findOne(ctx, "*userRepository.FindByResetToken", builder, columns)
}

// SetResetToken stores a hashed reset token and its expiry. Passing nil for
// both clears them.
func (r *userRepository) SetResetToken(ctx context.Context, id int64, hashedToken *string, expires *time.Time) error {
	builder := query.Psql.Update(r.schema.Table).
		Set("password_reset_token", hashedToken).
		Set("password_reset_expires", expires).
		Where(sq.Eq{"id": id}).
		Where(r.schema.Scope)

	return r.update(ctx, "*userRepository.SetResetToken", builder)
}

// UpdatePassword replaces the password hash and clears any pending reset.
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string, changedAt time.Time) error {
	builder := query.Psql.Update(r.schema.Table).
		Set("password", passwordHash).
		Set("password_changed_at", changedAt).
		Set("password_reset_token", nil).
		Set("password_reset_expires", nil).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": id}).
		Where(r.schema.Scope)

	return r.update(ctx, "*userRepository.UpdatePassword", builder)
}

// Deactivate marks the account inactive. The row is kept.
func (r *userRepository) Deactivate(ctx context.Context, id int64) error {
	builder := query.Psql.Update(r.schema.Table).
		Set("active", false).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": id}).
		Where(r.schema.Scope)

	return r.update(ctx, "*userRepository.Deactivate", builder)
}

// PurgeExpiredResetTokens clears reset tokens whose expiry is before now.
func (r *userRepository) PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	q, args, err := query.Psql.Update(r.schema.Table).
		Set("password_reset_token", nil).
		Set("password_reset_expires", nil).
		Where(sq.Lt{"password_reset_expires": now}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.PurgeExpiredResetTokens").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.PurgeExpiredResetTokens").Msg("failed to clear expired reset tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return res.RowsAffected()
}

func (r *userRepository) update(ctx context.Context, funcName string, builder sq.UpdateBuilder) error {
	q, args, err := builder.ToSql()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execAffecting(ctx, funcName, q, args)
}
