package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/internal/validators"
	"github.com/MKhiriev/go-tour-booking/models"
)

// selfEditable are the columns a user may change on their own account.
var selfEditable = []string{validators.FieldEmail, validators.FieldName}

type userService struct {
	*resourceService[models.User]

	users store.UserRepository
}

// NewUserService constructs a [UserService]. Passwords never leave it.
func NewUserService(users store.UserRepository, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		resourceService: newResourceService[models.User](users, validator, resourceHooks[models.User]{
			beforeSave: normalizeEmail,
		}, logger),
		users:           users,
	}
}

// normalizeEmail stores addresses in the form used for lookups by e-mail.
func normalizeEmail(_ context.Context, user *models.User, columns []string) []string {
	user.Email = normalizedEmail(user.Email)
	return columns
}

func normalizedEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UpdateMe applies name and email changes of the calling user. A body that
// tries to change the password is rejected.
func (s *userService) UpdateMe(ctx context.Context, id int64, patch []byte) (models.User, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	_, hasPassword := fields["password"]
	_, hasConfirm := fields["password_confirm"]
	if hasPassword || hasConfirm {
		return models.User{}, ErrPasswordUpdateNotAllowed
	}

	allowed := make(map[string]json.RawMessage, len(selfEditable))
	for _, key := range selfEditable {
		if v, ok := fields[key]; ok {
			allowed[key] = v
		}
	}

	filtered, err := json.Marshal(allowed)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.resourceService.Update(ctx, id, filtered)
	if err != nil {
		return models.User{}, err
	}
	return user.Sanitized(), nil
}

// DeleteMe deactivates the account. The row stays for bookings and reviews.
func (s *userService) DeleteMe(ctx context.Context, id int64) error {
	if err := s.users.Deactivate(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.DeleteMe").Int64("user_id", id).Msg("failed to deactivate user")
		return err
	}
	return nil
}
