package models

import "time"

// User roles.
const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// DefaultPhoto is assigned to users that did not upload a picture.
const DefaultPhoto = "default.jpg"

// User represents an account entity used for authentication and authorization.
// Credential fields are never rendered back to clients: Password is cleared by
// the service layer before a user leaves it, and reset data is not serialized.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
	Role  string `json:"role"`

	// Password holds the plain-text password on input and the bcrypt hash
	// once loaded from storage.
	Password string `json:"password,omitempty"`

	// PasswordConfirm is accepted on input only and never persisted.
	PasswordConfirm string `json:"password_confirm,omitempty"`

	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   *string    `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	// Active is false for accounts closed by their owner; such users are
	// invisible to every query.
	Active bool `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	Version   int64     `json:"-"`
}

func (u *User) Columns() map[string]any {
	return map[string]any{
		"id":                     &u.ID,
		"name":                   &u.Name,
		"email":                  &u.Email,
		"photo":                  &u.Photo,
		"role":                   &u.Role,
		"password":               &u.Password,
		"password_changed_at":    &u.PasswordChangedAt,
		"password_reset_token":   &u.PasswordResetToken,
		"password_reset_expires": &u.PasswordResetExpires,
		"active":                 &u.Active,
		"created_at":             &u.CreatedAt,
		"version":                &u.Version,
	}
}

// ChangedPasswordAfter reports whether the password was changed after a
// token issued at iat. Comparison is done in whole seconds, the resolution
// of JWT timestamps.
func (u *User) ChangedPasswordAfter(iat time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return iat.Unix() < u.PasswordChangedAt.Unix()
}

// HasRole reports whether the user's role is one of roles.
func (u *User) HasRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// Sanitized returns a copy safe to render to clients.
func (u User) Sanitized() User {
	u.Password = ""
	u.PasswordConfirm = ""
	return u
}
