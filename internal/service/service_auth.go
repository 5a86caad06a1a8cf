package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-tour-booking/internal/adapter"
	"github.com/MKhiriev/go-tour-booking/internal/config"
	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/internal/utils"
	"github.com/MKhiriev/go-tour-booking/internal/validators"
	"github.com/MKhiriev/go-tour-booking/models"
)

// passwordChangeSkew backdates password_changed_at so that a token issued
// right after the change is not treated as older than it.
const passwordChangeSkew = time.Second

// authService is the concrete implementation of AuthService.
// It handles sign-up, credential verification, the JWT token lifecycle and
// the password reset flow, using a UserRepository for persistence and
// bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// mailer delivers welcome and password reset e-mails.
	mailer adapter.Mailer

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// resetTokenDuration controls how long a password reset token is accepted.
	resetTokenDuration time.Duration

	passwordCost int

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and Mailer and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, mailer adapter.Mailer, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:     userRepository,
		mailer:             mailer,
		validator:          validator,
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		tokenDuration:      cfg.TokenDuration,
		resetTokenDuration: cfg.ResetTokenDuration,
		passwordCost:       cfg.PasswordCost,
		now:                time.Now,
		logger:             logger,
	}
}

// Signup creates a regular user account from the public sign-up form.
//
// Only name, email, photo and the two password fields are taken from the
// input; the role is always [models.RoleUser]. A welcome e-mail is sent on
// a best-effort basis: delivery failures are logged, not returned.
func (a *authService) Signup(ctx context.Context, input models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user := models.User{
		Name:            input.Name,
		Email:           normalizedEmail(input.Email),
		Photo:           input.Photo,
		Role:            models.RoleUser,
		Password:        input.Password,
		PasswordConfirm: input.PasswordConfirm,
	}
	if user.Photo == "" {
		user.Photo = models.DefaultPhoto
	}

	if err := a.validator.Validate(ctx, user); err != nil {
		return models.User{}, err
	}

	hash, err := a.hashPassword(user.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Msg("failed to hash password")
		return models.User{}, err
	}
	user.Password = hash
	user.PasswordConfirm = ""

	created, err := a.userRepository.Create(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	welcome := models.Email{
		To:      created.Email,
		ToName:  created.Name,
		Subject: "Welcome to the Natours Family!",
		Text:    fmt.Sprintf("Hi %s, welcome aboard! We're glad to have you.", firstName(created.Name)),
	}
	if err = a.mailer.Send(ctx, welcome); err != nil {
		log.Warn().Err(err).Str("func", "*authService.Signup").Int64("user_id", created.ID).Msg("failed to send welcome e-mail")
	}

	return created.Sanitized(), nil
}

// Login authenticates a user by email and password.
//
// An unknown email and a wrong password produce the same error so that
// callers cannot probe which accounts exist.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return models.User{}, ErrMissingCredentials
	}

	user, err := a.userRepository.FindByEmail(ctx, normalizedEmail(req.Email))
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrIncorrectCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.checkPassword(user.Password, req.Password) {
		log.Info().Str("func", "*authService.Login").Int64("user_id", user.ID).Msg("wrong password")
		return models.User{}, ErrIncorrectCredentials
	}

	return user.Sanitized(), nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Expired tokens yield ErrTokenIsExpired; any other validation failure
// (bad signature, wrong issuer, malformed) yields ErrTokenIsInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return models.Token{}, ErrTokenIsExpired
	}
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}

	return token, nil
}

func (a *authService) Protect(ctx context.Context, tokenString string) (models.User, error) {
	if tokenString == "" {
		return models.User{}, ErrNotLoggedIn
	}

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindByID(ctx, token.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrUserNoLongerExists
	}
	if err != nil {
		return models.User{}, err
	}

	if token.IssuedAt == nil || user.ChangedPasswordAfter(token.IssuedAt.Time) {
		return models.User{}, ErrPasswordChangedRecently
	}

	return user, nil
}

// ForgotPassword stores the digest of a fresh reset token and mails the
// plain token, appended to resetURL, to the user. When the e-mail cannot be
// sent the token is withdrawn.
func (a *authService) ForgotPassword(ctx context.Context, email string, resetURL string) error {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByEmail(ctx, normalizedEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoUserWithEmail
	}
	if err != nil {
		return err
	}

	plain, hashed, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	expires := a.now().Add(a.resetTokenDuration)
	if err = a.userRepository.SetResetToken(ctx, user.ID, &hashed, &expires); err != nil {
		return err
	}

	msg := models.Email{
		To:      user.Email,
		ToName:  user.Name,
		Subject: fmt.Sprintf("Your password reset token (valid for %d min)", int(a.resetTokenDuration.Minutes())),
		Text: fmt.Sprintf("Forgot your password? Submit a PATCH request with your new password and password_confirm to: %s%s.\n"+
			"If you didn't forget your password, please ignore this email!", resetURL, plain),
	}

	if err = a.mailer.Send(ctx, msg); err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Int64("user_id", user.ID).Msg("failed to send reset e-mail")

		if clearErr := a.userRepository.SetResetToken(ctx, user.ID, nil, nil); clearErr != nil {
			log.Err(clearErr).Str("func", "*authService.ForgotPassword").Int64("user_id", user.ID).Msg("failed to withdraw reset token")
		}
		return &AppError{StatusCode: ErrSendingEmail.StatusCode, Message: ErrSendingEmail.Message, Err: err}
	}

	return nil
}

// ResetPassword sets a new password for the holder of an unexpired reset
// token and returns the user so the caller can log them in.
func (a *authService) ResetPassword(ctx context.Context, token string, req models.ResetPasswordRequest) (models.User, error) {
	now := a.now()

	user, err := a.userRepository.FindByResetToken(ctx, utils.HashToken(token), now)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrInvalidResetToken
	}
	if err != nil {
		return models.User{}, err
	}

	if err = a.setPassword(ctx, &user, req.Password, req.PasswordConfirm); err != nil {
		return models.User{}, err
	}

	return user.Sanitized(), nil
}

// UpdatePassword changes the password of a logged-in user after checking
// the current one.
func (a *authService) UpdatePassword(ctx context.Context, userID int64, req models.UpdatePasswordRequest) (models.User, error) {
	user, err := a.userRepository.FindWithPassword(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrUserNoLongerExists
	}
	if err != nil {
		return models.User{}, err
	}

	if !a.checkPassword(user.Password, req.PasswordCurrent) {
		return models.User{}, ErrWrongCurrentPassword
	}

	if err = a.setPassword(ctx, &user, req.Password, req.PasswordConfirm); err != nil {
		return models.User{}, err
	}

	return user.Sanitized(), nil
}

func (a *authService) setPassword(ctx context.Context, user *models.User, password, confirm string) error {
	candidate := models.User{Password: password, PasswordConfirm: confirm}
	if err := a.validator.Validate(ctx, candidate, validators.FieldPassword); err != nil {
		return err
	}

	hash, err := a.hashPassword(password)
	if err != nil {
		return err
	}

	changedAt := a.now().Add(-passwordChangeSkew)
	if err = a.userRepository.UpdatePassword(ctx, user.ID, hash, changedAt); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.setPassword").Int64("user_id", user.ID).Msg("failed to store password")
		return err
	}

	user.Password = ""
	user.PasswordChangedAt = &changedAt
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil
	return nil
}

func (a *authService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.passwordCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

func (a *authService) checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func firstName(name string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	return first
}
