package service

import (
	"errors"
	"net/http"
)

// AppError is an operational error: an expected failure whose message is
// safe to show to clients.
type AppError struct {
	StatusCode int
	Message    string
	Err        error
}

// NewAppError creates an operational error with the given status code.
func NewAppError(statusCode int, message string) *AppError {
	return &AppError{StatusCode: statusCode, Message: message}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Operational errors of the auth and user flows.
var (
	ErrNotLoggedIn             = NewAppError(http.StatusUnauthorized, "You are not logged in! Please log in to get access.")
	ErrUserNoLongerExists      = NewAppError(http.StatusUnauthorized, "The user belonging to this token does no longer exist.")
	ErrPasswordChangedRecently = NewAppError(http.StatusUnauthorized, "User recently changed password! Please log in again.")
	ErrForbidden               = NewAppError(http.StatusForbidden, "You do not have permission to perform this action")

	ErrMissingCredentials   = NewAppError(http.StatusBadRequest, "Please provide email and password!")
	ErrIncorrectCredentials = NewAppError(http.StatusUnauthorized, "Incorrect email or password")
	ErrWrongCurrentPassword = NewAppError(http.StatusUnauthorized, "Your current password is wrong.")

	ErrInvalidResetToken = NewAppError(http.StatusBadRequest, "Token is invalid or has expired")
	ErrNoUserWithEmail   = NewAppError(http.StatusNotFound, "There is no user with email address.")
	ErrSendingEmail      = NewAppError(http.StatusInternalServerError, "There was an error sending the email. Try again later!")

	ErrPasswordUpdateNotAllowed = NewAppError(http.StatusBadRequest, "This route is not for password updates. Please use /updatepassword.")
	ErrInvalidPatch             = NewAppError(http.StatusBadRequest, "Request body must be a JSON object")
)

// Token errors are mapped to their messages by the HTTP layer.
var (
	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenIsInvalid      = errors.New("token is invalid")
	ErrTokenCreationFailed = errors.New("token creation failed")
)
