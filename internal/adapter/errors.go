package adapter

import "errors"

var (
	ErrMailUnauthorized = errors.New("mail provider rejected the API key")
	ErrMailBadRequest   = errors.New("mail provider rejected the message")
	ErrMailRateLimited  = errors.New("mail provider rate limit exceeded")
	ErrMailUnavailable  = errors.New("mail provider unavailable")
	ErrEmptyRecipient   = errors.New("mail recipient is empty")
)
