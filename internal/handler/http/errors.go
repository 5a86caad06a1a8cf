// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tour-booking/internal/service"
)

// Sentinel errors raised by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrTooManyRequests is returned by the rate limiter once an IP has used
	// up its allowance for the current window.
	ErrTooManyRequests = service.NewAppError(http.StatusTooManyRequests,
		"Too many requests from this IP, please try again in an hour!")

	// ErrBodyTooLarge is returned when a request body exceeds the configured
	// limit.
	ErrBodyTooLarge = service.NewAppError(http.StatusRequestEntityTooLarge, "Request body is too large")
)

// Messages of errors whose text is not meant for clients.
const (
	msgInvalidToken = "Invalid token. Please log in again!"
	msgExpiredToken = "Your token has expired! Please log in again."
	msgInternal     = "Something went very wrong!"
)
