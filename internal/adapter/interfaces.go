// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the tour-booking server.
//
// The primary abstraction is [Mailer], which decouples the service layer
// from the e-mail provider. The package ships a SendGrid implementation
// ([NewSendgridMailer]) and a logging implementation ([NewLogMailer]) used
// when no API key is configured.
//
// Provider responses are mapped to the sentinel values defined in errors.go
// by mapMailResponse so that callers can use [errors.Is] for
// provider-agnostic error handling.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-tour-booking/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mailer_mock.go -package=mock

// Mailer delivers transactional e-mails (welcome messages, password reset
// links). Implementations must be safe for concurrent use.
type Mailer interface {
	// Send delivers a single plain-text message. It returns an error if the
	// provider rejects the message or cannot be reached.
	Send(ctx context.Context, email models.Email) error
}
