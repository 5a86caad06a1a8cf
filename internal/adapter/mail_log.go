package adapter

import (
	"context"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/models"
)

type logMailer struct {
	logger *logger.Logger
}

// NewLogMailer constructs a [Mailer] that writes messages to the log
// instead of delivering them.
func NewLogMailer(logger *logger.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(ctx context.Context, email models.Email) error {
	if email.To == "" {
		return ErrEmptyRecipient
	}

	m.logger.Info().
		Str("func", "*logMailer.Send").
		Str("to", email.To).
		Str("subject", email.Subject).
		Str("text", email.Text).
		Msg("e-mail not delivered, no mail provider configured")
	return nil
}
