package adapter

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/MKhiriev/go-tour-booking/internal/config"
	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/models"
)

const (
	defaultFromAddress = "noreply@go-tour-booking.dev"
	defaultFromName    = "Tour Booking"
)

// sendClient is the part of *sendgrid.Client used by the mailer.
type sendClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type sendgridMailer struct {
	client sendClient
	from   *mail.Email
	logger *logger.Logger
}

// NewSendgridMailer constructs a [Mailer] that delivers through the SendGrid
// v3 API using cfg.APIKey.
func NewSendgridMailer(cfg config.Mail, logger *logger.Logger) Mailer {
	return &sendgridMailer{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   sender(cfg),
		logger: logger,
	}
}

// NewMailer picks the SendGrid mailer when an API key is configured and the
// logging mailer otherwise.
func NewMailer(cfg config.Mail, logger *logger.Logger) Mailer {
	if cfg.APIKey == "" {
		logger.Warn().Str("func", "NewMailer").Msg("mail API key is not set, e-mails will only be logged")
		return NewLogMailer(logger)
	}
	return NewSendgridMailer(cfg, logger)
}

func (m *sendgridMailer) Send(ctx context.Context, email models.Email) error {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(email.To) == "" {
		return ErrEmptyRecipient
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	resp, err := m.client.Send(m.buildMessage(email))
	if err != nil {
		log.Err(err).Str("func", "*sendgridMailer.Send").Str("subject", email.Subject).Msg("failed to reach mail provider")
		return fmt.Errorf("%w: %w", ErrMailUnavailable, err)
	}

	if err = mapMailResponse(resp); err != nil {
		log.Err(err).Str("func", "*sendgridMailer.Send").Int("status", resp.StatusCode).Msg("mail provider rejected message")
		return err
	}

	log.Debug().Str("func", "*sendgridMailer.Send").Str("subject", email.Subject).Msg("e-mail sent")
	return nil
}

func (m *sendgridMailer) buildMessage(email models.Email) *mail.SGMailV3 {
	to := mail.NewEmail(email.ToName, email.To)
	htmlContent := "<p>" + strings.ReplaceAll(html.EscapeString(email.Text), "\n", "<br>") + "</p>"
	return mail.NewSingleEmail(m.from, email.Subject, to, email.Text, htmlContent)
}

func sender(cfg config.Mail) *mail.Email {
	address, name := cfg.FromAddress, cfg.FromName
	if address == "" {
		address = defaultFromAddress
	}
	if name == "" {
		name = defaultFromName
	}
	return mail.NewEmail(name, address)
}
