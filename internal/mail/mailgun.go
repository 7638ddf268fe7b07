package mail

import (
	"context"
	"time"

	"github.com/mailgun/mailgun-go/v3"
	"github.com/rs/zerolog/log"
)

// Sink delivers fire-and-forget notifications. The tracker only cares about
// success or failure.
type Sink interface {
	Send(ctx context.Context, subject, body string) error
}

// MailgunSink emails summaries to the tracker owner.
type MailgunSink struct {
	mg        mailgun.Mailgun
	sender    string
	recipient string
}

func NewMailgunSink(domain, apiKey, sender, recipient string) *MailgunSink {
	return &MailgunSink{
		mg:        mailgun.NewMailgun(domain, apiKey),
		sender:    sender,
		recipient: recipient,
	}
}

func (s *MailgunSink) Send(ctx context.Context, subject, body string) error {
	message := s.mg.NewMessage(s.sender, subject, body, s.recipient)

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	_, _, err := s.mg.Send(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("failed to send notification email")
		return err
	}
	log.Info().Str("subject", subject).Msg("notification email sent")
	return nil
}

// NopSink drops notifications when no mail transport is configured.
type NopSink struct{}

func (NopSink) Send(ctx context.Context, subject, body string) error {
	log.Debug().Str("subject", subject).Msg("no mail transport configured, dropping notification")
	return nil
}
