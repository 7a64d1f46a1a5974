package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	log    *zap.Logger
}

// NewResendSender creates a sender with the given API key and From address.
func NewResendSender(apiKey, from string, log *zap.Logger) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from, log: log}
}

// Send delivers a single email via Resend.
func (s *ResendSender) Send(ctx context.Context, m Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{m.To},
		Subject: m.Subject,
		Html:    m.HTML,
	}
	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	s.log.Info("email sent",
		zap.String("message_id", sent.Id),
		zap.String("to", m.To),
		zap.String("subject", m.Subject))
	return nil
}
