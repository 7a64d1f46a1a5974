package mailer

import (
	"context"

	"go.uber.org/zap"
)

// NoopSender drops every message.  It stands in for Resend when no API key
// is configured, so the rest of the system behaves identically whether or
// not email is set up.
type NoopSender struct {
	log *zap.Logger
}

// NewNoopSender returns a sender that only logs what it would have sent.
func NewNoopSender(log *zap.Logger) *NoopSender { return &NoopSender{log: log} }

// Send logs the skipped message and succeeds.
func (s *NoopSender) Send(_ context.Context, m Message) error {
	s.log.Info("email disabled, skipping send",
		zap.String("to", m.To),
		zap.String("subject", m.Subject))
	return nil
}
