// Package mailer sends customer notification emails.  Sending is always
// best-effort: callers log failures and move on, they never roll back a
// state transition because an email bounced.
package mailer

import "context"

// Message is a single outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message.  Implementations: Resend API, or a noop when
// no API key is configured.
type Sender interface {
	Send(ctx context.Context, m Message) error
}
