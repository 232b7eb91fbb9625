// Package email delivers the transactional mail the back office produces:
// booking decisions, action-link digests and contact replies. Everything
// goes out one message at a time; composition and logging live in
// application/notify.
package email

import (
	"context"
	"time"
)

// SendRequest is one outbound message.
type SendRequest struct {
	To      []string
	From    string // e.g. "Hubers Law <noreply@huberslaw.co.nz>"
	Subject string
	HTML    string
	ReplyTo string // optional
}

// SendResult reports what the provider accepted.
type SendResult struct {
	MessageID string // provider id, stored in the email log
	SentAt    time.Time
}

// Sender delivers a single email through an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
