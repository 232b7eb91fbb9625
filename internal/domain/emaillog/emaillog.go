// Package emaillog records every outbound email so the back office can show
// what was sent, to whom, and whether delivery succeeded.
package emaillog

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies why an email was sent.
const (
	KindBookingAccepted   = "booking_accepted"
	KindBookingCancelled  = "booking_cancelled"
	KindBookingReschedule = "booking_reschedule"
	KindBookingLinks      = "booking_links"
	KindContactReply      = "contact_reply"
)

// Delivery status values.
const (
	StatusQueued = "queued"
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Entry is one outbound email.
type Entry struct {
	ID              string
	Kind            string
	Recipient       string
	Subject         string
	BodyHTML        string
	Status          string
	Error           string // failure detail, empty on success
	ResendMessageID string
	CreatedAt       time.Time
	SentAt          time.Time // zero until delivered
}

// New creates a queued entry.
// PRE: kind is one of the Kind constants, recipient is a valid address
// POST: Status is StatusQueued, ID is a fresh UUID
func New(kind, recipient, subject, bodyHTML string, now time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Recipient: recipient,
		Subject:   subject,
		BodyHTML:  bodyHTML,
		Status:    StatusQueued,
		CreatedAt: now,
	}
}

// MarkSent records a successful delivery.
func (e *Entry) MarkSent(messageID string, now time.Time) {
	e.Status = StatusSent
	e.ResendMessageID = messageID
	e.SentAt = now
	e.Error = ""
}

// MarkFailed records a delivery failure.
func (e *Entry) MarkFailed(reason string) {
	e.Status = StatusFailed
	e.Error = reason
	e.SentAt = time.Time{}
}
