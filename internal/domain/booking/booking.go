// Package booking models consultation appointments made through the public
// site. Appointment data lives on the content API; this package gives the
// raw records a typed shape and validates the actions an admin can take.
package booking

import (
	"errors"
	"fmt"

	"github.com/AMINUL200/huberslaw-sub000/internal/domain/resource"
)

// Appointment status values.
const (
	StatusPending     = "pending"
	StatusAccepted    = "accepted"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

// Admin actions on an appointment.
const (
	ActionAccept     = "accept"
	ActionCancel     = "cancel"
	ActionReschedule = "reschedule"
)

// ErrUnknownAction is returned for an action outside the allowed set.
var ErrUnknownAction = errors.New("unknown booking action")

// Appointment is one consultation request.
type Appointment struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Service     string
	ScheduledAt string // "2026-03-10 14:30" as stored by the API
	Notes       string
	Status      string
}

// FromResource builds an Appointment from a raw API record.
func FromResource(r resource.Resource) Appointment {
	return Appointment{
		ID:          r.ID(),
		Name:        r.String("client_name"),
		Email:       r.String("client_email"),
		Phone:       r.String("client_phone"),
		Service:     r.String("service"),
		ScheduledAt: r.String("scheduled_at"),
		Notes:       r.String("notes"),
		Status:      r.String("status"),
	}
}

// StatusFor returns the appointment status an action leads to.
// PRE: action is one of the Action constants
// POST: returns ErrUnknownAction for anything else
func StatusFor(action string) (string, error) {
	switch action {
	case ActionAccept:
		return StatusAccepted, nil
	case ActionCancel:
		return StatusCancelled, nil
	case ActionReschedule:
		return StatusRescheduled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// When formats the appointment slot for display and email bodies.
func (a Appointment) When() string {
	if a.ScheduledAt == "" {
		return "a time to be confirmed"
	}
	return a.ScheduledAt
}
