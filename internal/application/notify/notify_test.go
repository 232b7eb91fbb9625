package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/email"
	logstore "github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage/emaillog"
	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/booking"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/emaillog"
)

// fakeSender captures the last request and can be set to fail.
type fakeSender struct {
	last email.SendRequest
	fail bool
}

func (f *fakeSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	f.last = req
	if f.fail {
		return email.SendResult{}, errors.New("provider down")
	}
	return email.SendResult{MessageID: "re_test", SentAt: time.Now()}, nil
}

func newTestNotifier(t *testing.T, sender *fakeSender) (*Notifier, logstore.Store) {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	store := logstore.NewSQLiteStore(db)
	return New(sender, store, "Hubers Law <noreply@huberslaw.co.nz>", "Hubers Law"), store
}

// TestNotifier_BookingDecision verifies the accept email is sent and logged.
func TestNotifier_BookingDecision(t *testing.T) {
	sender := &fakeSender{}
	n, store := newTestNotifier(t, sender)

	appt := booking.Appointment{
		ID: "7", Name: "Alex Chen", Email: "alex@example.com",
		Service: "Family Law", ScheduledAt: "2026-03-10 14:30",
	}
	if err := n.BookingDecision(context.Background(), appt, booking.ActionAccept); err != nil {
		t.Fatalf("BookingDecision: %v", err)
	}

	if sender.last.To[0] != "alex@example.com" {
		t.Errorf("recipient = %v", sender.last.To)
	}
	if !strings.Contains(sender.last.HTML, "2026-03-10 14:30") {
		t.Errorf("body missing slot: %s", sender.last.HTML)
	}

	entries, _ := store.List(context.Background(), logstore.ListFilter{Kind: emaillog.KindBookingAccepted})
	if len(entries) != 1 || entries[0].Status != emaillog.StatusSent {
		t.Errorf("log entries = %+v", entries)
	}
	if entries[0].ResendMessageID != "re_test" {
		t.Errorf("message id = %q", entries[0].ResendMessageID)
	}
}

// TestNotifier_BookingDecision_UnknownAction verifies rejection without a send.
func TestNotifier_BookingDecision_UnknownAction(t *testing.T) {
	sender := &fakeSender{}
	n, store := newTestNotifier(t, sender)

	err := n.BookingDecision(context.Background(), booking.Appointment{Email: "x@example.com"}, "approve")
	if !errors.Is(err, booking.ErrUnknownAction) {
		t.Fatalf("err = %v", err)
	}
	if count, _ := store.Count(context.Background()); count != 0 {
		t.Errorf("log entries = %d, want 0", count)
	}
}

// TestNotifier_SendFailureLogged verifies a failed delivery still leaves a
// log entry with the failure recorded.
func TestNotifier_SendFailureLogged(t *testing.T) {
	sender := &fakeSender{fail: true}
	n, store := newTestNotifier(t, sender)

	appt := booking.Appointment{Name: "Alex", Email: "alex@example.com", Service: "Wills", ScheduledAt: "2026-04-01 09:00"}
	if err := n.BookingDecision(context.Background(), appt, booking.ActionCancel); err == nil {
		t.Fatal("expected send failure")
	}

	entries, _ := store.List(context.Background(), logstore.ListFilter{Status: emaillog.StatusFailed})
	if len(entries) != 1 || entries[0].Error != "provider down" {
		t.Errorf("failed entries = %+v", entries)
	}
}

// TestNotifier_ActionLinks verifies all three links appear and the send is logged.
func TestNotifier_ActionLinks(t *testing.T) {
	sender := &fakeSender{}
	n, store := newTestNotifier(t, sender)

	appt := booking.Appointment{
		ID: "12", Name: "Evan Reid", Email: "evan@example.com",
		Phone: "021 555 0000", Service: "Property Law", ScheduledAt: "2026-05-20 10:00",
	}
	err := n.ActionLinks(context.Background(), "office@huberslaw.co.nz", appt, "https://huberslaw.co.nz")
	if err != nil {
		t.Fatalf("ActionLinks: %v", err)
	}

	for _, want := range []string{
		"https://huberslaw.co.nz/booking/accept/12",
		"https://huberslaw.co.nz/booking/cancel/12",
		"https://huberslaw.co.nz/booking/reschedule/12",
	} {
		if !strings.Contains(sender.last.HTML, want) {
			t.Errorf("body missing %s: %s", want, sender.last.HTML)
		}
	}

	entries, _ := store.List(context.Background(), logstore.ListFilter{Kind: emaillog.KindBookingLinks})
	if len(entries) != 1 || entries[0].Recipient != "office@huberslaw.co.nz" {
		t.Errorf("log entries = %+v", entries)
	}
}

// TestNotifier_ContactReply verifies markdown is rendered to HTML.
func TestNotifier_ContactReply(t *testing.T) {
	sender := &fakeSender{}
	n, _ := newTestNotifier(t, sender)

	err := n.ContactReply(context.Background(), "client@example.com",
		"Re: your enquiry", "Thank you for contacting us.\n\n**We can help.**")
	if err != nil {
		t.Fatalf("ContactReply: %v", err)
	}
	if !strings.Contains(sender.last.HTML, "<strong>We can help.</strong>") {
		t.Errorf("markdown not rendered: %s", sender.last.HTML)
	}
}
