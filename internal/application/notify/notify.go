// Package notify composes and sends the transactional emails the back
// office triggers: booking decisions and contact replies. Every send is
// recorded in the email log, including failures.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/email"
	logstore "github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage/emaillog"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/booking"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/emaillog"
)

// Notifier sends transactional emails and records them in the log.
type Notifier struct {
	sender   email.Sender
	log      logstore.Store
	from     string
	siteName string
	markdown goldmark.Markdown
}

// New creates a Notifier.
// PRE: sender and log are non-nil; from is a valid sender address
func New(sender email.Sender, log logstore.Store, from, siteName string) *Notifier {
	return &Notifier{
		sender:   sender,
		log:      log,
		from:     from,
		siteName: siteName,
		markdown: goldmark.New(
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
	}
}

// BookingDecision emails the client about an accepted, cancelled or
// rescheduled appointment.
// PRE: action is one of the booking.Action constants
// POST: an email log entry exists regardless of delivery outcome
func (n *Notifier) BookingDecision(ctx context.Context, a booking.Appointment, action string) error {
	var kind, subject, body string
	switch action {
	case booking.ActionAccept:
		kind = emaillog.KindBookingAccepted
		subject = "Your appointment is confirmed"
		body = fmt.Sprintf("<p>Dear %s,</p><p>Your %s consultation on %s has been confirmed.</p><p>%s</p>",
			html.EscapeString(a.Name), html.EscapeString(a.Service), html.EscapeString(a.When()), html.EscapeString(n.siteName))
	case booking.ActionCancel:
		kind = emaillog.KindBookingCancelled
		subject = "Your appointment has been cancelled"
		body = fmt.Sprintf("<p>Dear %s,</p><p>Unfortunately your %s consultation on %s has been cancelled. Please get in touch to arrange another time.</p><p>%s</p>",
			html.EscapeString(a.Name), html.EscapeString(a.Service), html.EscapeString(a.When()), html.EscapeString(n.siteName))
	case booking.ActionReschedule:
		kind = emaillog.KindBookingReschedule
		subject = "Your appointment needs a new time"
		body = fmt.Sprintf("<p>Dear %s,</p><p>We need to reschedule your %s consultation originally set for %s. We will contact you shortly with alternatives.</p><p>%s</p>",
			html.EscapeString(a.Name), html.EscapeString(a.Service), html.EscapeString(a.When()), html.EscapeString(n.siteName))
	default:
		return fmt.Errorf("notify: %w: %q", booking.ErrUnknownAction, action)
	}
	return n.deliver(ctx, kind, a.Email, subject, body)
}

// ActionLinks emails the accept, cancel and reschedule links for a new
// appointment so the decision is one click away from the inbox.
// POST: an email log entry exists regardless of delivery outcome
func (n *Notifier) ActionLinks(ctx context.Context, to string, a booking.Appointment, baseURL string) error {
	subject := fmt.Sprintf("New booking request from %s", a.Name)
	link := func(action string) string {
		return fmt.Sprintf("%s/booking/%s/%s", baseURL, action, a.ID)
	}
	body := fmt.Sprintf(
		"<p>%s has requested a %s consultation on %s.</p>"+
			"<p>Phone: %s<br>Email: %s</p>"+
			"<p><a href=%q>Accept</a> &middot; <a href=%q>Reschedule</a> &middot; <a href=%q>Cancel</a></p>",
		html.EscapeString(a.Name), html.EscapeString(a.Service), html.EscapeString(a.When()),
		html.EscapeString(a.Phone), html.EscapeString(a.Email),
		link(booking.ActionAccept), link(booking.ActionReschedule), link(booking.ActionCancel))
	return n.deliver(ctx, emaillog.KindBookingLinks, to, subject, body)
}

// ContactReply renders a markdown reply to HTML and emails it.
// PRE: to is a valid address, markdownBody is the admin's composed reply
// POST: an email log entry exists regardless of delivery outcome
func (n *Notifier) ContactReply(ctx context.Context, to, subject, markdownBody string) error {
	var buf bytes.Buffer
	if err := n.markdown.Convert([]byte(markdownBody), &buf); err != nil {
		return fmt.Errorf("render reply: %w", err)
	}
	return n.deliver(ctx, emaillog.KindContactReply, to, subject, buf.String())
}

func (n *Notifier) deliver(ctx context.Context, kind, to, subject, bodyHTML string) error {
	entry := emaillog.New(kind, to, subject, bodyHTML, time.Now())
	if err := n.log.Save(ctx, entry); err != nil {
		return fmt.Errorf("log email: %w", err)
	}

	result, err := n.sender.Send(ctx, email.SendRequest{
		To:      []string{to},
		From:    n.from,
		Subject: subject,
		HTML:    bodyHTML,
	})
	if err != nil {
		entry.MarkFailed(err.Error())
		if saveErr := n.log.Save(ctx, entry); saveErr != nil {
			slog.Error("email_log_update_failed", "error", saveErr, "id", entry.ID)
		}
		return err
	}

	entry.MarkSent(result.MessageID, result.SentAt)
	if err := n.log.Save(ctx, entry); err != nil {
		slog.Error("email_log_update_failed", "error", err, "id", entry.ID)
	}
	return nil
}
