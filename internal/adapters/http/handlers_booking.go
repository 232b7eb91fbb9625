package web

import (
	"log/slog"
	"net/http"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/http/middleware"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/booking"
)

// handleAdminBookingDetail handles GET /admin/bookings/view/{id}. Action
// links in notification emails land here, possibly long after the booking
// was removed, so a missing record gets a dedicated screen rather than a
// bare 404.
func handleAdminBookingDetail(w http.ResponseWriter, r *http.Request) {
	m := managers["bookings"]
	res, err := m.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		renderTemplate(w, r, "admin_booking_missing.html", map[string]any{
			"ID": r.PathValue("id"),
		})
		return
	}
	appt := booking.FromResource(res)
	renderTemplate(w, r, "admin_booking.html", map[string]any{
		"Appointment": appt,
		"IsPending":   appt.Status == booking.StatusPending,
	})
}

// handleAdminBookingAction handles POST /admin/bookings/action/{id} with an
// "action" form value of accept, cancel or reschedule. The status change is
// pushed to the API first; the client email goes out only once the server
// has confirmed it.
func handleAdminBookingAction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	action := formString(r, "action")

	status, err := booking.StatusFor(action)
	if err != nil {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	m := managers["bookings"]
	res, err := m.Get(r.Context(), id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		renderTemplate(w, r, "admin_booking_missing.html", map[string]any{"ID": id})
		return
	}
	appt := booking.FromResource(res)

	if _, err := deps.API.Post(r.Context(), "bookings/status/"+id, map[string]any{"status": status}); err != nil {
		upstreamError(w, r, err)
		return
	}
	appt.Status = status

	// A failed email is recorded in the log and must not undo the
	// status change the server already accepted.
	if err := deps.Notifier.BookingDecision(r.Context(), appt, action); err != nil {
		slog.Error("booking_notify_failed", "id", id, "action", action, "error", err)
	}

	renderTemplate(w, r, "admin_booking.html", map[string]any{
		"Appointment": appt,
		"IsPending":   false,
		"Notice":      actionNotice(action, appt),
	})
}

// handleAdminBookingLinks handles POST /admin/bookings/links/{id}: it emails
// the accept/cancel/reschedule links for an appointment to the logged-in
// admin, for forwarding or acting on later.
func handleAdminBookingLinks(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	m := managers["bookings"]
	res, err := m.Get(r.Context(), id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		renderTemplate(w, r, "admin_booking_missing.html", map[string]any{"ID": id})
		return
	}
	appt := booking.FromResource(res)

	sess, _ := middleware.GetSessionFromContext(r.Context())
	notice := "Action links sent to " + sess.Email + "."
	if err := deps.Notifier.ActionLinks(r.Context(), sess.Email, appt, deps.BaseURL); err != nil {
		slog.Error("booking_links_failed", "id", id, "error", err)
		notice = "The email could not be sent. It has been recorded in the email log."
	}
	renderTemplate(w, r, "admin_booking.html", map[string]any{
		"Appointment": appt,
		"IsPending":   appt.Status == booking.StatusPending,
		"Notice":      notice,
	})
}

func actionNotice(action string, appt booking.Appointment) string {
	switch action {
	case booking.ActionAccept:
		return "Booking accepted. " + appt.Name + " has been emailed a confirmation."
	case booking.ActionCancel:
		return "Booking cancelled. " + appt.Name + " has been notified."
	case booking.ActionReschedule:
		return "Reschedule request sent to " + appt.Name + "."
	}
	return ""
}
