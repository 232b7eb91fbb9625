package web

import (
	"log/slog"
	"net/http"

	"github.com/AMINUL200/huberslaw-sub000/internal/domain/booking"
)

// Booking action links emailed when a consultation is requested land on
// /booking/{accept|cancel|reschedule}/{id}. The GET shows the appointment
// and what the verb will do; the POST that actually changes the status sits
// behind the admin session like the rest of the back office. The id in the
// link is deliberate convenience, not access control.

// handleBookingAction handles GET /booking/{action}/{id}.
func handleBookingAction(w http.ResponseWriter, r *http.Request) {
	action := r.PathValue("action")
	id := r.PathValue("id")

	if _, err := booking.StatusFor(action); err != nil {
		http.NotFound(w, r)
		return
	}

	res, err := managers["bookings"].Get(r.Context(), id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		renderTemplate(w, r, "booking_missing.html", map[string]any{"ID": id})
		return
	}
	appt := booking.FromResource(res)

	renderTemplate(w, r, "booking_action.html", map[string]any{
		"Appointment":  appt,
		"Action":       action,
		"IsReschedule": action == booking.ActionReschedule,
		"AlreadyDone":  appt.Status != booking.StatusPending,
	})
}

// handleBookingActionSubmit handles POST /booking/{action}/{id}. The status
// change is pushed to the API first; the client email goes out only once the
// server has confirmed it.
func handleBookingActionSubmit(w http.ResponseWriter, r *http.Request) {
	action := r.PathValue("action")
	id := r.PathValue("id")

	status, err := booking.StatusFor(action)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	res, err := managers["bookings"].Get(r.Context(), id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		renderTemplate(w, r, "booking_missing.html", map[string]any{"ID": id})
		return
	}
	appt := booking.FromResource(res)

	payload := map[string]any{"status": status}
	if action == booking.ActionReschedule {
		slot := formString(r, "scheduled_at")
		if slot == "" {
			renderTemplate(w, r, "booking_action.html", map[string]any{
				"Appointment":  appt,
				"Action":       action,
				"IsReschedule": true,
				"Error":        "Pick a new date and time first.",
			})
			return
		}
		payload["scheduled_at"] = slot
		appt.ScheduledAt = slot
	}

	if _, err := deps.API.Post(r.Context(), "bookings/status/"+id, payload); err != nil {
		upstreamError(w, r, err)
		return
	}
	appt.Status = status

	if err := deps.Notifier.BookingDecision(r.Context(), appt, action); err != nil {
		slog.Error("booking_notify_failed", "id", id, "action", action, "error", err)
	}

	renderTemplate(w, r, "booking_done.html", map[string]any{
		"Appointment": appt,
		"Notice":      actionNotice(action, appt),
	})
}
