package web

import (
	"log/slog"
	"net/http"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage/emaillog"
	"github.com/AMINUL200/huberslaw-sub000/internal/application/listutil"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/catalog"
)

// handleAdminEmailLog handles GET /admin/emails. The log lives in local
// storage, not behind the API, so paging happens against the database.
func handleAdminEmailLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pp := listutil.ParsePageParams(q)

	total, err := deps.EmailLog.Count(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	info := listutil.NewPageInfo(pp.Page, pp.PerPage, total)

	entries, err := deps.EmailLog.List(r.Context(), emaillog.ListFilter{
		Kind:   q.Get("kind"),
		Status: q.Get("status"),
		Limit:  info.PerPage,
		Offset: info.Offset(),
	})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "admin_emails.html", map[string]any{
		"Entries":        entries,
		"PageInfo":       info,
		"Kind":           q.Get("kind"),
		"Status":         q.Get("status"),
		"PerPageOptions": listutil.PerPageOptions,
	})
}

// handleAdminContactReplyPage handles GET /admin/contact-messages/reply/{id}.
func handleAdminContactReplyPage(w http.ResponseWriter, r *http.Request) {
	m := managers["contact-messages"]
	msg, err := m.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		upstreamError(w, r, err)
		return
	}
	renderTemplate(w, r, "admin_contact_reply.html", map[string]any{
		"Message": msg,
		"Subject": "Re: " + msg.String("subject"),
	})
}

// handleAdminContactReply handles POST /admin/contact-messages/reply/{id}.
// The reply body is markdown; the sender renders it to HTML. Once the reply
// is on its way the message is marked replied so the inbox reflects it.
func handleAdminContactReply(w http.ResponseWriter, r *http.Request) {
	m := managers["contact-messages"]
	id := r.PathValue("id")
	msg, err := m.Get(r.Context(), id)
	if err != nil {
		upstreamError(w, r, err)
		return
	}

	subject := formString(r, "subject")
	body := formString(r, "body")
	if subject == "" || body == "" {
		renderTemplate(w, r, "admin_contact_reply.html", map[string]any{
			"Message": msg,
			"Subject": subject,
			"Body":    body,
			"Error":   "Subject and reply are both required.",
		})
		return
	}

	if err := deps.Notifier.ContactReply(r.Context(), msg.String("email"), subject, body); err != nil {
		renderTemplate(w, r, "admin_contact_reply.html", map[string]any{
			"Message": msg,
			"Subject": subject,
			"Body":    body,
			"Error":   "The reply could not be sent. It has been recorded in the email log.",
		})
		return
	}

	if _, err := deps.API.Post(r.Context(), m.Schema().StatusPath(id), map[string]any{"status": catalog.ContactReplied}); err != nil {
		slog.Warn("contact_mark_replied_failed", "id", id, "error", err)
	}

	http.Redirect(w, r, "/admin/contact-messages", http.StatusSeeOther)
}
