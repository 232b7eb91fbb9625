package web

import (
	"net/http"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/http/middleware"
)

// registerRoutes wires every handler onto the mux. Admin routes sit behind
// RequireAdmin; an unauthenticated visitor is sent to the public home page.
func registerRoutes(mux *http.ServeMux) {
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(h)
	}

	// Public site
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("GET /about", handleAbout)
	mux.HandleFunc("GET /services", handlePublicServices)
	mux.HandleFunc("GET /services/{slug}", handleServiceDetail)
	mux.HandleFunc("GET /team", handleTeam)
	mux.HandleFunc("GET /team/{slug}", handleTeamMember)
	mux.HandleFunc("GET /careers", handleCareers)
	mux.HandleFunc("GET /terms", handleTerms)
	mux.HandleFunc("GET /contact", handleContactPage)
	mux.HandleFunc("POST /contact", handleContactSubmit)
	mux.HandleFunc("GET /book", handleBookingPage)
	mux.HandleFunc("POST /book", handleBookingSubmit)

	// Emailed booking action links. Viewing is open; acting needs a session.
	mux.HandleFunc("GET /booking/{action}/{id}", handleBookingAction)
	mux.Handle("POST /booking/{action}/{id}", admin(handleBookingActionSubmit))

	// Authentication
	mux.HandleFunc("GET /login", handleLoginPage)
	mux.HandleFunc("POST /login", handleLogin)
	mux.HandleFunc("POST /logout", handleLogout)
	mux.HandleFunc("GET /forgot-password", handleForgotPasswordPage)
	mux.HandleFunc("POST /forgot-password", handleForgotPassword)

	// Admin back office
	mux.Handle("GET /admin", admin(handleAdminDashboard))
	mux.Handle("GET /admin/emails", admin(handleAdminEmailLog))
	mux.Handle("GET /admin/bookings/view/{id}", admin(handleAdminBookingDetail))
	mux.Handle("POST /admin/bookings/action/{id}", admin(handleAdminBookingAction))
	mux.Handle("POST /admin/bookings/links/{id}", admin(handleAdminBookingLinks))
	mux.Handle("GET /admin/contact-messages/reply/{id}", admin(handleAdminContactReplyPage))
	mux.Handle("POST /admin/contact-messages/reply/{id}", admin(handleAdminContactReply))
	mux.Handle("GET /admin/{resource}", admin(handleAdminResourceList))
	mux.Handle("GET /admin/{resource}/new", admin(handleAdminResourceNew))
	mux.Handle("GET /admin/{resource}/edit/{id}", admin(handleAdminResourceEdit))
	mux.Handle("POST /admin/{resource}/save", admin(handleAdminResourceSave))
	mux.Handle("POST /admin/{resource}/delete/{id}", admin(handleAdminResourceDelete))
	mux.Handle("POST /admin/{resource}/toggle/{id}", admin(handleAdminResourceToggle))

	// Perf dashboard data
	mux.Handle("GET /api/perf", admin(handlePerfSnapshot))
}
