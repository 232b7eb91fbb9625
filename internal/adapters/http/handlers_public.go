package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/AMINUL200/huberslaw-sub000/internal/domain/booking"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/catalog"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/content"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/resource"
)

// fetchList pulls a resource list from the content API.
func fetchList(ctx context.Context, name string) ([]resource.Resource, error) {
	var records []resource.Resource
	if err := deps.API.GetJSON(ctx, name, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// fetchSettings pulls the site settings singleton. Failure degrades to zero
// values so public pages still render.
func fetchSettings(ctx context.Context) content.Settings {
	var record resource.Resource
	if err := deps.API.GetJSON(ctx, catalog.SiteSettings, nil, &record); err != nil {
		return content.Settings{}
	}
	return content.SettingsFromResource(record)
}

// handleHome handles GET /. Banners and services load concurrently; the page
// renders once both arrive.
func handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var bannerRecords, serviceRecords []resource.Resource
	var settings content.Settings

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bannerRecords, err = fetchList(gctx, catalog.Banners)
		return err
	})
	g.Go(func() (err error) {
		serviceRecords, err = fetchList(gctx, catalog.Services)
		return err
	})
	g.Go(func() error {
		settings = fetchSettings(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		upstreamError(w, r, err)
		return
	}

	var banners []content.Banner
	for _, rec := range content.Active(bannerRecords) {
		banners = append(banners, content.BannerFromResource(rec))
	}
	var services []content.Service
	for _, rec := range content.Active(serviceRecords) {
		services = append(services, content.ServiceFromResource(rec))
	}

	renderTemplate(w, r, "home.html", map[string]any{
		"Settings": settings,
		"Banners":  banners,
		"Services": services,
	})
}

// aboutTabs are the sections of the about page, selected by ?tab=.
var aboutTabs = []string{"about", "mission", "vision", "team"}

// handleAbout handles GET /about?tab=. Settings and team load concurrently.
func handleAbout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tab := r.URL.Query().Get("tab")
	valid := false
	for _, t := range aboutTabs {
		if tab == t {
			valid = true
			break
		}
	}
	if !valid {
		tab = "about"
	}

	var teamRecords []resource.Resource
	var settings content.Settings

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		teamRecords, err = fetchList(gctx, catalog.TeamMembers)
		return err
	})
	g.Go(func() error {
		settings = fetchSettings(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		upstreamError(w, r, err)
		return
	}

	var team []content.TeamMember
	for _, rec := range content.Active(teamRecords) {
		team = append(team, content.TeamMemberFromResource(rec))
	}

	renderTemplate(w, r, "about.html", map[string]any{
		"Settings": settings,
		"Team":     team,
		"Tab":      tab,
	})
}

// handlePublicServices handles GET /services.
func handlePublicServices(w http.ResponseWriter, r *http.Request) {
	records, err := fetchList(r.Context(), catalog.Services)
	if err != nil {
		upstreamError(w, r, err)
		return
	}
	var services []content.Service
	for _, rec := range content.Active(records) {
		services = append(services, content.ServiceFromResource(rec))
	}
	renderTemplate(w, r, "services.html", map[string]any{
		"Settings": fetchSettings(r.Context()),
		"Services": services,
	})
}

// handleServiceDetail handles GET /services/{slug}.
func handleServiceDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	records, err := fetchList(r.Context(), catalog.Services)
	if err != nil {
		upstreamError(w, r, err)
		return
	}
	for _, rec := range content.Active(records) {
		svc := content.ServiceFromResource(rec)
		if svc.Slug == slug {
			renderTemplate(w, r, "service_detail.html", map[string]any{
				"Settings": fetchSettings(r.Context()),
				"Service":  svc,
			})
			return
		}
	}
	http.NotFound(w, r)
}

// handleTeam handles GET /team.
func handleTeam(w http.ResponseWriter, r *http.Request) {
	records, err := fetchList(r.Context(), catalog.TeamMembers)
	if err != nil {
		upstreamError(w, r, err)
		return
	}
	var team []content.TeamMember
	for _, rec := range content.Active(records) {
		team = append(team, content.TeamMemberFromResource(rec))
	}
	renderTemplate(w, r, "team.html", map[string]any{
		"Settings": fetchSettings(r.Context()),
		"Team":     team,
	})
}

// handleTeamMember handles GET /team/{slug}.
func handleTeamMember(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	records, err := fetchList(r.Context(), catalog.TeamMembers)
	if err != nil {
		upstreamError(w, r, err)
		return
	}
	for _, rec := range content.Active(records) {
		member := content.TeamMemberFromResource(rec)
		if member.Slug == slug {
			renderTemplate(w, r, "team_member.html", map[string]any{
				"Settings": fetchSettings(r.Context()),
				"Member":   member,
			})
			return
		}
	}
	http.NotFound(w, r)
}

// handleCareers handles GET /careers.
func handleCareers(w http.ResponseWriter, r *http.Request) {
	records, err := fetchList(r.Context(), catalog.Vacancies)
	if err != nil {
		upstreamError(w, r, err)
		return
	}
	var vacancies []content.Vacancy
	for _, rec := range content.Active(records) {
		vacancies = append(vacancies, content.VacancyFromResource(rec))
	}
	renderTemplate(w, r, "careers.html", map[string]any{
		"Settings":  fetchSettings(r.Context()),
		"Vacancies": vacancies,
	})
}

// handleTerms handles GET /terms.
func handleTerms(w http.ResponseWriter, r *http.Request) {
	records, err := fetchList(r.Context(), catalog.Terms)
	if err != nil {
		upstreamError(w, r, err)
		return
	}
	renderTemplate(w, r, "terms.html", map[string]any{
		"Settings": fetchSettings(r.Context()),
		"Pages":    records,
	})
}

// handleContactPage handles GET /contact.
func handleContactPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "contact.html", map[string]any{
		"Settings": fetchSettings(r.Context()),
	})
}

// handleContactSubmit handles POST /contact. The message is forwarded to the
// content API and shows up in the back office inbox.
func handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	payload := map[string]any{
		"name":    formString(r, "name"),
		"email":   formString(r, "email"),
		"phone":   formString(r, "phone"),
		"subject": formString(r, "subject"),
		"message": formString(r, "message"),
	}
	if payload["name"] == "" || payload["email"] == "" || payload["message"] == "" {
		renderTemplate(w, r, "contact.html", map[string]any{
			"Settings": fetchSettings(r.Context()),
			"Error":    "Name, email and message are required.",
			"Form":     payload,
		})
		return
	}
	if _, err := deps.API.Post(r.Context(), catalog.ContactMessages, payload); err != nil {
		renderTemplate(w, r, "contact.html", map[string]any{
			"Settings": fetchSettings(r.Context()),
			"Error":    "Something went wrong. Please try again.",
			"Form":     payload,
		})
		return
	}
	renderTemplate(w, r, "contact.html", map[string]any{
		"Settings": fetchSettings(r.Context()),
		"Success":  "Thank you. We will be in touch shortly.",
	})
}

// handleBookingPage handles GET /book.
func handleBookingPage(w http.ResponseWriter, r *http.Request) {
	records, err := fetchList(r.Context(), catalog.Services)
	if err != nil {
		upstreamError(w, r, err)
		return
	}
	var services []content.Service
	for _, rec := range content.Active(records) {
		services = append(services, content.ServiceFromResource(rec))
	}
	renderTemplate(w, r, "book.html", map[string]any{
		"Settings": fetchSettings(r.Context()),
		"Services": services,
	})
}

// handleBookingSubmit handles POST /book — a consultation request from the
// public site.
func handleBookingSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	payload := map[string]any{
		"client_name":  formString(r, "client_name"),
		"client_email": formString(r, "client_email"),
		"client_phone": formString(r, "client_phone"),
		"service":      formString(r, "service"),
		"scheduled_at": formString(r, "scheduled_at"),
		"notes":        formString(r, "notes"),
	}
	if payload["client_name"] == "" || payload["client_email"] == "" || payload["scheduled_at"] == "" {
		renderTemplate(w, r, "book.html", map[string]any{
			"Settings": fetchSettings(r.Context()),
			"Error":    "Name, email and a preferred time are required.",
			"Form":     payload,
		})
		return
	}
	raw, err := deps.API.Post(r.Context(), catalog.Bookings, payload)
	if err != nil {
		renderTemplate(w, r, "book.html", map[string]any{
			"Settings": fetchSettings(r.Context()),
			"Error":    "Something went wrong. Please try again.",
			"Form":     payload,
		})
		return
	}

	settings := fetchSettings(r.Context())
	notifyFirm(r.Context(), raw, payload, settings.Email)

	renderTemplate(w, r, "book.html", map[string]any{
		"Settings": settings,
		"Success":  "Your request has been received. We will confirm your appointment by email.",
	})
}

// notifyFirm emails the firm the action links for a freshly created booking.
// The visitor already has their confirmation screen, so failures here are
// logged and swallowed.
func notifyFirm(ctx context.Context, created json.RawMessage, payload map[string]any, to string) {
	if to == "" {
		return
	}
	var record resource.Resource
	if err := json.Unmarshal(created, &record); err != nil || record.ID() == "" {
		slog.Warn("booking_created_without_id", "error", err)
		return
	}
	appt := booking.Appointment{
		ID:          record.ID(),
		Name:        payload["client_name"].(string),
		Email:       payload["client_email"].(string),
		Phone:       payload["client_phone"].(string),
		Service:     payload["service"].(string),
		ScheduledAt: payload["scheduled_at"].(string),
		Status:      booking.StatusPending,
	}
	if err := deps.Notifier.ActionLinks(ctx, to, appt, deps.BaseURL); err != nil {
		slog.Warn("booking_links_failed", "id", appt.ID, "error", err)
	}
}
