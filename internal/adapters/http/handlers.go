package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/api"
	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/http/middleware"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// upstreamError renders a friendly page when the content API rejects or
// cannot serve a request. The server message, if any, is shown verbatim.
func upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Warn("upstream_error", "error", err.Error(), "path", r.URL.Path)
	renderTemplate(w, r, "error.html", map[string]any{
		"Message": api.UserMessage(err),
	})
}

const templatesDir = "internal/adapters/http/templates"

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"isLoggedIn":   func() bool { return loggedIn },
		"currentEmail": func() string { return sess.Email },
		"currentName":  func() string { return sess.Name },
		"csrfToken":    func() string { return csrf.Token(r) },
		"assetURL":     func(path string) string { return deps.API.AssetURL(path) },
		// trustHTML marks back-office rich text as safe. Only content that
		// came from the authenticated editor goes through this.
		"trustHTML": func(s string) template.HTML { return template.HTML(s) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"paginationQuery": func(page int, sort, dir, search string, perPage int) template.URL {
			q := url.Values{}
			q.Set("page", strconv.Itoa(page))
			if perPage > 0 {
				q.Set("per_page", strconv.Itoa(perPage))
			}
			if sort != "" {
				q.Set("sort", sort)
				q.Set("dir", dir)
			}
			if search != "" {
				q.Set("q", search)
			}
			return template.URL(q.Encode())
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handlePerfSnapshot handles GET /api/perf — JSON timing stats for the
// perf dashboard, including upstream API calls.
func handlePerfSnapshot(w http.ResponseWriter, r *http.Request) {
	if deps.Collector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}
	window := 15 * time.Minute
	if v := r.URL.Query().Get("window_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1440 {
			window = time.Duration(n) * time.Minute
		}
	}
	snapshot := deps.Collector.Snapshot(timeNow().Add(-window), 10)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		slog.Error("perf_snapshot_encode_failed", "error", err.Error())
	}
}

// formString trims a posted form value.
func formString(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}
