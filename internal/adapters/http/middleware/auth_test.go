package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage"
	sessionStore "github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage/session"
	domainSession "github.com/AMINUL200/huberslaw-sub000/internal/domain/session"
)

func newTestSessionStore(t *testing.T) sessionStore.Store {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sessionStore.NewSQLiteStore(db)
}

// TestAuth_ValidCookie verifies a stored session lands in the request context.
func TestAuth_ValidCookie(t *testing.T) {
	store := newTestSessionStore(t)
	sess := domainSession.New("tok-1", "bearer-abc", "admin@huberslaw.co.nz", "Admin", time.Now())
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got domainSession.Session
	var ok bool
	handler := Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/admin/banners", nil)
	req.AddCookie(&http.Cookie{Name: "huberslaw_session", Value: "tok-1"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !ok || got.APIToken != "bearer-abc" {
		t.Errorf("session in context: ok=%v got=%+v", ok, got)
	}
}

// TestAuth_ExpiredSession verifies an expired session row is purged and the
// request proceeds unauthenticated.
func TestAuth_ExpiredSession(t *testing.T) {
	store := newTestSessionStore(t)
	sess := domainSession.New("tok-old", "bearer-abc", "admin@huberslaw.co.nz", "", time.Now().Add(-2*domainSession.Lifetime))
	store.Save(context.Background(), sess)

	var ok bool
	handler := Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/admin/banners", nil)
	req.AddCookie(&http.Cookie{Name: "huberslaw_session", Value: "tok-old"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if ok {
		t.Error("expired session authenticated")
	}
	if _, err := store.Get(context.Background(), "tok-old"); err == nil {
		t.Error("expired row not purged")
	}
}

// TestRequireAdmin_RedirectsHome verifies unauthenticated admin requests land
// on the public home page.
func TestRequireAdmin_RedirectsHome(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without session")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/banners", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

// TestRequireAdmin_PassesThrough verifies an authenticated request reaches
// the handler.
func TestRequireAdmin_PassesThrough(t *testing.T) {
	called := false
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	sess := domainSession.New("tok-1", "bearer-abc", "admin@huberslaw.co.nz", "", time.Now())
	req := httptest.NewRequest("GET", "/admin/banners", nil)
	req = req.WithContext(ContextWithSession(req.Context(), sess))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("handler not reached with valid session")
	}
}
