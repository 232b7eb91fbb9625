package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/api"
	emailPkg "github.com/AMINUL200/huberslaw-sub000/internal/adapters/email"
	web "github.com/AMINUL200/huberslaw-sub000/internal/adapters/http"
	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/http/middleware"
	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage"
	emaillogStore "github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage/emaillog"
	sessionStore "github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage/session"
	"github.com/AMINUL200/huberslaw-sub000/internal/application/notify"
)

// fakeAPI is an in-process stand-in for the content API. Responses are
// keyed by "METHOD /path".
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]string
	requests  []string
}

func (f *fakeAPI) set(key, data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[key] = `{"status":true,"data":` + data + `}`
}

func (f *fakeAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		key := r.Method + " " + r.URL.Path
		f.requests = append(f.requests, key)
		w.Header().Set("Content-Type", "application/json")
		if resp, ok := f.responses[key]; ok {
			fmt.Fprint(w, resp)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status":false,"message":"Record not found."}`)
	})
}

// testApp holds the running test server, the fake content API, and
// Playwright handles.
type testApp struct {
	BaseURL string
	API     *fakeAPI
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp wires the full app against a fake content API, starts an HTTP
// server on a free port, and launches a headless browser.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tmpDir := t.TempDir()
	db, err := storage.Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}

	fake := &fakeAPI{responses: map[string]string{}}
	apiSrv := httptest.NewServer(fake.handler())

	// Minimal default content so every public page renders.
	fake.set("GET /site-settings", `{"site_name":"Hubers Law","tagline":"Straight answers, sound advice","phone":"03 555 0123","email":"info@huberslaw.test"}`)
	fake.set("GET /banners", `[]`)
	fake.set("GET /services", `[]`)
	fake.set("GET /team-members", `[]`)
	fake.set("GET /vacancies", `[]`)
	fake.set("GET /terms", `[]`)

	emailLog := emaillogStore.NewSQLiteStore(db)
	client := api.NewClient(apiSrv.URL, func(ctx context.Context) string {
		if sess, ok := middleware.GetSessionFromContext(ctx); ok {
			return sess.APIToken
		}
		return ""
	})

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	mux := web.NewMux("static", &web.Deps{
		API:      client,
		Sessions: sessionStore.NewSQLiteStore(db),
		EmailLog: emailLog,
		Notifier: notify.New(emailPkg.NewNoopSender(), emailLog, "Hubers Law <noreply@huberslaw.test>", "Hubers Law"),
		BaseURL:  fmt.Sprintf("http://127.0.0.1:%d", port),
	})
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		API:     fake,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		apiSrv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login signs in through the real login form. The fake API accepts any
// credentials and hands back a bearer token.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	a.API.set("POST /admin/login", `{"token":"test-bearer","name":"Admin","email":"admin@huberslaw.test"}`)

	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=email]").Fill("admin@huberslaw.test"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("TestPass123!"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/admin", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to the back office: %v", err)
	}
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
