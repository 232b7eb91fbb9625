package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/api"
	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/http/middleware"
	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/http/perf"
	emaillogStore "github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage/emaillog"
	sessionStore "github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage/session"
	"github.com/AMINUL200/huberslaw-sub000/internal/application/manager"
	"github.com/AMINUL200/huberslaw-sub000/internal/application/notify"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/catalog"
)

// Deps holds the dependencies the HTTP layer needs.
type Deps struct {
	API       *api.Client
	Sessions  sessionStore.Store
	EmailLog  emaillogStore.Store
	Notifier  *notify.Notifier
	Collector *perf.Collector
	BaseURL   string // public origin used in emailed action links
}

// loadCSRFKey reads the CSRF secret from HUBERSLAW_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("HUBERSLAW_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("HUBERSLAW_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("HUBERSLAW_ENV") == "production" {
		log.Fatal("HUBERSLAW_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (forms won't survive restart). Set HUBERSLAW_CSRF_KEY for production.")
	return key
}

// Global deps instance (set by NewMux)
var deps *Deps

// Per-resource managers, one per catalog entry (set by NewMux)
var managers map[string]*manager.Manager

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, d *Deps) http.Handler {
	deps = d
	middleware.SecureCookies = os.Getenv("HUBERSLAW_ENV") == "production"

	managers = make(map[string]*manager.Manager)
	for _, schema := range catalog.All() {
		managers[schema.Name] = manager.New(schema, d.API)
	}

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(d.Sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(d.Collector),
	)
}
