package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/api"
	emailPkg "github.com/AMINUL200/huberslaw-sub000/internal/adapters/email"
	web "github.com/AMINUL200/huberslaw-sub000/internal/adapters/http"
	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/http/middleware"
	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/http/perf"
	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage"
	emaillogStore "github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage/emaillog"
	sessionStore "github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage/session"
	"github.com/AMINUL200/huberslaw-sub000/internal/application/notify"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	db, err := storage.Open(envOrDefault("HUBERSLAW_DB", "huberslaw.db"))
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	sessions := sessionStore.NewSQLiteStore(timedDB)
	emailLog := emaillogStore.NewSQLiteStore(timedDB)

	// All content lives behind the REST API; the bearer token rides on the
	// caller's session.
	apiBase := envOrDefault("HUBERSLAW_API_URL", "https://api.huberslaw.co.nz/api")
	client := api.NewClient(apiBase, func(ctx context.Context) string {
		if sess, ok := middleware.GetSessionFromContext(ctx); ok {
			return sess.APIToken
		}
		return ""
	}, api.WithCollector(collector))

	// Configure email sender
	emailFrom := envOrDefault("HUBERSLAW_RESEND_FROM", "Hubers Law <noreply@huberslaw.co.nz>")
	var sender emailPkg.Sender
	if resendKey := os.Getenv("HUBERSLAW_RESEND_KEY"); resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("HUBERSLAW_ENV") == "production" {
			log.Println("WARNING: HUBERSLAW_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set HUBERSLAW_RESEND_KEY for real delivery)")
		}
	}
	siteName := envOrDefault("HUBERSLAW_SITE_NAME", "Hubers Law")
	notifier := notify.New(sender, emailLog, emailFrom, siteName)

	mux := web.NewMux(envOrDefault("HUBERSLAW_STATIC_DIR", "static"), &web.Deps{
		API:       client,
		Sessions:  sessions,
		EmailLog:  emailLog,
		Notifier:  notifier,
		Collector: collector,
		BaseURL:   envOrDefault("HUBERSLAW_BASE_URL", "http://localhost:8090"),
	})

	addr := envOrDefault("HUBERSLAW_ADDR", ":8090")
	log.Printf("Hubers Law %s starting on %s (env=%s, api=%s, schema=%d)",
		version, addr, envOrDefault("HUBERSLAW_ENV", "development"), apiBase, storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
