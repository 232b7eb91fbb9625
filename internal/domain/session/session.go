// Package session defines the admin login session persisted between
// restarts. The session carries the bearer token issued by the content API;
// no credentials are stored locally.
package session

import (
	"errors"
	"time"
)

// Lifetime is how long a session stays valid after login.
const Lifetime = 30 * 24 * time.Hour

// ErrNotFound is returned when no session matches a token.
var ErrNotFound = errors.New("session not found")

// Session is an authenticated admin session.
type Session struct {
	Token     string // opaque cookie value
	APIToken  string // bearer token for the content API
	Email     string
	Name      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// New creates a session expiring Lifetime from now.
// PRE: token and apiToken are non-empty
// POST: ExpiresAt = CreatedAt + Lifetime
func New(token, apiToken, email, name string, now time.Time) Session {
	return Session{
		Token:     token,
		APIToken:  apiToken,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(Lifetime),
	}
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
