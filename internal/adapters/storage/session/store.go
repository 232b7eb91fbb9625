package session

import (
	"context"

	domain "github.com/AMINUL200/huberslaw-sub000/internal/domain/session"
)

// Store persists admin sessions.
type Store interface {
	Get(ctx context.Context, token string) (domain.Session, error)
	Save(ctx context.Context, value domain.Session) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int, error)
}
