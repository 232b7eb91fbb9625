package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage"
	domain "github.com/AMINUL200/huberslaw-sub000/internal/domain/session"
)

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a Session by its token.
// PRE: token is non-empty
// POST: Returns the session or domain.ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, token string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT token, api_token, email, name, created_at, expires_at FROM session WHERE token = ?", token)

	entity, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Session{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a Session to the database.
// PRE: entity has a non-empty token
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (token, api_token, email, name, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(token) DO UPDATE SET
		   api_token=excluded.api_token, email=excluded.email, name=excluded.name,
		   expires_at=excluded.expires_at`,
		entity.Token,
		entity.APIToken,
		entity.Email,
		entity.Name,
		entity.CreatedAt.Format(timeLayout),
		entity.ExpiresAt.Format(timeLayout),
	)
	return err
}

// Delete removes a Session from the database.
// PRE: token is non-empty
// POST: Session with given token is removed
func (s *SQLiteStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE token = ?", token)
	return err
}

// DeleteExpired removes all sessions past their expiry.
// PRE: none
// POST: Returns the number of sessions removed
func (s *SQLiteStore) DeleteExpired(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM session WHERE expires_at <= ?", time.Now().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func scanSession(scan func(dest ...any) error) (domain.Session, error) {
	var entity domain.Session
	var createdAt, expiresAt string
	if err := scan(&entity.Token, &entity.APIToken, &entity.Email, &entity.Name, &createdAt, &expiresAt); err != nil {
		return domain.Session{}, err
	}
	var err error
	if entity.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.Session{}, fmt.Errorf("bad created_at: %w", err)
	}
	if entity.ExpiresAt, err = time.Parse(timeLayout, expiresAt); err != nil {
		return domain.Session{}, fmt.Errorf("bad expires_at: %w", err)
	}
	return entity, nil
}
