package emaillog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/storage"
	domain "github.com/AMINUL200/huberslaw-sub000/internal/domain/emaillog"
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

// GetByID retrieves an Entry by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, recipient, subject, body_html, status, error, resend_message_id, created_at, sent_at
		 FROM email_log WHERE id = ?`, id)

	entity, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Entry{}, fmt.Errorf("email log entry not found: %w", err)
	}
	return entity, err
}

// Save persists an Entry to the database.
// PRE: entity has a non-empty ID
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, e domain.Entry) error {
	var sentAt any
	if !e.SentAt.IsZero() {
		sentAt = e.SentAt.Format(timeLayout)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO email_log (id, kind, recipient, subject, body_html, status, error, resend_message_id, created_at, sent_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   status=excluded.status, error=excluded.error,
		   resend_message_id=excluded.resend_message_id, sent_at=excluded.sent_at`,
		e.ID, e.Kind, e.Recipient, e.Subject, e.BodyHTML, e.Status, e.Error,
		e.ResendMessageID, e.CreatedAt.Format(timeLayout), sentAt)
	return err
}

// List retrieves entries matching the filter, newest first.
// PRE: filter has valid parameters
// POST: Returns matching entries sorted by created_at DESC
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Entry, error) {
	var b strings.Builder
	var args []any

	b.WriteString(`SELECT id, kind, recipient, subject, body_html, status, error, resend_message_id, created_at, sent_at
		FROM email_log WHERE 1=1`)
	if filter.Kind != "" {
		b.WriteString(" AND kind = ?")
		args = append(args, filter.Kind)
	}
	if filter.Status != "" {
		b.WriteString(" AND status = ?")
		args = append(args, filter.Status)
	}
	b.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		entity, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entity)
	}
	return entries, rows.Err()
}

// Count returns the total number of log entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM email_log").Scan(&n)
	return n, err
}

func scanEntry(scan func(dest ...any) error) (domain.Entry, error) {
	var entity domain.Entry
	var createdAt string
	var sentAt sql.NullString
	if err := scan(&entity.ID, &entity.Kind, &entity.Recipient, &entity.Subject,
		&entity.BodyHTML, &entity.Status, &entity.Error, &entity.ResendMessageID,
		&createdAt, &sentAt); err != nil {
		return domain.Entry{}, err
	}
	var err error
	if entity.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.Entry{}, fmt.Errorf("bad created_at: %w", err)
	}
	if sentAt.Valid {
		if entity.SentAt, err = time.Parse(timeLayout, sentAt.String); err != nil {
			return domain.Entry{}, fmt.Errorf("bad sent_at: %w", err)
		}
	}
	return entity, nil
}
