package emaillog

import (
	"context"

	domain "github.com/AMINUL200/huberslaw-sub000/internal/domain/emaillog"
)

// Store persists the outbound email log.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	Save(ctx context.Context, value domain.Entry) error
	List(ctx context.Context, filter ListFilter) ([]domain.Entry, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Kind   string
	Status string
	Limit  int
	Offset int
}
