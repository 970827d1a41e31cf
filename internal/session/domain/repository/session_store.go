package repository

import (
	"context"

	"ev-storefront/internal/session/domain/model"
)

// SessionStore persists session records and the per-session recent-search
// list. Implementations must treat Delete as idempotent and must return
// model.ErrSessionNotFound from Get when no record exists.
type SessionStore interface {
	Save(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, sessionID string) (*model.Session, error)
	Delete(ctx context.Context, sessionID string) error

	SaveSearches(ctx context.Context, sessionID string, searches []string) error
	RecentSearches(ctx context.Context, sessionID string) ([]string, error)
}
