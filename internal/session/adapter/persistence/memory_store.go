package persistence

import (
	"context"
	"sync"

	"ev-storefront/internal/session/domain/model"
)

// MemorySessionStore is an in-memory SessionStore for development and tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
	searches map[string][]string
}

// NewMemorySessionStore creates a new in-memory session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]model.Session),
		searches: make(map[string][]string),
	}
}

// Save overwrites the stored session unconditionally.
func (m *MemorySessionStore) Save(ctx context.Context, session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = *session
	return nil
}

// Get returns a snapshot copy of the stored session.
func (m *MemorySessionStore) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return &session, nil
}

// Delete removes the session and its search history; idempotent.
func (m *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	delete(m.searches, sessionID)
	return nil
}

// SaveSearches replaces the recent-search list for the session.
func (m *MemorySessionStore) SaveSearches(ctx context.Context, sessionID string, searches []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.searches[sessionID] = append([]string(nil), searches...)
	return nil
}

// RecentSearches returns the stored search list, most recent first.
func (m *MemorySessionStore) RecentSearches(ctx context.Context, sessionID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.searches[sessionID]...), nil
}
