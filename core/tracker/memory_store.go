package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-process map. Suitable for tests
// and single-process hosts that keep engagement history locally.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create inserts a new open session row and assigns its ID.
func (m *MemoryStore) Create(_ context.Context, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess.ID = uuid.New()
	cp := *sess
	m.sessions[sess.ID] = &cp
	return nil
}

// UpdatePage patches the page path of an open session.
func (m *MemoryStore) UpdatePage(_ context.Context, id uuid.UUID, pagePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if !sess.IsOpen() {
		return ErrSessionClosed
	}
	sess.PagePath = pagePath
	return nil
}

// Close records the end of a session. Rows close at most once.
func (m *MemoryStore) Close(_ context.Context, id uuid.UUID, endedAt time.Time, durationMinutes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if !sess.IsOpen() {
		return ErrSessionClosed
	}
	sess.EndedAt = endedAt
	sess.DurationMinutes = durationMinutes
	return nil
}

// ListByUser returns copies of all session rows for the user, unordered.
func (m *MemoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Session
	for _, sess := range m.sessions {
		if sess.UserID == userID {
			out = append(out, *sess)
		}
	}
	return out, nil
}
