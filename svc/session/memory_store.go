package session

import (
	"context"
	"sync"
	"time"
)

// MemoryTokenStore is a TokenStore for tests and the memory store driver.
// Expired sessions are dropped lazily on lookup.
type MemoryTokenStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{sessions: make(map[string]Session), now: time.Now}
}

func (m *MemoryTokenStore) Save(_ context.Context, s Session) error {
	if !s.ExpiresAt.After(m.now()) {
		return ErrSessionExpired
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *MemoryTokenStore) Find(_ context.Context, token string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if !s.ExpiresAt.After(m.now()) {
		delete(m.sessions, token)
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (m *MemoryTokenStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, token)
	return nil
}
