package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is a process-local Store for tests and Redis-less
// development. Expired sessions are dropped lazily on Get.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
	}
}

func (m *MemoryStore) Create(_ context.Context, s Session) error {
	if s.SessionID == "" || s.Email == "" {
		return fmt.Errorf("session: missing session_id or email")
	}
	if !s.ExpiresAt.After(time.Now()) {
		return fmt.Errorf("session: expires_at must be in the future")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.SessionID] = s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if time.Now().After(s.ExpiresAt) {
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.mu.Unlock()
		return nil, nil
	}

	return &s, nil
}

func (m *MemoryStore) Update(_ context.Context, s Session) error {
	if s.SessionID == "" {
		return fmt.Errorf("session: missing session_id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, s.SessionID)
		return nil
	}

	m.sessions[s.SessionID] = s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}
