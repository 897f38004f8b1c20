package history

import (
	"context"
	"sync"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

type session struct {
	entries  []Entry
	lastSeen time.Time
}

// MemoryStore is a process-local Store. Sessions idle for longer than the TTL
// are dropped.
type MemoryStore struct {
	mu       sync.Mutex
	limit    int
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*session
}

// NewMemoryStore creates a MemoryStore keeping at most limit entries per
// session. Non-positive arguments fall back to the defaults.
func NewMemoryStore(limit int, ttl time.Duration) *MemoryStore {
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}
	return &MemoryStore{
		limit:    limit,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Append implements Store.
func (m *MemoryStore) Append(_ context.Context, sessionID string, entry Entry) error {
	if err := checkSession(sessionID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.expire(now)

	s, ok := m.sessions[sessionID]
	if !ok {
		s = &session{}
		m.sessions[sessionID] = s
	}
	s.entries = append(s.entries, entry)
	if over := len(s.entries) - m.limit; over > 0 {
		s.entries = append([]Entry(nil), s.entries[over:]...)
	}
	s.lastSeen = now
	return nil
}

// List implements Store. Entries are returned oldest first.
func (m *MemoryStore) List(_ context.Context, sessionID string) ([]Entry, error) {
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.expire(now)

	s, ok := m.sessions[sessionID]
	if !ok {
		return []Entry{}, nil
	}
	s.lastSeen = now
	return append([]Entry(nil), s.entries...), nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(_ context.Context, sessionID string) error {
	if err := checkSession(sessionID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// expire must be called with mu held.
func (m *MemoryStore) expire(now time.Time) {
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.ttl {
			delete(m.sessions, id)
		}
	}
}
