package session

import (
	"context"
	"sync"
)

// InMemoryStore implements Store for tests and single-process deployments.
// For production, use RedisStore instead.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewInMemoryStore creates a new in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]Session)}
}

func (s *InMemoryStore) Load(_ context.Context, addr string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[addr]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *InMemoryStore) Save(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.Addr] = sess
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, addr)
	return nil
}
