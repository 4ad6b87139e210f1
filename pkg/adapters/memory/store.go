// Package memory provides the in-process session store used by
// single-instance deployments and tests.
package memory

import (
	"context"
	"sync"

	"github.com/yawmintah/ussdflow/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use. Sessions do not survive a restart, which is
// acceptable: they are ephemeral by contract.
type Store struct {
	data map[string]*domain.Session
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Session),
	}
}

// Save persists the session in memory. The snapshot keeps the stored
// copy isolated from later caller mutations.
func (s *Store) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	copied := sess.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves the session from memory.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Snapshot(), nil
}

// Delete removes the session. Removing an absent ID is a no-op.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the IDs of live sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
