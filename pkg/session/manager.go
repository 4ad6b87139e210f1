package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yawmintah/ussdflow/internal/logging"
	"github.com/yawmintah/ussdflow/pkg/domain"
	"github.com/yawmintah/ussdflow/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent
// operations per session ID. Requests for distinct IDs never block each
// other; requests for the same ID serialize. Reference counting garbage
// collects locks once no request holds them, so the lock map does not
// grow with dialog traffic.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Guards the lock map
	locks map[string]*lockEntry // Active per-session locks

	locker  ports.DistributedLocker // Optional, for multi-replica deployments
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL bounds how long a crashed replica may hold a distributed
// lock. Ignored without WithLocker.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for deferred errors.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new session manager on top of a store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes fn while holding the lock for the session. Every
// read-modify-write cycle on a session must run inside one WithLock
// call: that is what makes creation atomic and lets a delete win over a
// save racing on the same ID.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Load retrieves an existing session.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	var sess *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		sess, err = m.store.Load(ctx, sessionID)
		return err
	})
	return sess, err
}

// GetOrCreate loads a session, lazily creating one pinned to the start
// screen when the ID is unseen. Two concurrent callers on one ID can
// never both observe a fresh session: the first persists it before the
// second's load runs.
func (m *Manager) GetOrCreate(ctx context.Context, sessionID string, start domain.ScreenID) (*domain.Session, error) {
	var sess *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		sess, err = m.getOrCreateLocked(ctx, sessionID, start)
		return err
	})
	return sess, err
}

// getOrCreateLocked is the body of GetOrCreate for callers already
// inside WithLock.
func (m *Manager) getOrCreateLocked(ctx context.Context, sessionID string, start domain.ScreenID) (*domain.Session, error) {
	sess, err := m.store.Load(ctx, sessionID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check session existence: %w", err)
	}

	sess = domain.NewSession(sessionID, start)

	// Persist immediately to reserve the ID.
	if err := m.store.Save(ctx, sessionID, sess); err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	return sess, nil
}

// Save persists the session state.
func (m *Manager) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, sess)
	})
}

// Delete removes the session. Idempotent.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store. Callers must only touch
// it from inside WithLock.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}
