// Package redis provides a session store and a distributed locker
// backed by Redis, for deployments running more than one replica behind
// the gateway.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/yawmintah/ussdflow/pkg/domain"
)

// Store implements ports.SessionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for sessions. Gateways abandon dialogs
// without notice, so production deployments should always set one.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "ussd:session:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the session to Redis as a single JSON value, so a save
// is atomic with respect to concurrent readers.
func (s *Store) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sessionID), data, s.ttl)

	// The index orders sessions by last write; List prunes entries whose
	// session key has since expired.
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(time.Now().Unix()),
		Member: sessionID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the session from Redis.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if sess.Captured == nil {
		sess.Captured = make(map[string]string)
	}
	return &sess, nil
}

// Delete removes the session. Absent IDs are not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(sessionID))
	pipe.ZRem(ctx, s.indexKey(), sessionID)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns live sessions. Redis expires session keys on its own
// schedule, so the index is checked against the keys and stale entries
// are pruned lazily here.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(ids) == 0 {
		return ids, nil
	}

	pipe := s.client.Pipeline()
	checks := make([]*backend.IntCmd, len(ids))
	for i, id := range ids {
		checks[i] = pipe.Exists(ctx, s.key(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to check session liveness: %w", err)
	}

	live := ids[:0]
	var stale []interface{}
	for i, id := range ids {
		if checks[i].Val() > 0 {
			live = append(live, id)
		} else {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		if err := s.client.ZRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune expired sessions: %w", err)
		}
	}
	return live, nil
}

// Client returns the underlying redis client, so a Locker can share the
// same connection pool.
func (s *Store) Client() *backend.Client {
	return s.client
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
