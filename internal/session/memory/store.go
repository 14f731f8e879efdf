package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"horticulture-assistant/internal/model"
	"horticulture-assistant/internal/session"
)

// Store is an in-process session store with TTL eviction. It keeps the same
// whole-session-overwrite semantics as a networked TTL key-value store, so a
// Redis-backed implementation can replace it behind session.Store.
type Store struct {
	cache *expirable.LRU[string, model.Session]
}

var _ session.Store = (*Store)(nil)

// New creates a session store holding at most maxSessions entries,
// each expiring ttl after its last write.
func New(maxSessions int, ttl time.Duration) *Store {
	return &Store{
		cache: expirable.NewLRU[string, model.Session](maxSessions, nil, ttl),
	}
}

// Get returns the session or session.ErrNotFound. Reads refresh the TTL,
// matching sliding-expiry session semantics.
func (s *Store) Get(ctx context.Context, id string) (model.Session, error) {
	sess, ok := s.cache.Get(id)
	if !ok {
		return model.Session{}, session.ErrNotFound
	}
	// expirable.LRU expires from write time, so re-add to slide the window.
	s.cache.Add(id, sess)
	return sess, nil
}

// Put overwrites the session and resets its TTL.
func (s *Store) Put(ctx context.Context, id string, sess model.Session) error {
	s.cache.Add(id, sess)
	return nil
}

// Touch resets the TTL without modifying the session.
func (s *Store) Touch(ctx context.Context, id string) error {
	sess, ok := s.cache.Get(id)
	if !ok {
		return session.ErrNotFound
	}
	s.cache.Add(id, sess)
	return nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.cache.Remove(id)
	return nil
}
