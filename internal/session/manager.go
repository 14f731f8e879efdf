package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"horticulture-assistant/internal/model"
)

// lockFor returns the mutex owning the given session id.
func (m *Manager) lockFor(id string) *sync.Mutex {
	mu, _ := m.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Create makes a brand-new session and persists it.
func (m *Manager) Create(ctx context.Context) (model.Session, error) {
	sess := model.NewSession()
	if err := m.store.Put(ctx, sess.SessionID, sess); err != nil {
		return model.Session{}, err
	}
	m.logger.Infof(ctx, "%s: created session %s", sessionManagerLogPrefix, sess.SessionID)
	return sess, nil
}

// Get returns the session, refreshing its activity timestamp.
func (m *Manager) Get(ctx context.Context, id string) (model.Session, error) {
	mu := m.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	return m.store.Get(ctx, id)
}

// GetOrCreate returns the session for id, or a fresh one when it is missing
// or expired. A fresh session keeps the caller's id, so clients that hold on
// to an expired id keep addressing the same session on later turns. The
// second return reports whether a new session was created.
func (m *Manager) GetOrCreate(ctx context.Context, id string) (model.Session, bool, error) {
	if id == "" {
		sess, err := m.Create(ctx)
		return sess, true, err
	}

	mu := m.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	sess, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		sess = model.NewSession()
		sess.SessionID = id
		if err := m.store.Put(ctx, id, sess); err != nil {
			return model.Session{}, false, err
		}
		m.logger.Infof(ctx, "%s: created session %s", sessionManagerLogPrefix, id)
		return sess, true, nil
	}
	if err != nil {
		return model.Session{}, false, err
	}
	return sess, false, nil
}

// Update applies mutate to the session under its lock and persists the result.
// The mutated session is returned.
func (m *Manager) Update(ctx context.Context, id string, mutate func(*model.Session) error) (model.Session, error) {
	mu := m.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return model.Session{}, err
	}

	if err := mutate(&sess); err != nil {
		return model.Session{}, err
	}
	sess.LastActive = time.Now().UTC()

	if err := m.store.Put(ctx, id, sess); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

// AppendMessage appends a conversation turn, evicting the oldest entries
// beyond the history window.
func (m *Manager) AppendMessage(ctx context.Context, id, role, content string) (model.Session, error) {
	return m.Update(ctx, id, func(s *model.Session) error {
		s.History = append(s.History, model.HistoryMessage{
			Role:      role,
			Content:   content,
			Timestamp: time.Now().UTC(),
		})
		if len(s.History) > m.maxHistory {
			s.History = s.History[len(s.History)-m.maxHistory:]
		}
		return nil
	})
}

// RecentHistory returns up to n most recent turns.
func (m *Manager) RecentHistory(ctx context.Context, id string, n int) ([]model.HistoryMessage, error) {
	sess, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n >= len(sess.History) {
		return sess.History, nil
	}
	return sess.History[len(sess.History)-n:], nil
}
