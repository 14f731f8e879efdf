package session

import (
	"sync"

	"horticulture-assistant/pkg/log"
)

// Manager layers per-session locking, bounded history, and read-modify-write
// updates over a Store. All session mutations go through the Manager so each
// session id has a single writer at a time.
type Manager struct {
	store      Store
	logger     log.Logger
	maxHistory int

	locks sync.Map // session id -> *sync.Mutex
}

// Config holds Manager tunables.
type Config struct {
	MaxHistory int
}

// NewManager creates a session Manager backed by the given store.
func NewManager(store Store, cfg Config, logger log.Logger) *Manager {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = DefaultMaxHistory
	}
	return &Manager{
		store:      store,
		logger:     logger,
		maxHistory: cfg.MaxHistory,
	}
}
