package session

import (
	"context"

	"horticulture-assistant/internal/model"
)

// Store is the session persistence backend. Put overwrites the whole session
// and resets its TTL; Get returns ErrNotFound for missing or expired sessions.
type Store interface {
	Get(ctx context.Context, id string) (model.Session, error)
	Put(ctx context.Context, id string, s model.Session) error
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
