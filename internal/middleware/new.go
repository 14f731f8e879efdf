package middleware

import (
	"horticulture-assistant/config"
	"horticulture-assistant/pkg/log"
)

// Middleware bundles the cross-cutting gin handlers.
type Middleware struct {
	l   log.Logger
	cfg config.RateLimitConfig
}

// New creates the middleware set.
func New(l log.Logger, cfg config.RateLimitConfig) Middleware {
	return Middleware{
		l:   l,
		cfg: cfg,
	}
}
