package orchestrator

import (
	"context"
	"time"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/intent"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/session"
	"horticulture-assistant/pkg/llmprovider"
	"horticulture-assistant/pkg/log"
)

// Generator is the slice of the LLM provider manager the orchestrator needs.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Config tunes the conversation engine.
type Config struct {
	MaxToolIterations int
	PaymentDelay      time.Duration
	HistoryWindow     int
}

// Orchestrator drives a conversation turn: classification, flow transitions,
// the bounded tool loop and session persistence.
type Orchestrator struct {
	llm      Generator
	registry *agent.Registry
	sessions *session.Manager
	detector intent.Detector
	market   market.UseCase
	notifier Notifier
	cfg      Config
	l        log.Logger
}

// New creates a conversation orchestrator.
func New(llm Generator, registry *agent.Registry, sessions *session.Manager,
	detector intent.Detector, marketUC market.UseCase, cfg Config, logger log.Logger) *Orchestrator {
	if cfg.MaxToolIterations <= 0 {
		cfg.MaxToolIterations = defaultMaxToolIterations
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = defaultHistoryWindow
	}
	if cfg.PaymentDelay <= 0 {
		cfg.PaymentDelay = defaultPaymentDelay * time.Second
	}
	return &Orchestrator{
		llm:      llm,
		registry: registry,
		sessions: sessions,
		detector: detector,
		market:   marketUC,
		notifier: nopNotifier{},
		cfg:      cfg,
		l:        logger,
	}
}

// SetNotifier attaches the outbound channel for server-initiated replies.
// Must be called before traffic is served.
func (o *Orchestrator) SetNotifier(n Notifier) {
	if n != nil {
		o.notifier = n
	}
}
