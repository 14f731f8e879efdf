package http

import (
	"github.com/gin-gonic/gin"

	"horticulture-assistant/internal/chat/orchestrator"
	"horticulture-assistant/internal/session"
	"horticulture-assistant/pkg/log"
)

// Handler is the public interface for the chat HTTP delivery layer.
type Handler interface {
	CreateSession(c *gin.Context)
	GetSession(c *gin.Context)
	PostMessage(c *gin.Context)
	HandleWS(c *gin.Context)
}

type handler struct {
	l        log.Logger
	orch     *orchestrator.Orchestrator
	sessions *session.Manager
	hub      *Hub
}

// New creates the chat HTTP handler. The returned hub should be attached to
// the orchestrator as its notifier so delayed replies reach open sockets.
func New(l log.Logger, orch *orchestrator.Orchestrator, sessions *session.Manager) (*handler, *Hub) {
	hub := NewHub(l)
	return &handler{
		l:        l,
		orch:     orch,
		sessions: sessions,
		hub:      hub,
	}, hub
}
