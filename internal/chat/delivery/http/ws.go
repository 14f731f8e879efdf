package http

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"horticulture-assistant/internal/chat/orchestrator"
	"horticulture-assistant/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsConn serializes writes; gorilla connections allow one concurrent writer.
type wsConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *wsConn) send(event wsEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(event)
}

// Hub tracks open sockets by session id so server-initiated replies, like the
// delayed payment confirmation, reach whoever is connected.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*wsConn
	l     log.Logger
}

var _ orchestrator.Notifier = (*Hub)(nil)

// NewHub creates an empty connection hub.
func NewHub(l log.Logger) *Hub {
	return &Hub{conns: make(map[string]*wsConn), l: l}
}

func (h *Hub) register(sessionID string, ws *websocket.Conn) *wsConn {
	conn := &wsConn{ws: ws}
	h.mu.Lock()
	h.conns[sessionID] = conn
	h.mu.Unlock()
	return conn
}

func (h *Hub) unregister(sessionID string, conn *wsConn) {
	h.mu.Lock()
	if h.conns[sessionID] == conn {
		delete(h.conns, sessionID)
	}
	h.mu.Unlock()
}

// Push implements orchestrator.Notifier. Sessions without an open socket are
// skipped; the reply still lives in the session history.
func (h *Hub) Push(sessionID string, reply orchestrator.Reply) {
	h.mu.RLock()
	conn := h.conns[sessionID]
	h.mu.RUnlock()
	if conn == nil {
		return
	}
	if err := conn.send(responseEvent(reply)); err != nil {
		h.l.Warnf(context.Background(), "chat.ws: push to session %s: %v", sessionID, err)
	}
}

// HandleWS godoc
// @Summary     Conversation WebSocket
// @Description Upgrades to a WebSocket. Inbound: {"text": "...", "session_id": "..."} (session_id optional). Outbound events: session, typing, response, error.
// @Tags        Chat
// @Param       session_id query string false "Existing session id; a new session is assigned when absent"
// @Success     101 {string} string "Switching Protocols"
// @Router      /api/v1/ws [GET]
func (h *handler) HandleWS(c *gin.Context) {
	ctx := c.Request.Context()

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.l.Warnf(ctx, "chat.ws: upgrade: %v", err)
		return
	}
	defer ws.Close()

	sess, _, err := h.sessions.GetOrCreate(ctx, c.Query("session_id"))
	if err != nil {
		h.l.Errorf(ctx, "chat.ws: session: %v", err)
		return
	}
	id := sess.SessionID

	conn := h.hub.register(id, ws)
	defer h.hub.unregister(id, conn)

	if err := conn.send(sessionEvent(id)); err != nil {
		return
	}

	for {
		var in wsInbound
		if err := ws.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.l.Warnf(ctx, "chat.ws: session %s: read: %v", id, err)
			}
			return
		}

		text := strings.TrimSpace(in.Text)
		if text == "" {
			_ = conn.send(errorEvent(errTextRequired.Error()))
			continue
		}

		// Messages may target another session explicitly; the socket's own
		// session stays the default.
		turnID := id
		if in.SessionID != "" {
			turnID = in.SessionID
		}

		_ = conn.send(typingEvent(true))
		reply, err := h.orch.ProcessTurn(ctx, turnID, text)
		_ = conn.send(typingEvent(false))

		if err != nil {
			h.l.Errorf(ctx, "chat.ws: session %s: %v", turnID, err)
			_ = conn.send(errorEvent("Something went wrong. Please try again."))
			continue
		}
		if err := conn.send(responseEvent(reply)); err != nil {
			return
		}
	}
}
