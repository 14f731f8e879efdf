package http

import (
	"github.com/gin-gonic/gin"

	"horticulture-assistant/pkg/response"
)

// CreateSession godoc
// @Summary     Create a conversation session
// @Description Creates a fresh session and returns its id for use in message and WebSocket calls.
// @Tags        Chat
// @Produce     json
// @Success     200 {object} createSessionResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sessions [POST]
func (h *handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := h.sessions.Create(ctx)
	if err != nil {
		h.l.Errorf(ctx, "sessions.Create: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, createSessionResp{SessionID: sess.SessionID})
}

// GetSession godoc
// @Summary     Get session state
// @Description Returns the session's registration state, current flow and conversation history.
// @Tags        Chat
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id} [GET]
func (h *handler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := h.sessions.Get(ctx, c.Param("id"))
	if err != nil {
		response.NotFound(c, err)
		return
	}

	response.OK(c, newSessionResp(sess))
}

// PostMessage godoc
// @Summary     Send a message
// @Description Runs one conversation turn and returns the assistant reply. Request/response fallback for clients without WebSocket support.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       id   path string     true "Session ID"
// @Param       body body messageReq true "User message"
// @Success     200 {object} messageResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sessions/{id}/messages [POST]
func (h *handler) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req messageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}
	if err := req.validate(); err != nil {
		response.Error(c, err, nil)
		return
	}

	reply, err := h.orch.ProcessTurn(ctx, c.Param("id"), req.Text)
	if err != nil {
		h.l.Errorf(ctx, "orch.ProcessTurn: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newMessageResp(c.Param("id"), reply))
}
