package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps the chat REST endpoints and the WebSocket upgrade.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.POST("/:id/messages", h.PostMessage)
	}

	rg.GET("/ws", h.HandleWS)
}
