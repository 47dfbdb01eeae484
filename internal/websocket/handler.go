package websocket

import (
	"context"
	"net/http"
	"strings"

	"leo-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The gateway terminates browser traffic and enforces origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub    *Hub
	logger *logger.Logger
}

func NewHandler(hub *Hub, l *logger.Logger) *Handler {
	return &Handler{hub: hub, logger: l}
}

// Connect upgrades GET /ws. The optional username query parameter narrows the stream
// to that user's conversations.
func (h *Handler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithContext(c.Request.Context()).Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(conn, strings.TrimSpace(c.Query("username")))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	go client.WriteLoop(ctx)

	client.ReadLoop()
	h.hub.Unregister(client)
}
