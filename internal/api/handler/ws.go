package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ambientchat/backend/internal/chathub"
	"ambientchat/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin policy is handled by the CORS configuration; the socket
	// itself accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and subscribes it to a chat's
// live event stream. The caller must name an existing chat it belongs to:
// ?chat=<canonical key>&user=<participant id>.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	chatID := c.Query("chat")
	userID := c.Query("user")
	if chatID == "" || userID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "chat and user required"})
		return
	}

	if _, err := h.Store.GetChat(chatID); err != nil {
		abortErr(c, err)
		return
	}
	if !h.Store.IsParticipant(chatID, userID) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not a chat participant"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		ConnID: uuid.New().String(),
		ChatID: chatID,
		UserID: userID,
		Conn:   conn,
		Hub:    h.Hub,
		Send:   make(chan models.ChatEvent, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
