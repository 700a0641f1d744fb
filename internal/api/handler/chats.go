package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ambientchat/backend/internal/models"
)

type openChatRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

// OpenChat returns the session for a pair of users, creating it on first
// use. Argument order does not matter.
func (h *Handler) OpenChat(c *gin.Context) {
	var req openChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	chat, err := h.Store.OpenChat(req.A, req.B)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// GetChat returns an existing session with its full log.
func (h *Handler) GetChat(c *gin.Context) {
	chat, err := h.Store.GetChat(c.Param("id"))
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

type postMessageRequest struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// PostMessage appends a message and pushes it to live subscribers.
func (h *Handler) PostMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	chatID := c.Param("id")
	msg, err := h.Store.PostMessage(chatID, req.From, req.Text)
	if err != nil {
		abortErr(c, err)
		return
	}

	h.Hub.Broadcast(models.ChatEvent{
		Type:    models.EventMessage,
		ChatID:  chatID,
		Message: &msg,
	})
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": msg})
}

type reactRequest struct {
	Index *int   `json:"index"`
	Emoji string `json:"emoji"`
	From  string `json:"from"`
}

// React appends a reaction to the message at the given log position.
func (h *Handler) React(c *gin.Context) {
	var req reactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Index == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index required"})
		return
	}

	chatID := c.Param("id")
	reaction, err := h.Store.React(chatID, *req.Index, req.Emoji, req.From)
	if err != nil {
		abortErr(c, err)
		return
	}

	h.Hub.Broadcast(models.ChatEvent{
		Type:     models.EventReaction,
		ChatID:   chatID,
		Index:    *req.Index,
		Reaction: &reaction,
	})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
