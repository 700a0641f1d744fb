package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ambientchat/backend/internal/core"
)

type registerRequest struct {
	Nickname string `json:"nickname"`
	Name     string `json:"name"`
}

// Register creates a new identity and returns its public projection.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.Store.Register(req.Nickname, req.Name)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type loginRequest struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// Login verifies the id+nickname pair and refreshes lastSeen.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ID == "" || req.Nickname == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and nickname required"})
		return
	}

	user, err := h.Store.Login(req.ID, req.Nickname)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUser is a direct lookup by id, no privacy filtering.
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Store.GetByID(c.Param("id"))
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SearchUsers resolves ?q= with privacy filtering applied.
func (h *Handler) SearchUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Search(c.Query("q")))
}

// UpdateProfile applies a partial profile update.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var upd core.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.Store.UpdateProfile(c.Param("id"), upd)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
