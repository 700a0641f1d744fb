package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ambientchat/backend/internal/chathub"
	"ambientchat/backend/internal/core"
)

// maxBodyBytes caps request bodies; avatars arrive as embedded image data,
// so the limit is generous.
const maxBodyBytes = 15 << 20

// Handler exposes the core operations over HTTP.
type Handler struct {
	Store *core.Store
	Hub   *chathub.Hub
}

func NewHandler(store *core.Store, hub *chathub.Hub) *Handler {
	return &Handler{Store: store, Hub: hub}
}

// RegisterRoutes mounts the API on the router.
func (h *Handler) RegisterRoutes(r *gin.Engine, corsOrigin string) {
	r.Use(corsMiddleware(corsOrigin))
	r.Use(limitBody(maxBodyBytes))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.GET("/users/search", h.SearchUsers)
		api.GET("/users/:id", h.GetUser)
		api.PUT("/users/:id", h.UpdateProfile)

		api.POST("/chats/open", h.OpenChat)
		api.GET("/chats/:id", h.GetChat)
		api.POST("/chats/:id/messages", h.PostMessage)
		api.POST("/chats/:id/react", h.React)
	}

	r.GET("/ws", h.ServeWebSocket)
}

// abortErr translates a core error kind to its HTTP status.
func abortErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch core.KindOf(err) {
	case core.KindValidation, core.KindConflict:
		status = http.StatusBadRequest
	case core.KindNotFound:
		status = http.StatusNotFound
	case core.KindForbidden:
		status = http.StatusForbidden
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
