package chathub

import "ambientchat/backend/internal/models"

// Client is the interface for one live subscription to a chat. It
// abstracts the underlying connection so the hub can manage clients
// uniformly (the real implementation is a WebSocket; tests use a mock).
type Client interface {
	// GetConnID returns the unique identifier of this connection.
	GetConnID() string
	// GetChatID returns the canonical key of the chat the client follows.
	GetChatID() string

	// GetSendChannel returns the channel the hub pushes chat events into.
	GetSendChannel() chan<- models.ChatEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and channels.
	Close()
}
