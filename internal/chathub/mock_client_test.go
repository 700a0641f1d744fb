package chathub_test

import (
	"sync"

	"ambientchat/backend/internal/chathub"
	"ambientchat/backend/internal/models"
)

// mockClient implements chathub.Client for hub tests. Everything the tests
// assert on is observed through channels, never through hub internals.
type mockClient struct {
	ConnID      string
	ChatID      string
	RecvChannel chan models.ChatEvent

	closed    chan struct{}
	closeOnce sync.Once
}

func newMockClient(connID, chatID string) *mockClient {
	return &mockClient{
		ConnID:      connID,
		ChatID:      chatID,
		RecvChannel: make(chan models.ChatEvent, 8),
		closed:      make(chan struct{}),
	}
}

var _ chathub.Client = (*mockClient)(nil)

func (c *mockClient) GetConnID() string                       { return c.ConnID }
func (c *mockClient) GetChatID() string                       { return c.ChatID }
func (c *mockClient) GetSendChannel() chan<- models.ChatEvent { return c.RecvChannel }
func (c *mockClient) Run()                                    {}
func (c *mockClient) Close()                                  { c.closeOnce.Do(func() { close(c.closed) }) }

// Closed reports the hub shutting this client down.
func (c *mockClient) Closed() <-chan struct{} { return c.closed }
