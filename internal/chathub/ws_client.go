package chathub

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"ambientchat/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketClient implements Client over a gorilla/websocket connection.
// The socket is receive-only from the client's point of view: messages are
// posted over the REST API, the socket just streams the resulting events.
type WebSocketClient struct {
	ConnID string
	ChatID string
	UserID string
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan models.ChatEvent
}

func (c *WebSocketClient) GetConnID() string                       { return c.ConnID }
func (c *WebSocketClient) GetChatID() string                       { return c.ChatID }
func (c *WebSocketClient) GetSendChannel() chan<- models.ChatEvent { return c.Send }

// Run starts the pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops writePump.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

// readPump exists to service pong frames and to notice the peer going
// away; any payload the client sends is discarded.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from client %s: %v", c.ConnID, err)
			}
			break
		}
	}
}

// writePump drains the Send channel into the socket and keeps the
// connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding event for client %s: %v", c.ConnID, err)
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
