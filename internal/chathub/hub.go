package chathub

import (
	"log"

	"ambientchat/backend/internal/models"
)

// Hub fans out chat events to every live subscriber of the affected chat.
// All client bookkeeping happens inside the Run goroutine; the channels are
// the only way in.
type Hub struct {
	// Clients maps connection id to client. Owned by the Run goroutine.
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	BroadcastCh  chan models.ChatEvent
}

// NewHub returns a hub ready for Run.
func NewHub() *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan models.ChatEvent, 64),
	}
}

// Broadcast queues an event for delivery. It never blocks a REST
// operation: when the hub is saturated the event is dropped, because the
// durable log, not the live feed, is the source of truth.
func (h *Hub) Broadcast(ev models.ChatEvent) {
	select {
	case h.BroadcastCh <- ev:
	default:
		log.Printf("WARNING: hub saturated, dropping %s event for chat %s", ev.Type, ev.ChatID)
	}
}

// Run is the hub's dispatcher loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.RegisterCh:
			h.Clients[client.GetConnID()] = client
			log.Printf("Client %s subscribed to chat %s", client.GetConnID(), client.GetChatID())

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client.GetConnID()]; ok {
				delete(h.Clients, client.GetConnID())
				client.Close()
				log.Printf("Client %s unsubscribed", client.GetConnID())
			}

		case ev := <-h.BroadcastCh:
			for _, client := range h.Clients {
				if client.GetChatID() != ev.ChatID {
					continue
				}
				select {
				case client.GetSendChannel() <- ev:
				default:
					// Slow consumer: drop the connection rather than
					// stall every other subscriber.
					delete(h.Clients, client.GetConnID())
					client.Close()
				}
			}
		}
	}
}
