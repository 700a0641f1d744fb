package models

// Event types pushed to websocket subscribers of a chat.
const (
	EventMessage  = "message"
	EventReaction = "reaction"
)

// ChatEvent is the payload broadcast to live subscribers after a REST
// mutation on a chat. For EventReaction, Index addresses the message the
// reaction was appended to.
type ChatEvent struct {
	Type     string    `json:"type"`
	ChatID   string    `json:"chat_id"`
	Message  *Message  `json:"message,omitempty"`
	Index    int       `json:"index"`
	Reaction *Reaction `json:"reaction,omitempty"`
}
