package core

import (
	"sort"
	"strings"

	"ambientchat/backend/internal/models"
)

// chatKeySep joins the two sorted participant ids into the canonical chat
// key. The key serves as both lookup key and chat id, so no separate index
// is needed.
const chatKeySep = "__"

// ChatKey derives the canonical session key for an unordered pair of user
// ids: sorted lexicographically and joined with "__". Pure function;
// ChatKey(a, b) == ChatKey(b, a).
func ChatKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, chatKeySep)
}

// OpenChat returns the session for the pair {a, b}, creating it with an
// empty message log on first use. Both ids must resolve to registered
// users. Repeated calls are idempotent and never discard messages.
func (s *Store) OpenChat(a, b string) (models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a == "" || b == "" {
		return models.Chat{}, validationErr("a,b required")
	}
	if s.findByID(a) == nil || s.findByID(b) == nil {
		return models.Chat{}, notFoundErr("unknown user")
	}

	key := ChatKey(a, b)
	chat, ok := s.chats[key]
	if !ok {
		pair := []string{a, b}
		sort.Strings(pair)
		chat = &models.Chat{
			ID:       key,
			Users:    pair,
			Messages: []*models.Message{},
		}
		s.chats[key] = chat
		s.mutated()
	}
	return copyChat(chat), nil
}

// GetChat returns an existing session without creating one.
func (s *Store) GetChat(chatID string) (models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return models.Chat{}, notFoundErr("chat not found")
	}
	return copyChat(chat), nil
}

// IsParticipant reports whether userID is one of the chat's two members.
func (s *Store) IsParticipant(chatID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return false
	}
	return participant(chat, userID)
}

func participant(c *models.Chat, userID string) bool {
	for _, id := range c.Users {
		if id == userID {
			return true
		}
	}
	return false
}

// PostMessage appends a message to the chat's log. Only the two
// participants may send; the sender's lastSeen is refreshed on success.
func (s *Store) PostMessage(chatID, from, text string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return models.Message{}, notFoundErr("chat not found")
	}
	if from == "" || text == "" {
		return models.Message{}, validationErr("from and text required")
	}
	if !participant(chat, from) {
		return models.Message{}, forbiddenErr("sender is not a chat participant")
	}

	msg := &models.Message{
		From:      from,
		Text:      text,
		TS:        now(),
		Reactions: []models.Reaction{},
	}
	chat.Messages = append(chat.Messages, msg)
	if sender := s.findByID(from); sender != nil {
		sender.LastSeen = msg.TS
	}
	s.mutated()
	return copyMessage(msg), nil
}

// React appends a reaction to the message at the given position in the
// chat's log. Any index outside [0, len(messages)) addresses no message
// and is not found. Positional addressing is stable because the log is
// append-only and entries are never removed or reordered.
func (s *Store) React(chatID string, index int, emoji, from string) (models.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return models.Reaction{}, notFoundErr("chat not found")
	}
	if emoji == "" || from == "" {
		return models.Reaction{}, validationErr("from and emoji required")
	}
	if index < 0 || index >= len(chat.Messages) {
		return models.Reaction{}, notFoundErr("msg not found")
	}

	r := models.Reaction{From: from, Emoji: emoji, TS: now()}
	msg := chat.Messages[index]
	msg.Reactions = append(msg.Reactions, r)
	s.mutated()
	return r, nil
}

// copyChat returns a value copy whose Users and Messages slices are
// detached from the store, so callers can hold the result outside the lock.
func copyChat(c *models.Chat) models.Chat {
	out := models.Chat{
		ID:       c.ID,
		Users:    append([]string(nil), c.Users...),
		Messages: make([]*models.Message, 0, len(c.Messages)),
	}
	for _, m := range c.Messages {
		mc := copyMessage(m)
		out.Messages = append(out.Messages, &mc)
	}
	return out
}

func copyMessage(m *models.Message) models.Message {
	return models.Message{
		From:      m.From,
		Text:      m.Text,
		TS:        m.TS,
		Reactions: append([]models.Reaction{}, m.Reactions...),
	}
}
