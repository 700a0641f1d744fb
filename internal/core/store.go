package core

import (
	"encoding/json"
	"sync"
	"time"

	"ambientchat/backend/internal/models"
)

// Store owns the whole in-memory state: every user and every chat. One
// mutex serializes all core operations, so each one observes and leaves a
// fully consistent state. A Store is constructed once at startup,
// optionally hydrated from a snapshot, and shared by reference with every
// component that needs it.
type Store struct {
	mu    sync.Mutex
	users []*models.User
	chats map[string]*models.Chat

	// onMutate, when set, is invoked after every successful mutating
	// operation. The persistence manager uses it to schedule an eager
	// flush; it must not block.
	onMutate func()
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users: []*models.User{},
		chats: make(map[string]*models.Chat),
	}
}

// OnMutate registers the post-mutation hook. Must be called before the
// store starts serving operations.
func (s *Store) OnMutate(fn func()) {
	s.onMutate = fn
}

func (s *Store) mutated() {
	if s.onMutate != nil {
		s.onMutate()
	}
}

// Restore replaces the store contents with a previously persisted state.
func (s *Store) Restore(state *models.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = state.Users
	if s.users == nil {
		s.users = []*models.User{}
	}
	s.chats = state.Chats
	if s.chats == nil {
		s.chats = make(map[string]*models.Chat)
	}
}

// SnapshotJSON serializes the full state under the store lock, so the
// resulting document is always internally consistent even while other
// operations are queued behind it.
func (s *Store) SnapshotJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return json.Marshal(&models.State{Users: s.users, Chats: s.chats})
}

// now returns the current time in epoch milliseconds, the timestamp unit
// used everywhere in the persisted document and on the wire.
var now = func() int64 { return time.Now().UnixMilli() }

func (s *Store) findByID(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Store) findByNickname(nick string) *models.User {
	for _, u := range s.users {
		if u.Nickname == nick {
			return u
		}
	}
	return nil
}
