package models

// State is the persisted document: every user and every chat with its full
// message and reaction logs. It is loaded wholesale at startup and written
// wholesale on every flush.
type State struct {
	Users []*User          `json:"users"`
	Chats map[string]*Chat `json:"chats"`
}

// NewState returns an empty state with initialized collections.
func NewState() *State {
	return &State{
		Users: []*User{},
		Chats: make(map[string]*Chat),
	}
}
