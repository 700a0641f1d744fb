package models

// Privacy holds the per-user discoverability flags.
// ShowOnline is stored and merged on profile updates but is not consulted
// by the search routine.
type Privacy struct {
	ShowOnline bool  `json:"showOnline"`
	AllowNick  bool  `json:"allowNick"`
	AllowID    bool  `json:"allowId"`
	LastSeen   int64 `json:"lastSeen"`
}

// DefaultPrivacy is the privacy object assigned at registration.
func DefaultPrivacy(now int64) Privacy {
	return Privacy{
		ShowOnline: true,
		AllowNick:  true,
		AllowID:    true,
		LastSeen:   now,
	}
}

// User represents a registered identity.
// ID is immutable after creation: 2 uppercase letters followed by 8 digits.
// Nickname is globally unique and matches @[A-Za-z0-9_]{1,11}.
// All timestamps are epoch milliseconds.
type User struct {
	ID        string  `json:"id"`
	Nickname  string  `json:"nickname"`
	Name      string  `json:"name"`
	Avatar    string  `json:"avatar,omitempty"`
	Privacy   Privacy `json:"privacy"`
	CreatedAt int64   `json:"createdAt"`
	LastSeen  int64   `json:"lastSeen"`
}

// Public returns the projection of a user that is safe to hand to API
// callers. Today that is every field; any future secret fields must be
// stripped here.
func (u *User) Public() User {
	return *u
}
