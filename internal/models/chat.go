package models

// Reaction is one emoji appended to a message. There is no uniqueness rule:
// the same user may react repeatedly, even with the same emoji.
type Reaction struct {
	From  string `json:"from"`
	Emoji string `json:"emoji"`
	TS    int64  `json:"ts"`
}

// Message is one entry in a chat's append-only log. Messages are never
// edited, deleted, or reordered once appended.
type Message struct {
	From      string     `json:"from"`
	Text      string     `json:"text"`
	TS        int64      `json:"ts"`
	Reactions []Reaction `json:"reactions"`
}

// Chat is a pairwise session. ID doubles as the lookup key: the two
// participant ids sorted lexicographically and joined with "__", so
// opening a chat is order-independent.
type Chat struct {
	ID       string     `json:"id"`
	Users    []string   `json:"users"`
	Messages []*Message `json:"messages"`
}
