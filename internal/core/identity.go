package core

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"unicode/utf8"

	"ambientchat/backend/internal/models"
)

const idLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	nickRe = regexp.MustCompile(`^@[A-Za-z0-9_]{1,11}$`)
	idRe   = regexp.MustCompile(`^[A-Z]{2}[0-9]{8}$`)
)

// generateID produces one candidate id: two uppercase letters followed by
// eight decimal digits, e.g. "AC12345678". Uniqueness is the caller's
// problem; randomness does not need to be cryptographic because the id is
// not a secret.
func generateID() string {
	l1 := idLetters[rand.Intn(len(idLetters))]
	l2 := idLetters[rand.Intn(len(idLetters))]
	return fmt.Sprintf("%c%c%d", l1, l2, 10000000+rand.Intn(90000000))
}

// allocateUniqueID retries generateID until the candidate collides with no
// registered user. With ~2.6 billion possible ids no retry bound is needed.
func (s *Store) allocateUniqueID() string {
	for {
		id := generateID()
		if s.findByID(id) == nil {
			return id
		}
	}
}

// ValidID reports whether a string has the registered-id shape.
func ValidID(id string) bool { return idRe.MatchString(id) }

// ValidNickname reports whether a nickname matches @[A-Za-z0-9_]{1,11}.
func ValidNickname(nick string) bool { return nickRe.MatchString(nick) }

// validName bounds the display name at 1..20 characters, counted in runes
// so non-ASCII names get the full budget.
func validName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 1 && n <= 20
}

// Register creates a new user with a freshly allocated id, default privacy,
// and createdAt=lastSeen=now, then returns its public projection.
func (s *Store) Register(nickname, name string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if nickname == "" || name == "" {
		return models.User{}, validationErr("nickname and name required")
	}
	if !ValidNickname(nickname) {
		return models.User{}, validationErr("bad nickname")
	}
	if !validName(name) {
		return models.User{}, validationErr("bad name")
	}
	if s.findByNickname(nickname) != nil {
		return models.User{}, conflictErr("nickname taken")
	}

	ts := now()
	user := &models.User{
		ID:        s.allocateUniqueID(),
		Nickname:  nickname,
		Name:      name,
		Privacy:   models.DefaultPrivacy(ts),
		CreatedAt: ts,
		LastSeen:  ts,
	}
	s.users = append(s.users, user)
	s.mutated()
	return user.Public(), nil
}

// Login succeeds only when a stored user matches both id and nickname
// exactly. The pair is the whole credential: there are no session tokens.
func (s *Store) Login(id, nickname string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findByID(id)
	if u == nil || u.Nickname != nickname {
		return models.User{}, notFoundErr("not found")
	}
	u.LastSeen = now()
	s.mutated()
	return u.Public(), nil
}

// GetByID is a direct lookup with no privacy filtering, used both by the
// GET /users/:id endpoint and internally to resolve chat participants.
func (s *Store) GetByID(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findByID(id)
	if u == nil {
		return models.User{}, notFoundErr("not found")
	}
	return u.Public(), nil
}

// PrivacyUpdate carries the optional privacy fields of a profile update.
// Nil fields are left untouched; the merge always restamps
// privacy.lastSeen.
type PrivacyUpdate struct {
	ShowOnline *bool `json:"showOnline"`
	AllowNick  *bool `json:"allowNick"`
	AllowID    *bool `json:"allowId"`
}

// OptionalString records whether a field appeared in the request at all,
// so an explicit null can clear the stored value while an absent field
// leaves it untouched.
type OptionalString struct {
	Set   bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// ProfileUpdate is a partial update: only provided fields are applied.
// Avatar is the one field where null and absent differ: null clears it.
type ProfileUpdate struct {
	Name     *string        `json:"name"`
	Nickname *string        `json:"nickname"`
	Avatar   OptionalString `json:"avatar"`
	Privacy  *PrivacyUpdate `json:"privacy"`
}

// UpdateProfile applies the provided fields to an existing user. A new
// nickname must pass the format check and must not belong to a different
// user; re-submitting the user's own nickname is not a conflict.
func (s *Store) UpdateProfile(id string, upd ProfileUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findByID(id)
	if u == nil {
		return models.User{}, notFoundErr("not found")
	}

	if upd.Nickname != nil {
		if !ValidNickname(*upd.Nickname) {
			return models.User{}, validationErr("bad nickname")
		}
		if other := s.findByNickname(*upd.Nickname); other != nil && other.ID != id {
			return models.User{}, conflictErr("nickname taken")
		}
	}
	if upd.Name != nil && !validName(*upd.Name) {
		return models.User{}, validationErr("bad name")
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Nickname != nil {
		u.Nickname = *upd.Nickname
	}
	if upd.Avatar.Set {
		u.Avatar = upd.Avatar.Value
	}
	if upd.Privacy != nil {
		if upd.Privacy.ShowOnline != nil {
			u.Privacy.ShowOnline = *upd.Privacy.ShowOnline
		}
		if upd.Privacy.AllowNick != nil {
			u.Privacy.AllowNick = *upd.Privacy.AllowNick
		}
		if upd.Privacy.AllowID != nil {
			u.Privacy.AllowID = *upd.Privacy.AllowID
		}
		u.Privacy.LastSeen = now()
	}
	u.LastSeen = now()
	s.mutated()
	return u.Public(), nil
}
