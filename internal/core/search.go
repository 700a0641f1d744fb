package core

import (
	"sort"
	"strings"

	"ambientchat/backend/internal/models"
)

// searchFeedLimit caps the recent-users directory returned for an empty
// query.
const searchFeedLimit = 30

// Search resolves a lookup query with privacy filtering applied:
//
//   - empty query: the most recently created users, newest first, up to 30.
//     This acts as a public directory, so privacy flags are not consulted.
//   - "@..." query: exact nickname match, hidden when allowNick is off.
//   - anything else: exact id match, hidden when allowId is off.
//
// Matching is exact; the query is trimmed of surrounding whitespace first.
func (s *Store) Search(query string) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.TrimSpace(query)

	if q == "" {
		recent := make([]*models.User, len(s.users))
		copy(recent, s.users)
		sort.SliceStable(recent, func(i, j int) bool {
			return recent[i].CreatedAt > recent[j].CreatedAt
		})
		if len(recent) > searchFeedLimit {
			recent = recent[:searchFeedLimit]
		}
		out := make([]models.User, 0, len(recent))
		for _, u := range recent {
			out = append(out, u.Public())
		}
		return out
	}

	if strings.HasPrefix(q, "@") {
		if u := s.findByNickname(q); u != nil && u.Privacy.AllowNick {
			return []models.User{u.Public()}
		}
		return []models.User{}
	}

	if u := s.findByID(q); u != nil && u.Privacy.AllowID {
		return []models.User{u.Public()}
	}
	return []models.User{}
}
