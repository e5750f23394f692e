package lobby

import (
	"anon-chat/domain"
	"time"
)

// SessionTable indexes active sessions by both sides.
// Both ids always map to the same *domain.Session. Not safe for concurrent use.
type SessionTable struct {
	bySide map[domain.ParticipantID]*domain.Session
}

func NewSessionTable() *SessionTable {
	return &SessionTable{bySide: make(map[domain.ParticipantID]*domain.Session)}
}

// Bind creates the session for a and b. Callers guarantee neither side is bound.
func (t *SessionTable) Bind(a, b domain.ParticipantID, at time.Time) *domain.Session {
	s := domain.NewSession(a, b, at)
	t.bySide[a] = s
	t.bySide[b] = s
	return s
}

func (t *SessionTable) Lookup(id domain.ParticipantID) (*domain.Session, bool) {
	s, ok := t.bySide[id]
	return s, ok
}

// Remove drops every entry pointing at s in one step.
func (t *SessionTable) Remove(s *domain.Session) {
	a, b := s.Sides()
	if t.bySide[a] == s {
		delete(t.bySide, a)
	}
	if t.bySide[b] == s {
		delete(t.bySide, b)
	}
}

// Len returns the number of sessions, not of sides.
func (t *SessionTable) Len() int {
	seen := make(map[*domain.Session]struct{}, len(t.bySide)/2)
	for _, s := range t.bySide {
		seen[s] = struct{}{}
	}
	return len(seen)
}
