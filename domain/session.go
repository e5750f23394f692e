// Package domain contains core concepts of the anonymous chat system.
// This file defines the Session pairing two participants.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session binds two participants. The liked flags are scoped to this pairing
// and disappear with it.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time
	Relayed   int
	sides     [2]ParticipantID
	liked     [2]bool
}

func NewSession(a, b ParticipantID, at time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		StartedAt: at,
		sides:     [2]ParticipantID{a, b},
	}
}

func (s *Session) Sides() (ParticipantID, ParticipantID) {
	return s.sides[0], s.sides[1]
}

func (s *Session) Has(id ParticipantID) bool {
	return s.sides[0] == id || s.sides[1] == id
}

// Other returns the partner of id. id must be a side of the session.
func (s *Session) Other(id ParticipantID) ParticipantID {
	if s.sides[0] == id {
		return s.sides[1]
	}
	return s.sides[0]
}

func (s *Session) Like(id ParticipantID) {
	if i, ok := s.index(id); ok {
		s.liked[i] = true
	}
}

func (s *Session) Liked(id ParticipantID) bool {
	i, ok := s.index(id)
	return ok && s.liked[i]
}

func (s *Session) index(id ParticipantID) (int, bool) {
	switch id {
	case s.sides[0]:
		return 0, true
	case s.sides[1]:
		return 1, true
	default:
		return 0, false
	}
}
