package lobby

import (
	"anon-chat/domain"
	"anon-chat/domain/event"
	"anon-chat/errors"
	"fmt"
)

// Signal applies a like or dislike from id to its current session.
// A like is only disclosed once both sides liked.
func (e *Engine) Signal(id domain.ParticipantID, choice domain.Choice) ([]event.Action, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.resolve(id)
	if !ok {
		return nil, errors.ErrNoActiveSession
	}
	partner := s.Other(id)

	switch choice {
	case domain.Dislike:
		e.endSession(s, event.EndDeclined)
		return []event.Action{
			event.Notify{To: id, Template: event.Declined},
			event.ClearResponseControls{To: id},
			event.Notify{To: partner, Template: event.PartnerDeclined},
			event.ClearResponseControls{To: partner},
		}, nil
	case domain.Like:
		s.Like(id)
		if !s.Liked(partner) {
			return []event.Action{event.Notify{To: id, Template: event.LikeRecorded}}, nil
		}
		caller, _ := e.participants.Get(id)
		other, _ := e.participants.Get(partner)
		handles := []string{caller.Handle, other.Handle}
		e.endSession(s, event.EndRevealed)
		return []event.Action{
			event.Notify{To: id, Template: event.MutualMatch, Handles: handles},
			event.ClearResponseControls{To: id},
			event.Notify{To: partner, Template: event.MutualMatch, Handles: handles},
			event.ClearResponseControls{To: partner},
		}, nil
	default:
		return nil, fmt.Errorf("unknown choice %d", choice)
	}
}
