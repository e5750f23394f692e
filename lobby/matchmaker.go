package lobby

import (
	"anon-chat/domain"
	"anon-chat/domain/event"
	"anon-chat/errors"
)

var responseChoices = []domain.Choice{domain.Like, domain.Dislike}

// RequestPartner pairs id with the longest waiting participant or queues it.
// The pop and the session creation happen under the same lock, so a waiter
// is handed to at most one requester.
func (e *Engine) RequestPartner(id domain.ParticipantID) ([]event.Action, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	requester, ok := e.participants.Get(id)
	if !ok || !requester.HasIdentity() {
		return nil, errors.ErrMissingIdentity
	}
	switch requester.State {
	case domain.Waiting:
		return nil, errors.ErrAlreadyWaiting
	case domain.Active:
		return nil, errors.ErrAlreadyActive
	}

	for {
		candidate, ok := e.pool.Pop()
		if !ok {
			break
		}
		if candidate.ID == id {
			continue
		}
		p, ok := e.participants.Get(candidate.ID)
		if !ok || p.State != domain.Waiting {
			e.log.Debug("Discarding stale waiter", "participant_id", candidate.ID)
			continue
		}
		return e.pair(id, candidate.ID), nil
	}

	e.participants.SetState(id, domain.Waiting)
	e.pool.Push(id, e.now())
	e.log.Debug("Participant queued", "participant_id", id, "waiting", e.pool.Len())
	return []event.Action{event.Notify{To: id, Template: event.Searching}}, nil
}

func (e *Engine) pair(requester, waiter domain.ParticipantID) []event.Action {
	s := e.sessions.Bind(waiter, requester, e.now())
	e.participants.SetState(requester, domain.Active)
	e.participants.SetState(waiter, domain.Active)
	e.log.Debug("Session started", "session_id", s.ID)
	e.publish(event.SessionStarted{ID: s.ID, At: s.StartedAt})

	var actions []event.Action
	for _, side := range []domain.ParticipantID{requester, waiter} {
		actions = append(actions,
			event.Notify{To: side, Template: event.Connected},
			event.OfferResponseControls{To: side, Choices: responseChoices},
		)
	}
	return actions
}
