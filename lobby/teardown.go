package lobby

import (
	"anon-chat/domain"
	"anon-chat/domain/event"
)

// Terminate ends whatever id is doing. It never fails: idle or unknown
// participants only get the goodbye.
func (e *Engine) Terminate(id domain.ParticipantID) []event.Action {
	e.mu.Lock()
	defer e.mu.Unlock()

	actions := []event.Action{
		event.Notify{To: id, Template: event.Goodbye},
		event.ClearResponseControls{To: id},
	}

	if s, ok := e.sessions.Lookup(id); ok {
		partner := s.Other(id)
		e.endSession(s, event.EndStopped)
		return append(actions,
			event.Notify{To: partner, Template: event.PartnerLeft},
			event.ClearResponseControls{To: partner},
		)
	}

	e.pool.Remove(id)
	e.participants.SetState(id, domain.Idle)
	return actions
}

// endSession removes both sides and resets both participants. Callers hold the lock.
func (e *Engine) endSession(s *domain.Session, reason event.EndReason) {
	e.sessions.Remove(s)
	a, b := s.Sides()
	e.participants.SetState(a, domain.Idle)
	e.participants.SetState(b, domain.Idle)

	endedAt := e.now()
	e.log.Debug("Session ended", "session_id", s.ID, "reason", reason)
	e.publish(event.SessionEnded{
		ID:        s.ID,
		Reason:    reason,
		StartedAt: s.StartedAt,
		EndedAt:   endedAt,
		Relayed:   s.Relayed,
	})
}

// resolve returns id's session when both sides still point at it.
// A half-present session is torn down and a dangling Active state is reset.
func (e *Engine) resolve(id domain.ParticipantID) (*domain.Session, bool) {
	s, ok := e.sessions.Lookup(id)
	if !ok {
		if p, known := e.participants.Get(id); known && p.State == domain.Active {
			e.log.Warn("Active participant without session, resetting", "participant_id", id)
			e.participants.SetState(id, domain.Idle)
		}
		return nil, false
	}
	partner := s.Other(id)
	back, ok := e.sessions.Lookup(partner)
	if _, known := e.participants.Get(partner); !known || !ok || back != s {
		e.log.Warn("Half session detected, tearing down", "session_id", s.ID)
		e.endSession(s, event.EndOrphaned)
		return nil, false
	}
	return s, true
}
