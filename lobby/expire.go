package lobby

import (
	"anon-chat/domain"
	"anon-chat/domain/event"
	"time"
)

// ExpireWaiting drops every waiter enqueued before cutoff and returns
// one WaitExpired notice per dropped participant.
func (e *Engine) ExpireWaiting(cutoff time.Time) []event.Action {
	e.mu.Lock()
	defer e.mu.Unlock()

	var actions []event.Action
	for _, id := range e.pool.OlderThan(cutoff) {
		e.pool.Remove(id)
		e.participants.SetState(id, domain.Idle)
		actions = append(actions, event.Notify{To: id, Template: event.WaitExpired})
	}
	if len(actions) > 0 {
		e.log.Info("Expired waiting participants", "count", len(actions))
	}
	return actions
}
