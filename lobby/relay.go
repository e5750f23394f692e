package lobby

import (
	"anon-chat/domain"
	"anon-chat/domain/event"
	"anon-chat/errors"
)

// Forward relays content unchanged to the partner of sender.
func (e *Engine) Forward(sender domain.ParticipantID, content domain.Content) ([]event.Action, error) {
	if err := content.Validate(); err != nil {
		return nil, err
	}
	if _, reserved := domain.ChoiceFromContent(content); reserved {
		return nil, errors.ErrReservedContent
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.resolve(sender)
	if !ok {
		return nil, errors.ErrNoActiveSession
	}
	s.Relayed++
	return []event.Action{event.DeliverContent{To: s.Other(sender), Content: content}}, nil
}
