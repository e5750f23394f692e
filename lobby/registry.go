package lobby

import "anon-chat/domain"

// Registry tracks every participant known to the process.
// It is not safe for concurrent use; the Engine lock guards it.
type Registry struct {
	participants map[domain.ParticipantID]*domain.Participant
}

func NewRegistry() *Registry {
	return &Registry{participants: make(map[domain.ParticipantID]*domain.Participant)}
}

// Register is idempotent. An existing participant keeps its state; its handle
// is only filled in when it was missing.
func (r *Registry) Register(id domain.ParticipantID, handle string) domain.Participant {
	p, ok := r.participants[id]
	if !ok {
		p = &domain.Participant{ID: id, Handle: handle, State: domain.Idle}
		r.participants[id] = p
		return *p
	}
	if p.Handle == "" {
		p.Handle = handle
	}
	return *p
}

func (r *Registry) Get(id domain.ParticipantID) (domain.Participant, bool) {
	p, ok := r.participants[id]
	if !ok {
		return domain.Participant{}, false
	}
	return *p, true
}

// SetState is a no-op for unknown ids.
func (r *Registry) SetState(id domain.ParticipantID, state domain.State) {
	if p, ok := r.participants[id]; ok {
		p.State = state
	}
}

func (r *Registry) Len() int {
	return len(r.participants)
}
