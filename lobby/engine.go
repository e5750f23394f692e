// Package lobby is the matchmaking core: it pairs waiting participants,
// runs the mutual reveal handshake and relays content between partners.
// It produces outbound actions and never performs I/O itself.
package lobby

import (
	"anon-chat/domain"
	"anon-chat/domain/event"
	"log/slog"
	"sync"
	"time"
)

// Engine owns the registry, the wait pool and the session table.
// One mutex covers all three so that pairing and teardown are atomic.
type Engine struct {
	mu           sync.Mutex
	log          *slog.Logger
	participants *Registry
	pool         *WaitPool
	sessions     *SessionTable
	events       chan<- event.DomainEvent
	now          func() time.Time
}

// NewEngine builds an empty engine. events may be nil.
func NewEngine(log *slog.Logger, events chan<- event.DomainEvent) *Engine {
	return &Engine{
		log:          log,
		participants: NewRegistry(),
		pool:         NewWaitPool(),
		sessions:     NewSessionTable(),
		events:       events,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

type Stats struct {
	Participants int `json:"participants"`
	Waiting      int `json:"waiting"`
	Sessions     int `json:"sessions"`
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Participants: e.participants.Len(),
		Waiting:      e.pool.Len(),
		Sessions:     e.sessions.Len(),
	}
}

// Register records a participant. It is idempotent and never changes state.
func (e *Engine) Register(id domain.ParticipantID, handle string) domain.Participant {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.participants.Register(id, handle)
}

func (e *Engine) Participant(id domain.ParticipantID) (domain.Participant, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.participants.Get(id)
}

// Partner returns the other side of id's session, if any.
func (e *Engine) Partner(id domain.ParticipantID) (domain.ParticipantID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions.Lookup(id)
	if !ok {
		return 0, false
	}
	return s.Other(id), true
}

// Waiting returns the wait pool content, head first.
func (e *Engine) Waiting() []domain.ParticipantID {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]domain.ParticipantID, 0, e.pool.Len())
	for _, w := range e.pool.Snapshot() {
		ids = append(ids, w.ID)
	}
	return ids
}

// publish never blocks: the core must not wait on observers.
func (e *Engine) publish(evt event.DomainEvent) {
	if e.events == nil {
		return
	}
	select {
	case e.events <- evt:
	default:
		e.log.Warn("Domain event channel full, dropping event", "session_id", evt.SessionID())
	}
}
