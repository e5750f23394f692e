package event

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is published by the lobby engine whenever a session changes lifecycle.
// Consumers are side effects (ledger, stats), never core logic.
type DomainEvent interface {
	SessionID() uuid.UUID
	OccurredAt() time.Time
}

type EndReason string

const (
	EndStopped  EndReason = "stopped"
	EndDeclined EndReason = "declined"
	EndRevealed EndReason = "revealed"
	EndOrphaned EndReason = "orphaned"
)

type SessionStarted struct {
	ID uuid.UUID
	At time.Time
}

func (e SessionStarted) SessionID() uuid.UUID  { return e.ID }
func (e SessionStarted) OccurredAt() time.Time { return e.At }

// SessionEnded carries no handle and no content, only lifecycle facts.
type SessionEnded struct {
	ID        uuid.UUID
	Reason    EndReason
	StartedAt time.Time
	EndedAt   time.Time
	Relayed   int
}

func (e SessionEnded) SessionID() uuid.UUID  { return e.ID }
func (e SessionEnded) OccurredAt() time.Time { return e.EndedAt }

func (e SessionEnded) Duration() time.Duration {
	return e.EndedAt.Sub(e.StartedAt)
}
