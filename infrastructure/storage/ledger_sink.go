package storage

import (
	"anon-chat/domain/event"
	"context"
)

// LedgerSink stores every ended session in the outcome repository.
type LedgerSink struct {
	repository IOutcomeRepository
}

func NewLedgerSink(repository IOutcomeRepository) LedgerSink {
	return LedgerSink{repository: repository}
}

func (s LedgerSink) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.SessionEnded)
	if !ok {
		return nil
	}
	return s.repository.StoreOutcome(DiskOutcome{
		ID:        evt.ID,
		Reason:    evt.Reason,
		StartedAt: evt.StartedAt,
		EndedAt:   evt.EndedAt,
		Relayed:   evt.Relayed,
	})
}
