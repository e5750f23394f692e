// Package projection builds in-memory views from observed lobby events.
// Does not emit events and never touches the lobby state.
package projection

import (
	"anon-chat/domain/event"
	"context"
	"sync"
	"time"
)

// Outcomes counts sessions by how they ended.
type Outcomes struct {
	mu       sync.RWMutex
	started  int
	ended    map[event.EndReason]int
	relayed  int
	duration time.Duration
}

type OutcomeTotals struct {
	Started         int                     `json:"started"`
	Ended           map[event.EndReason]int `json:"ended"`
	Relayed         int                     `json:"relayed"`
	AverageDuration time.Duration           `json:"average_duration_ns"`
}

func NewOutcomes() *Outcomes {
	return &Outcomes{ended: make(map[event.EndReason]int)}
}

func (o *Outcomes) Consume(_ context.Context, e event.DomainEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch evt := e.(type) {
	case event.SessionStarted:
		o.started++
	case event.SessionEnded:
		o.ended[evt.Reason]++
		o.relayed += evt.Relayed
		o.duration += evt.Duration()
	}
	return nil
}

func (o *Outcomes) Totals() OutcomeTotals {
	o.mu.RLock()
	defer o.mu.RUnlock()
	ended := make(map[event.EndReason]int, len(o.ended))
	count := 0
	for reason, n := range o.ended {
		ended[reason] = n
		count += n
	}
	totals := OutcomeTotals{Started: o.started, Ended: ended, Relayed: o.relayed}
	if count > 0 {
		totals.AverageDuration = o.duration / time.Duration(count)
	}
	return totals
}
