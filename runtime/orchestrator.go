// Package runtime wires the background side of the bot: it carries lobby
// events to their sinks and runs the periodic workers under supervision.
// It contains no matchmaking rule.
package runtime

import (
	"anon-chat/contract"
	"anon-chat/domain/event"
	"anon-chat/observability"
	"anon-chat/runtime/workers"
	"context"
	"log/slog"
	"sync"
	"time"
)

type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	supervisor     contract.ISupervisor
	domainEvents   chan event.DomainEvent
	permanentSinks []contract.EventSink
	sinkTimeout    time.Duration
	extraWorkers   []contract.Worker
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, bufferSize int, sinkTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		log:          log,
		supervisor:   supervisor,
		domainEvents: make(chan event.DomainEvent, bufferSize),
		sinkTimeout:  sinkTimeout,
	}
}

// Events is the channel the lobby engine publishes on.
func (o *Orchestrator) Events() chan<- event.DomainEvent {
	return o.domainEvents
}

func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// EnableWaitSweeper expires waiters older than maxWait. A zero maxWait disables it.
func (o *Orchestrator) EnableWaitSweeper(expirer contract.Expirer, maxWait, interval time.Duration) {
	if maxWait <= 0 {
		o.log.Info("Wait sweeper disabled")
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extraWorkers = append(o.extraWorkers, workers.NewWaitSweeper(o.log, expirer, maxWait, interval))
}

func (o *Orchestrator) EnableHeartbeat(source workers.StatsSource, monitoring *observability.MonitoringManager, interval time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extraWorkers = append(o.extraWorkers, workers.NewHeartbeatWorker(o.log, source, monitoring, interval))
}

// Start registers every worker and blocks until the supervisor is stopped.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	fanout := workers.NewEventFanout(o.log, o.domainEvents, o.sinkTimeout, o.permanentSinks...)
	o.supervisor.Add(fanout)
	o.supervisor.Add(o.extraWorkers...)
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers")
	o.supervisor.Run(ctx)
}

// Stop cancels the supervised workers. Events still buffered are dropped.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
