package workers

import (
	"anon-chat/lobby"
	"anon-chat/observability"
	"context"
	"log/slog"
	"time"
)

// StatsSource is what the heartbeat reports about the lobby.
type StatsSource interface {
	Stats() lobby.Stats
}

type HeartbeatWorker struct {
	log        *slog.Logger
	lobby      StatsSource
	monitoring *observability.MonitoringManager
	interval   time.Duration
}

func NewHeartbeatWorker(
	log *slog.Logger,
	lobby StatsSource,
	monitoring *observability.MonitoringManager,
	interval time.Duration,
) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, lobby: lobby, monitoring: monitoring, interval: interval}
}

// Run samples process stats and logs them along with the lobby counts every interval.
func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			proc := w.monitoring.Sample()
			stats := w.lobby.Stats()
			w.log.Info("Heartbeat",
				"participants", stats.Participants,
				"waiting", stats.Waiting,
				"sessions", stats.Sessions,
				"updates", proc.UpdatesReceived,
				"delivery_failures", proc.DeliveryFailures,
				"rss_bytes", proc.RssBytes,
				"cpu_percent", proc.CpuPercent,
				"goroutines", proc.NumGoroutines)
		}
	}
}
