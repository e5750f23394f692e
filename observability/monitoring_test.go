package observability

import (
	"log/slog"
	"os"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestMonitoringManager_Counters(t *testing.T) {
	req := require.New(t)
	mm := NewMonitoringManager(logs.GetLoggerFromLevel(slog.LevelDebug))

	mm.IncrUpdatesReceived()
	mm.IncrUpdatesReceived()
	mm.IncrUpdatesDuplicate()
	mm.IncrDeliveryFailures()

	stats := mm.GetLatest()
	req.Equal(uint64(2), stats.UpdatesReceived)
	req.Equal(uint64(1), stats.UpdatesDuplicate)
	req.Equal(uint64(1), stats.DeliveryFailures)
	req.Equal(int32(os.Getpid()), stats.Pid)
}

func TestMonitoringManager_Sample(t *testing.T) {
	req := require.New(t)
	mm := NewMonitoringManager(logs.GetLoggerFromLevel(slog.LevelDebug))

	stats := mm.Sample()

	req.Positive(stats.NumGoroutines)
	req.Equal(stats, mm.GetLatest())
}
