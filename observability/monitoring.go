package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/shirou/gopsutil/process"
)

// MonitoringStats is the process level view exposed on the admin API.
type MonitoringStats struct {
	// --- TRAFFIC ---
	UpdatesReceived  uint64 `json:"updates_received"`
	UpdatesDuplicate uint64 `json:"updates_duplicate"`
	DeliveryFailures uint64 `json:"delivery_failures"`

	// --- PROCESS ---
	Pid        int32   `json:"pid"`
	CpuPercent float64 `json:"cpu_percent"`
	RssBytes   uint64  `json:"rss_bytes"`
	NumThreads int32   `json:"num_threads"`

	// --- GO RUNTIME ---
	AllocMemMb    uint64 `json:"alloc_mem_mb"`
	NumGC         uint32 `json:"num_gc"`
	NumGoroutines int    `json:"num_goroutines"`
}

// MonitoringManager keeps atomic traffic counters and the last sampled process stats.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats MonitoringStats
	proc        *process.Process

	UpdatesReceived  uint64
	UpdatesDuplicate uint64
	DeliveryFailures uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	pid := int32(os.Getpid())
	p, err := process.NewProcess(pid)
	if err != nil {
		log.Warn("Process stats unavailable", "pid", pid, "error", err)
	}
	return &MonitoringManager{log: log, proc: p, latestStats: MonitoringStats{Pid: pid}}
}

func (mm *MonitoringManager) IncrUpdatesReceived() {
	atomic.AddUint64(&mm.UpdatesReceived, 1)
}

func (mm *MonitoringManager) IncrUpdatesDuplicate() {
	atomic.AddUint64(&mm.UpdatesDuplicate, 1)
}

func (mm *MonitoringManager) IncrDeliveryFailures() {
	atomic.AddUint64(&mm.DeliveryFailures, 1)
}

// Sample refreshes the snapshot from the OS and the Go runtime.
func (mm *MonitoringManager) Sample() MonitoringStats {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	if mm.proc != nil {
		if rss, cpu, threads, err := selfStats(mm.proc); err != nil {
			mm.log.Debug("Failed to collect self stats", "error", err)
		} else {
			mm.latestStats.RssBytes = rss
			mm.latestStats.CpuPercent = cpu
			mm.latestStats.NumThreads = threads
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	mm.latestStats.AllocMemMb = m.Alloc / 1024 / 1024
	mm.latestStats.NumGC = m.NumGC
	mm.latestStats.NumGoroutines = runtime.NumGoroutine()
	mm.fillCounters()
	return mm.latestStats
}

// GetLatest returns the last sample with live counters.
func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.fillCounters()
	return mm.latestStats
}

func (mm *MonitoringManager) fillCounters() {
	mm.latestStats.UpdatesReceived = atomic.LoadUint64(&mm.UpdatesReceived)
	mm.latestStats.UpdatesDuplicate = atomic.LoadUint64(&mm.UpdatesDuplicate)
	mm.latestStats.DeliveryFailures = atomic.LoadUint64(&mm.DeliveryFailures)
}

// selfStats retrieves memory, CPU and thread count for the given process.
func selfStats(p *process.Process) (uint64, float64, int32, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, 0, err
	}
	threads, err := p.NumThreads()
	if err != nil {
		return 0, 0, 0, err
	}
	return memInfo.RSS, cpuPercent, threads, nil
}
