package sampler

import (
	"log"
	"time"

	"github.com/Prisol7/TaskManager-lite-test/internal/metrics"
)

type ioTotals struct {
	read  uint64
	write uint64
}

// ProcessSampler periodically refreshes the process list and system memory
// in the shared store. CPU% and disk I/O rates come from deltas against the
// previous cycle divided by elapsed wall time.
type ProcessSampler struct {
	store    *metrics.Store
	provider ProcessProvider
	interval time.Duration
	logger   *log.Logger

	prevCPU    map[int32]float64
	prevIO     map[int32]ioTotals
	prevSysCPU CPURaw
	haveSysCPU bool
	lastTick   time.Time
}

func NewProcessSampler(store *metrics.Store, provider ProcessProvider, interval time.Duration, logger *log.Logger) *ProcessSampler {
	return &ProcessSampler{
		store:    store,
		provider: provider,
		interval: interval,
		logger:   logger,
		prevCPU:  make(map[int32]float64),
		prevIO:   make(map[int32]ioTotals),
	}
}

// Run samples until done is closed. The shutdown signal is observed at the
// top of each wait cycle; an in-flight OS query finishes its current call.
func (s *ProcessSampler) Run(done <-chan struct{}) {
	s.sample(time.Now())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case t := <-ticker.C:
			s.sample(t)
		}
	}
}

func (s *ProcessSampler) sample(now time.Time) {
	raws, err := s.provider.Processes()
	if err != nil {
		// Treated as an empty enumeration; the next cycle retries naturally.
		s.logger.Printf("process sampler: %v", err)
		raws = nil
	}
	memStats, err := s.provider.Memory()
	if err != nil {
		s.logger.Printf("process sampler: memory: %v", err)
		memStats = metrics.MemoryStats{}
	}
	sysPct := s.sampleSystemCPU()

	elapsed := now.Sub(s.lastTick)
	if s.lastTick.IsZero() || elapsed <= 0 {
		elapsed = s.interval
	}

	entries := make([]metrics.ProcessEntry, 0, len(raws))
	nextCPU := make(map[int32]float64, len(raws))
	nextIO := make(map[int32]ioTotals, len(raws))
	for _, raw := range raws {
		entry := metrics.ProcessEntry{
			PID:          raw.PID,
			Name:         raw.Name,
			Status:       raw.Status,
			MemoryBytes:  raw.MemoryBytes,
			VirtualBytes: raw.VirtualBytes,
			StartedAt:    raw.StartedAt,
		}
		if prev, ok := s.prevCPU[raw.PID]; ok && raw.CPUTime >= prev {
			entry.CPUPercent = (raw.CPUTime - prev) / elapsed.Seconds() * 100
		}
		if prev, ok := s.prevIO[raw.PID]; ok {
			entry.DiskReadBytesPerSec = rate(prev.read, raw.DiskReadBytes, elapsed)
			entry.DiskWriteBytesPerSec = rate(prev.write, raw.DiskWriteBytes, elapsed)
		}
		nextCPU[raw.PID] = raw.CPUTime
		nextIO[raw.PID] = ioTotals{read: raw.DiskReadBytes, write: raw.DiskWriteBytes}
		entries = append(entries, entry)
	}

	// Replacing the maps wholesale drops baselines of exited PIDs.
	s.prevCPU = nextCPU
	s.prevIO = nextIO
	s.lastTick = now

	s.store.SetProcesses(entries, memStats, sysPct, now)
}

// sampleSystemCPU turns two consecutive aggregate CPU-time readings into a
// busy percentage. The first reading (and any counter anomaly) yields 0.
func (s *ProcessSampler) sampleSystemCPU() float64 {
	curr, err := s.provider.CPU()
	if err != nil {
		s.logger.Printf("process sampler: cpu: %v", err)
		s.haveSysCPU = false
		return 0
	}

	prev := s.prevSysCPU
	had := s.haveSysCPU
	s.prevSysCPU = curr
	s.haveSysCPU = true
	if !had {
		return 0
	}

	totalDelta := curr.TotalSeconds - prev.TotalSeconds
	busyDelta := curr.BusySeconds - prev.BusySeconds
	if totalDelta <= 0 || busyDelta < 0 {
		return 0
	}
	pct := busyDelta / totalDelta * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
