// Package metrics holds the shared snapshot of sampled system state.
//
// Samplers publish whole generations (a full process list, a full interface
// map) through a Store; readers copy the snapshot out under the lock and work
// on the copy. Nothing mutates a published generation in place.
package metrics

import (
	"sync"
	"time"
)

// ProcessEntry is one process row of a snapshot generation, unique by PID.
type ProcessEntry struct {
	PID                  int32     `json:"pid"`
	Name                 string    `json:"name"`
	Status               string    `json:"status"`
	CPUPercent           float64   `json:"cpu_percent"`
	MemoryBytes          uint64    `json:"memory_bytes"`
	VirtualBytes         uint64    `json:"virtual_bytes"`
	DiskReadBytesPerSec  uint64    `json:"disk_read_bytes_per_sec"`
	DiskWriteBytesPerSec uint64    `json:"disk_write_bytes_per_sec"`
	StartedAt            time.Time `json:"started_at"`
}

// MemoryStats is system-wide RAM and swap usage in bytes.
type MemoryStats struct {
	TotalBytes     uint64 `json:"total_bytes"`
	UsedBytes      uint64 `json:"used_bytes"`
	AvailableBytes uint64 `json:"available_bytes"`
	SwapTotalBytes uint64 `json:"swap_total_bytes"`
	SwapUsedBytes  uint64 `json:"swap_used_bytes"`
}

// InterfaceStats is per-interface throughput plus lifetime counters.
type InterfaceStats struct {
	RxBytesPerSec uint64 `json:"rx_bytes_per_sec"`
	TxBytesPerSec uint64 `json:"tx_bytes_per_sec"`
	RxTotalBytes  uint64 `json:"rx_total_bytes"`
	TxTotalBytes  uint64 `json:"tx_total_bytes"`
}

// Snapshot is the full shared state. The two sampler categories carry their
// own update timestamps because the samplers run on independent cadences.
type Snapshot struct {
	Processes         []ProcessEntry            `json:"processes"`
	Memory            MemoryStats               `json:"memory"`
	SystemCPUPercent  float64                   `json:"system_cpu_percent"`
	Interfaces        map[string]InterfaceStats `json:"interfaces"`
	ProcessesUpdated  time.Time                 `json:"processes_updated"`
	InterfacesUpdated time.Time                 `json:"interfaces_updated"`
}

// Store guards the snapshot with a single coarse mutex. Hold times are kept
// to the swap or copy only; OS queries and rendering happen outside the lock.
type Store struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewStore returns a store holding an empty snapshot: zero metrics, empty
// (not nil) collections.
func NewStore() *Store {
	return &Store{
		snap: Snapshot{
			Processes:  []ProcessEntry{},
			Interfaces: map[string]InterfaceStats{},
		},
	}
}

// SetProcesses replaces the process list, memory stats and aggregate CPU usage
// with a new generation. The caller must not reuse procs after the call.
func (s *Store) SetProcesses(procs []ProcessEntry, mem MemoryStats, cpuPercent float64, now time.Time) {
	if procs == nil {
		procs = []ProcessEntry{}
	}
	s.mu.Lock()
	s.snap.Processes = procs
	s.snap.Memory = mem
	s.snap.SystemCPUPercent = cpuPercent
	s.snap.ProcessesUpdated = now
	s.mu.Unlock()
}

// SetInterfaces replaces the interface map with a new generation. Interfaces
// absent from ifaces disappear; the caller must not reuse the map after the
// call.
func (s *Store) SetInterfaces(ifaces map[string]InterfaceStats, now time.Time) {
	if ifaces == nil {
		ifaces = map[string]InterfaceStats{}
	}
	s.mu.Lock()
	s.snap.Interfaces = ifaces
	s.snap.InterfacesUpdated = now
	s.mu.Unlock()
}

// Read returns a deep copy of the current snapshot. The copy is safe to sort
// and render without further locking.
func (s *Store) Read() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.snap
	out.Processes = make([]ProcessEntry, len(s.snap.Processes))
	copy(out.Processes, s.snap.Processes)
	out.Interfaces = make(map[string]InterfaceStats, len(s.snap.Interfaces))
	for name, st := range s.snap.Interfaces {
		out.Interfaces[name] = st
	}
	return out
}
