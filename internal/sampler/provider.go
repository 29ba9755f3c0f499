// Package sampler runs the background goroutines that refresh the shared
// metrics snapshot. Each sampler queries the OS into local buffers, computes
// its deltas, and only then takes the store lock for the swap.
package sampler

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/Prisol7/TaskManager-lite-test/internal/metrics"
)

// ProcessRaw is one point-in-time process reading. CPUTime and the I/O
// counters are lifetime totals; the sampler turns them into rates.
type ProcessRaw struct {
	PID            int32
	Name           string
	Status         string
	CPUTime        float64 // seconds of user+system time
	MemoryBytes    uint64
	VirtualBytes   uint64
	DiskReadBytes  uint64 // lifetime total
	DiskWriteBytes uint64 // lifetime total
	StartedAt      time.Time
}

// CPURaw is a point-in-time reading of aggregate CPU time across all cores,
// in seconds. Busy excludes idle and iowait.
type CPURaw struct {
	BusySeconds  float64
	TotalSeconds float64
}

// InterfaceRaw is one point-in-time interface counter reading.
type InterfaceRaw struct {
	Name    string
	RxTotal uint64
	TxTotal uint64
}

// ProcessProvider is the OS query surface of the process sampler. Providers
// may return partial or empty results on permission failure; callers treat
// that as empty, never as fatal.
type ProcessProvider interface {
	Processes() ([]ProcessRaw, error)
	Memory() (metrics.MemoryStats, error)
	CPU() (CPURaw, error)
}

// NetProvider enumerates network interfaces with their lifetime counters.
type NetProvider interface {
	Interfaces() ([]InterfaceRaw, error)
}

// PsutilProcessProvider reads processes and memory through gopsutil.
type PsutilProcessProvider struct{}

func (PsutilProcessProvider) Processes() ([]ProcessRaw, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	raws := make([]ProcessRaw, 0, len(procs))
	for _, p := range procs {
		// A process exiting mid-enumeration fails these calls; skip it.
		name, err := p.Name()
		if err != nil || name == "" {
			continue
		}
		raw := ProcessRaw{PID: p.Pid, Name: name}
		if times, err := p.Times(); err == nil {
			raw.CPUTime = times.User + times.System
		}
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			raw.MemoryBytes = mi.RSS
			raw.VirtualBytes = mi.VMS
		}
		if created, err := p.CreateTime(); err == nil && created > 0 {
			raw.StartedAt = time.UnixMilli(created)
		}
		if io, err := p.IOCounters(); err == nil && io != nil {
			raw.DiskReadBytes = io.ReadBytes
			raw.DiskWriteBytes = io.WriteBytes
		}
		if statuses, err := p.Status(); err == nil && len(statuses) > 0 {
			raw.Status = statuses[0]
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func (PsutilProcessProvider) Memory() (metrics.MemoryStats, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return metrics.MemoryStats{}, err
	}
	out := metrics.MemoryStats{
		TotalBytes:     v.Total,
		UsedBytes:      v.Used,
		AvailableBytes: v.Available,
	}
	if s, err := mem.SwapMemory(); err == nil {
		out.SwapTotalBytes = s.Total
		out.SwapUsedBytes = s.Used
	}
	return out, nil
}

func (PsutilProcessProvider) CPU() (CPURaw, error) {
	times, err := cpu.Times(false)
	if err != nil {
		return CPURaw{}, err
	}
	if len(times) == 0 {
		return CPURaw{}, nil
	}
	t := times[0]
	total := t.Total()
	return CPURaw{
		BusySeconds:  total - t.Idle - t.Iowait,
		TotalSeconds: total,
	}, nil
}

// PsutilNetProvider reads per-interface counters through gopsutil.
type PsutilNetProvider struct{}

func (PsutilNetProvider) Interfaces() ([]InterfaceRaw, error) {
	counters, err := gnet.IOCounters(true)
	if err != nil {
		return nil, err
	}
	raws := make([]InterfaceRaw, 0, len(counters))
	for _, c := range counters {
		raws = append(raws, InterfaceRaw{
			Name:    c.Name,
			RxTotal: c.BytesRecv,
			TxTotal: c.BytesSent,
		})
	}
	return raws, nil
}
