package app

import (
	"sort"

	"github.com/Prisol7/TaskManager-lite-test/internal/metrics"
)

// SortMode selects the process table ordering.
type SortMode int

const (
	SortByCPU SortMode = iota
	SortByMemory
	SortByPID
)

func (m SortMode) String() string {
	switch m {
	case SortByMemory:
		return "Memory"
	case SortByPID:
		return "PID"
	default:
		return "CPU"
	}
}

// sortModeFromName maps a persisted config value back to a SortMode.
func sortModeFromName(name string) SortMode {
	switch name {
	case "memory":
		return SortByMemory
	case "pid":
		return SortByPID
	default:
		return SortByCPU
	}
}

func (m SortMode) configName() string {
	switch m {
	case SortByMemory:
		return "memory"
	case SortByPID:
		return "pid"
	default:
		return "cpu"
	}
}

// sortProcesses orders procs in place: CPU and Memory descending, PID
// ascending. Ties always break by ascending PID so the table is stable
// across frames.
func sortProcesses(procs []metrics.ProcessEntry, mode SortMode) {
	sort.Slice(procs, func(i, j int) bool {
		a, b := procs[i], procs[j]
		switch mode {
		case SortByMemory:
			if a.MemoryBytes != b.MemoryBytes {
				return a.MemoryBytes > b.MemoryBytes
			}
		case SortByPID:
			return a.PID < b.PID
		default:
			if a.CPUPercent != b.CPUPercent {
				return a.CPUPercent > b.CPUPercent
			}
		}
		return a.PID < b.PID
	})
}
