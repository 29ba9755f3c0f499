package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreEmptySnapshot(t *testing.T) {
	s := NewStore()
	snap := s.Read()

	require.NotNil(t, snap.Processes)
	require.NotNil(t, snap.Interfaces)
	assert.Empty(t, snap.Processes)
	assert.Empty(t, snap.Interfaces)
	assert.True(t, snap.ProcessesUpdated.IsZero())
	assert.True(t, snap.InterfacesUpdated.IsZero())
}

func TestSetProcessesReplacesGeneration(t *testing.T) {
	s := NewStore()
	now := time.Now()

	s.SetProcesses([]ProcessEntry{
		{PID: 1, Name: "init", CPUPercent: 1.5},
		{PID: 42, Name: "worker", MemoryBytes: 4096},
	}, MemoryStats{TotalBytes: 100, UsedBytes: 40}, 12.5, now)

	snap := s.Read()
	require.Len(t, snap.Processes, 2)
	assert.Equal(t, int32(42), snap.Processes[1].PID)
	assert.Equal(t, uint64(40), snap.Memory.UsedBytes)
	assert.Equal(t, 12.5, snap.SystemCPUPercent)
	assert.Equal(t, now, snap.ProcessesUpdated)

	// Next generation fully replaces the previous one.
	s.SetProcesses([]ProcessEntry{{PID: 7, Name: "sh"}}, MemoryStats{}, 0, now.Add(time.Second))
	snap = s.Read()
	require.Len(t, snap.Processes, 1)
	assert.Equal(t, int32(7), snap.Processes[0].PID)
}

func TestSetProcessesNilBecomesEmpty(t *testing.T) {
	s := NewStore()
	s.SetProcesses(nil, MemoryStats{}, 0, time.Now())

	snap := s.Read()
	require.NotNil(t, snap.Processes)
	assert.Empty(t, snap.Processes)
}

func TestSetInterfacesDropsVanished(t *testing.T) {
	s := NewStore()
	now := time.Now()

	s.SetInterfaces(map[string]InterfaceStats{
		"eth0": {RxBytesPerSec: 10, TxBytesPerSec: 5, RxTotalBytes: 100, TxTotalBytes: 50},
		"wlan0": {},
	}, now)
	s.SetInterfaces(map[string]InterfaceStats{
		"eth0": {RxBytesPerSec: 20},
	}, now.Add(time.Second))

	snap := s.Read()
	require.Len(t, snap.Interfaces, 1)
	assert.Equal(t, uint64(20), snap.Interfaces["eth0"].RxBytesPerSec)
	_, ok := snap.Interfaces["wlan0"]
	assert.False(t, ok)
}

func TestReadReturnsIndependentCopy(t *testing.T) {
	s := NewStore()
	s.SetProcesses([]ProcessEntry{{PID: 1, Name: "init"}}, MemoryStats{}, 0, time.Now())
	s.SetInterfaces(map[string]InterfaceStats{"lo": {}}, time.Now())

	snap := s.Read()
	snap.Processes[0].Name = "mutated"
	snap.Interfaces["lo"] = InterfaceStats{RxBytesPerSec: 999}

	fresh := s.Read()
	assert.Equal(t, "init", fresh.Processes[0].Name)
	assert.Equal(t, uint64(0), fresh.Interfaces["lo"].RxBytesPerSec)
}

// A reader racing two writers must always observe a fully-formed generation:
// every entry of a generation shares the same marker PID.
func TestConcurrentReadersSeeConsistentGenerations(t *testing.T) {
	s := NewStore()
	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		gen := int32(0)
		for {
			select {
			case <-stop:
				return
			default:
			}
			gen++
			procs := make([]ProcessEntry, 8)
			for i := range procs {
				procs[i] = ProcessEntry{PID: gen}
			}
			s.SetProcesses(procs, MemoryStats{}, 0, time.Now())
		}
	}()

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				snap := s.Read()
				for _, p := range snap.Processes {
					if p.PID != snap.Processes[0].PID {
						t.Error("observed a torn generation")
						return
					}
				}
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(stop)
	wg.Wait()
}
