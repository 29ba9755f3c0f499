package sampler

import (
	"log"
	"strings"
	"time"

	"github.com/Prisol7/TaskManager-lite-test/internal/metrics"
)

type netTotals struct {
	rx uint64
	tx uint64
}

// NetSampler periodically refreshes the per-interface throughput map in the
// shared store. Loopback and container-style virtual interfaces are skipped.
type NetSampler struct {
	store    *metrics.Store
	provider NetProvider
	interval time.Duration
	logger   *log.Logger

	prev     map[string]netTotals
	lastTick time.Time
}

func NewNetSampler(store *metrics.Store, provider NetProvider, interval time.Duration, logger *log.Logger) *NetSampler {
	return &NetSampler{
		store:    store,
		provider: provider,
		interval: interval,
		logger:   logger,
		prev:     make(map[string]netTotals),
	}
}

// Run samples until done is closed.
func (s *NetSampler) Run(done <-chan struct{}) {
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

func (s *NetSampler) sample(now time.Time) {
	raws, err := s.provider.Interfaces()
	if err != nil {
		s.logger.Printf("network sampler: %v", err)
		raws = nil
	}

	elapsed := now.Sub(s.lastTick)
	if s.lastTick.IsZero() || elapsed <= 0 {
		elapsed = s.interval
	}

	ifaces := make(map[string]metrics.InterfaceStats, len(raws))
	next := make(map[string]netTotals, len(raws))
	for _, raw := range raws {
		if excludeInterface(raw.Name) {
			continue
		}
		st := metrics.InterfaceStats{
			RxTotalBytes: raw.RxTotal,
			TxTotalBytes: raw.TxTotal,
		}
		// A newly appeared interface has no baseline; its first rate is 0.
		if prev, ok := s.prev[raw.Name]; ok {
			st.RxBytesPerSec = rate(prev.rx, raw.RxTotal, elapsed)
			st.TxBytesPerSec = rate(prev.tx, raw.TxTotal, elapsed)
		}
		ifaces[raw.Name] = st
		next[raw.Name] = netTotals{rx: raw.RxTotal, tx: raw.TxTotal}
	}

	// Interfaces that vanished this cycle fall out of both maps.
	s.prev = next
	s.lastTick = now

	s.store.SetInterfaces(ifaces, now)
}

// excludeInterface filters loopback and virtual interfaces out of the panel.
func excludeInterface(name string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "npcap") || strings.Contains(lower, "nocap") {
		return true
	}
	for _, prefix := range []string{"lo", "docker", "veth", "br-", "vir"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
