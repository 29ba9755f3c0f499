package app

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Prisol7/TaskManager-lite-test/internal/metrics"
	"github.com/Prisol7/TaskManager-lite-test/internal/sampler"
)

// RunHeadless samples without a TUI and prints one JSON snapshot per interval
// to stdout. With Count > 0 it exits after that many snapshots, otherwise it
// runs until interrupted.
func RunHeadless(cfg Config) error {
	logger := log.New(os.Stderr, "", log.Ltime)
	store := metrics.NewStore()
	done := make(chan struct{})
	var wg sync.WaitGroup

	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Second
	}
	procSampler := sampler.NewProcessSampler(store, sampler.PsutilProcessProvider{}, interval, logger)
	netSampler := sampler.NewNetSampler(store, sampler.PsutilNetProvider{}, interval, logger)

	if cfg.PrometheusPort != "" {
		startMetricsServer(cfg.PrometheusPort, logger)
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		procSampler.Run(done)
	}()
	go func() {
		defer wg.Done()
		netSampler.Run(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	emitted := 0
	for {
		select {
		case <-ticker.C:
			snap := store.Read()
			if cfg.PrometheusPort != "" {
				publishMetrics(snap)
			}
			if err := enc.Encode(snap); err != nil {
				logger.Printf("encode snapshot: %v", err)
			}
			emitted++
			if cfg.HeadlessCount > 0 && emitted >= cfg.HeadlessCount {
				close(done)
				wg.Wait()
				return nil
			}
		case <-sigCh:
			close(done)
			wg.Wait()
			return nil
		}
	}
}
