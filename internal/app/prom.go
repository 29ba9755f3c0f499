package app

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Prisol7/TaskManager-lite-test/internal/metrics"
)

var (
	memoryUsage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "taskmgr_memory_bytes",
			Help: "System memory usage in bytes",
		},
		[]string{"type"},
	)

	networkSpeed = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "taskmgr_network_bytes_per_sec",
			Help: "Per-interface network throughput in bytes per second",
		},
		[]string{"interface", "direction"},
	)

	diskIOSpeed = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "taskmgr_disk_bytes_per_sec",
			Help: "Aggregate process disk I/O in bytes per second",
		},
		[]string{"operation"},
	)

	processCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskmgr_process_count",
			Help: "Number of processes in the latest snapshot",
		},
	)

	cpuUsage = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskmgr_cpu_percent",
			Help: "Aggregate CPU usage percentage across all cores",
		},
	)
)

func startMetricsServer(port string, logger *log.Logger) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(memoryUsage)
	registry.MustRegister(networkSpeed)
	registry.MustRegister(diskIOSpeed)
	registry.MustRegister(processCount)
	registry.MustRegister(cpuUsage)

	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			logger.Printf("metrics server: %v", err)
		}
	}()
}

// publishMetrics mirrors a snapshot into the prometheus gauges.
func publishMetrics(snap metrics.Snapshot) {
	memoryUsage.With(prometheus.Labels{"type": "total"}).Set(float64(snap.Memory.TotalBytes))
	memoryUsage.With(prometheus.Labels{"type": "used"}).Set(float64(snap.Memory.UsedBytes))
	memoryUsage.With(prometheus.Labels{"type": "available"}).Set(float64(snap.Memory.AvailableBytes))
	memoryUsage.With(prometheus.Labels{"type": "swap_total"}).Set(float64(snap.Memory.SwapTotalBytes))
	memoryUsage.With(prometheus.Labels{"type": "swap_used"}).Set(float64(snap.Memory.SwapUsedBytes))

	networkSpeed.Reset()
	for name, st := range snap.Interfaces {
		networkSpeed.With(prometheus.Labels{"interface": name, "direction": "rx"}).Set(float64(st.RxBytesPerSec))
		networkSpeed.With(prometheus.Labels{"interface": name, "direction": "tx"}).Set(float64(st.TxBytesPerSec))
	}

	var readBps, writeBps uint64
	for _, p := range snap.Processes {
		readBps += p.DiskReadBytesPerSec
		writeBps += p.DiskWriteBytesPerSec
	}
	diskIOSpeed.With(prometheus.Labels{"operation": "read"}).Set(float64(readBps))
	diskIOSpeed.With(prometheus.Labels{"operation": "write"}).Set(float64(writeBps))

	processCount.Set(float64(len(snap.Processes)))
	cpuUsage.Set(snap.SystemCPUPercent)
}
