package prime

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments the engine without sitting on its hot path:
// the load balancers (GetWork) touch these on every handed-out block,
// not on every inner-loop iteration. Grounded on resonancelab-psizero's
// internal Prometheus collectors (package-level gauges/histograms
// registered against a private registry rather than the global
// DefaultRegisterer, so embedding this package never collides with a
// host process's own metrics).
type metrics struct {
	registry *prometheus.Registry

	segmentsProcessed prometheus.Counter
	blocksIssued      *prometheus.CounterVec
	activeThreads     prometheus.Gauge
	driverDuration    *prometheus.HistogramVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	m := &metrics{
		registry: reg,
		segmentsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "primecount",
			Name:      "segments_processed_total",
			Help:      "Number of sieve segments processed across all load balancers.",
		}),
		blocksIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "primecount",
			Name:      "load_balancer_blocks_issued_total",
			Help:      "Number of work blocks issued, partitioned by balancer.",
		}, []string{"balancer"}),
		activeThreads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "primecount",
			Name:      "active_threads",
			Help:      "Number of worker goroutines currently holding a block of work.",
		}),
		driverDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "primecount",
			Name:      "driver_duration_seconds",
			Help:      "Wall-clock duration of a top-level Pi(x) call, by algorithm.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}, []string{"algorithm"}),
	}
	reg.MustRegister(m.segmentsProcessed, m.blocksIssued, m.activeThreads, m.driverDuration)
	return m
}

// Metrics is the package-level collector set. Exported so a host
// process can register it against its own registry:
// prometheus.DefaultRegisterer.MustRegister(prime.Metrics.Collectors()...).
var Metrics = newMetrics()

// Collectors returns every collector registered on Metrics's private
// registry, for a host to re-register elsewhere.
func (m *metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.segmentsProcessed, m.blocksIssued, m.activeThreads, m.driverDuration,
	}
}
