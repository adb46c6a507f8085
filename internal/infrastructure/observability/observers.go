package observability

import (
	"github.com/cachefront/cachefront/internal/core/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var (
	cacheOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "The total number of cache operations by op, collection and outcome",
		},
		[]string{"op", "collection", "outcome"},
	)

	cacheOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "cache_operation_duration_seconds",
			Help: "The cache operation latencies in seconds",
		},
		[]string{"op", "collection"},
	)
)

func init() {
	prometheus.MustRegister(cacheOpsTotal)
	prometheus.MustRegister(cacheOpDuration)
}

// NewMetricsObserver returns an observer that records every cache operation
// outcome and its duration in Prometheus.
func NewMetricsObserver() ports.OpObserver {
	return ports.OpObserverFunc(func(ev ports.OpEvent) {
		cacheOpsTotal.WithLabelValues(ev.Op, ev.Collection, string(ev.Outcome)).Inc()
		cacheOpDuration.WithLabelValues(ev.Op, ev.Collection).Observe(ev.Duration.Seconds())
	})
}

// NewLoggingObserver returns an observer that emits one structured debug entry
// per cache operation, and an error entry for failed ones.
func NewLoggingObserver(logger *logrus.Logger) ports.OpObserver {
	return ports.OpObserverFunc(func(ev ports.OpEvent) {
		if logger == nil {
			return
		}
		entry := logger.WithFields(logrus.Fields{
			"op":          ev.Op,
			"collection":  ev.Collection,
			"id":          ev.ID,
			"field":       ev.Field,
			"outcome":     ev.Outcome,
			"duration_ms": ev.Duration.Milliseconds(),
		})
		if ev.Err != nil {
			entry.WithError(ev.Err).Error("cache operation failed")
			return
		}
		entry.Debug("cache operation")
	})
}
