package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QueueMetrics records offline queue depth and flush outcomes.
type QueueMetrics struct {
	depth    prometheus.Gauge
	flushed  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewQueueMetrics registers the queue metrics on the provided registerer.
func NewQueueMetrics(reg prometheus.Registerer) *QueueMetrics {
	if reg == nil {
		return &QueueMetrics{}
	}
	depth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "offline_queue_depth",
		Help: "Number of pending requests in the offline queue.",
	})
	flushed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "offline_queue_flushed_total",
		Help: "Offline queue replay attempts by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "offline_queue_flush_duration_seconds",
		Help:    "Duration of offline queue flush passes in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(depth, flushed, duration)
	return &QueueMetrics{
		depth:    depth,
		flushed:  flushed,
		duration: duration,
	}
}

// SetDepth records the current pending queue depth.
func (q *QueueMetrics) SetDepth(pending int64) {
	if q == nil || q.depth == nil {
		return
	}
	q.depth.Set(float64(pending))
}

// IncFlushed increments the replay counter for the given outcome.
func (q *QueueMetrics) IncFlushed(outcome string) {
	if q == nil || q.flushed == nil {
		return
	}
	q.flushed.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveFlushDuration records the duration of a flush pass.
func (q *QueueMetrics) ObserveFlushDuration(duration time.Duration) {
	if q == nil || q.duration == nil {
		return
	}
	q.duration.Observe(duration.Seconds())
}
