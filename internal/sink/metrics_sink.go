package sink

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector owns the Prometheus vectors shared by every MetricsSink
// it wraps. Splitting registration from wrapping lets one process register
// the chunking metrics exactly once against a registry and then construct
// a fresh MetricsSink per chunker instance (e.g. per HTTP request) without
// re-registering — registering the same metric name against a registry
// twice panics, so a MetricsSink cannot own its own registration if more
// than one chunker is going to share that registry over the process's
// lifetime.
type MetricsCollector struct {
	chunksTotal *prometheus.CounterVec
	bytesTotal  *prometheus.CounterVec
	chunkSizes  *prometheus.HistogramVec
}

// NewMetricsCollector registers chunking metrics against reg. Call this
// once per registry; use Wrap to attach as many sinks as needed afterward.
func NewMetricsCollector(reg *prometheus.Registry) *MetricsCollector {
	factory := promauto.With(reg)

	return &MetricsCollector{
		chunksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cdcchunker_chunks_total",
				Help: "Total number of chunks emitted",
			},
			[]string{"algorithm"},
		),
		bytesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cdcchunker_bytes_total",
				Help: "Total number of chunk bytes emitted",
			},
			[]string{"algorithm"},
		),
		chunkSizes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cdcchunker_chunk_size_bytes",
				Help:    "Distribution of emitted chunk sizes in bytes",
				Buckets: prometheus.ExponentialBuckets(512, 2, 12),
			},
			[]string{"algorithm"},
		),
	}
}

// Wrap returns a MetricsSink that records into this collector's vectors,
// labelled with algorithm, while forwarding bytes and boundaries through
// to inner unchanged.
func (c *MetricsCollector) Wrap(inner Sink, algorithm string) *MetricsSink {
	return &MetricsSink{inner: inner, algorithm: algorithm, collector: c}
}

// MetricsSink wraps another Sink and records chunk-level Prometheus metrics
// — count, size distribution, and total bytes, all labelled by algorithm —
// without altering the bytes or boundaries passed through to the inner
// sink.
type MetricsSink struct {
	inner     Sink
	algorithm string
	collector *MetricsCollector
}

// NewMetricsSink is a convenience for the common case of one sink per
// registry: it registers a fresh MetricsCollector against reg and wraps
// inner with it in one call. Callers that construct more than one sink
// against the same registry over its lifetime must instead build a single
// MetricsCollector up front and call Wrap per sink — see MetricsCollector's
// doc comment for why.
func NewMetricsSink(inner Sink, algorithm string, reg *prometheus.Registry) *MetricsSink {
	return NewMetricsCollector(reg).Wrap(inner, algorithm)
}

// Write implements chunker.Sink.
func (m *MetricsSink) Write(p []byte) (int, error) {
	n, err := m.inner.Write(p)
	if err != nil {
		return n, err
	}

	m.collector.chunksTotal.WithLabelValues(m.algorithm).Inc()
	m.collector.bytesTotal.WithLabelValues(m.algorithm).Add(float64(n))
	m.collector.chunkSizes.WithLabelValues(m.algorithm).Observe(float64(n))

	return n, nil
}

// Seek implements chunker.Sink.
func (m *MetricsSink) Seek(offset int64, whence int) (int64, error) {
	return m.inner.Seek(offset, whence)
}

// Flush implements chunker.Sink.
func (m *MetricsSink) Flush() error { return m.inner.Flush() }
