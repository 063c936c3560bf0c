package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/tlvcodec/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	frameSizeBuckets = prometheus.ExponentialBuckets(16, 4, 10)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tlvcodec",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tlvcodec",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	decodeResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tlvcodec",
			Subsystem: "codec",
			Name:      "decode_total",
			Help:      "DecodeNext results by status.",
		},
		[]string{"node", "status"},
	)
	encodeResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tlvcodec",
			Subsystem: "codec",
			Name:      "encode_total",
			Help:      "Encode calls by outcome.",
		},
		[]string{"node", "success"},
	)
	frameBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tlvcodec",
			Subsystem: "codec",
			Name:      "frame_bytes",
			Help:      "Size of whole frames including the header.",
			Buckets:   frameSizeBuckets,
		},
		[]string{"node", "direction"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, decodeResults, encodeResults, frameBytes)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// CodecMetrics records handler events under a node label. It satisfies
// protocol.Observer.
type CodecMetrics struct {
	node string
}

var _ protocol.Observer = (*CodecMetrics)(nil)

func NewCodecMetrics(node string) *CodecMetrics {
	RegisterMetrics()
	return &CodecMetrics{node: node}
}

func (m *CodecMetrics) ObserveDecode(status protocol.Status, _ uint32, size int) {
	decodeResults.WithLabelValues(m.node, status.String()).Inc()
	if status == protocol.StatusPacket || status == protocol.StatusSkipped {
		frameBytes.WithLabelValues(m.node, "in").Observe(float64(size))
	}
}

func (m *CodecMetrics) ObserveEncode(_ uint32, size int, err error) {
	encodeResults.WithLabelValues(m.node, strconv.FormatBool(err == nil)).Inc()
	if err == nil {
		frameBytes.WithLabelValues(m.node, "out").Observe(float64(size))
	}
}
