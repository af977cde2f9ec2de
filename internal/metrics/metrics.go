package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all checkout pipeline metrics
type Metrics struct {
	// Frame path counters
	FramesAnnotated atomic.Uint64
	FramesDropped   atomic.Uint64
	FramesEncoded   atomic.Uint64
	EncodeErrors    atomic.Uint64

	// Detection path counters
	DetectionsSeen      atomic.Uint64
	DetectionsDropped   atomic.Uint64
	ObservationsCounted atomic.Uint64

	// Dashboard counters
	BroadcastsSent   atomic.Uint64
	DashboardClients atomic.Uint64
	StreamClients    atomic.Uint64

	// Session state
	SessionActive atomic.Uint64 // 0 = inactive, 1 = active
	SessionStarts atomic.Uint64

	registry *prometheus.Registry
}

// New creates a new Metrics instance with Prometheus collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}
	m.registerPrometheusMetrics()
	return m
}

func (m *Metrics) registerPrometheusMetrics() {
	counters := []struct {
		name  string
		help  string
		value *atomic.Uint64
	}{
		{"checkout_frames_annotated_total", "Total frames annotated and offered to the stream buffer", &m.FramesAnnotated},
		{"checkout_frames_dropped_total", "Total frames dropped because the stream buffer was full", &m.FramesDropped},
		{"checkout_frames_encoded_total", "Total frames JPEG-encoded for the MJPEG stream", &m.FramesEncoded},
		{"checkout_encode_errors_total", "Total JPEG encode failures", &m.EncodeErrors},
		{"checkout_detections_seen_total", "Total detections consumed by the aggregation engine", &m.DetectionsSeen},
		{"checkout_detections_dropped_total", "Total detections dropped for an out-of-catalog category", &m.DetectionsDropped},
		{"checkout_observations_counted_total", "Total observations that changed a product quantity", &m.ObservationsCounted},
		{"checkout_broadcasts_sent_total", "Total dashboard payloads broadcast", &m.BroadcastsSent},
		{"checkout_dashboard_clients", "Number of connected dashboard SSE clients", &m.DashboardClients},
		{"checkout_stream_clients", "Number of connected MJPEG stream clients", &m.StreamClients},
		{"checkout_session_active", "Detection session active (0=inactive, 1=active)", &m.SessionActive},
		{"checkout_session_starts_total", "Total detection session starts", &m.SessionStarts},
	}

	for _, c := range counters {
		value := c.value
		m.registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: c.name, Help: c.help},
			func() float64 { return float64(value.Load()) },
		))
	}
}

// Handler returns the Prometheus HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartServer starts the metrics HTTP server
func (m *Metrics) StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return http.ListenAndServe(addr, mux)
}
