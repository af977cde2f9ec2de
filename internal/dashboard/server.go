package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/harshivkrishna/automated-billing-system/internal/logger"
	"github.com/harshivkrishna/automated-billing-system/internal/metrics"
	"github.com/harshivkrishna/automated-billing-system/internal/session"
	"github.com/harshivkrishna/automated-billing-system/internal/stream"
)

// Server exposes the checkout HTTP surface: the dashboard page, the MJPEG
// video feed, the SSE dashboard push channel, and the session controls.
type Server struct {
	cfg         Config
	session     *session.Session
	buffer      *stream.FrameBuffer
	frames      *stream.Broadcaster
	broadcaster *Broadcaster
	metrics     *metrics.Metrics
}

// NewServer returns a configured dashboard server.
func NewServer(cfg Config, sess *session.Session, buffer *stream.FrameBuffer, frames *stream.Broadcaster, broadcaster *Broadcaster, m *metrics.Metrics) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultConfig().Addr
	}
	if cfg.BroadcastInterval <= 0 {
		cfg.BroadcastInterval = DefaultConfig().BroadcastInterval
	}
	return &Server{
		cfg:         cfg,
		session:     sess,
		buffer:      buffer,
		frames:      frames,
		broadcaster: broadcaster,
		metrics:     m,
	}
}

// Handler exposes the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/video_feed", s.handleVideoFeed)
	mux.HandleFunc("/api/dashboard/stream", s.handleDashboardStream)
	mux.HandleFunc("/api/detection/start", s.handleDetectionStart)
	mux.HandleFunc("/api/detection/stop", s.handleDetectionStop)
	mux.HandleFunc("/api/status", s.handleStatus)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleVideoFeed(w http.ResponseWriter, r *http.Request) {
	id, frameCh := s.frames.Subscribe()
	s.metrics.StreamClients.Store(uint64(s.frames.ClientCount()))
	defer func() {
		s.frames.Unsubscribe(id)
		s.metrics.StreamClients.Store(uint64(s.frames.ClientCount()))
	}()
	streamMJPEGFromChannel(w, frameCh)
}

func (s *Server) handleDashboardStream(w http.ResponseWriter, r *http.Request) {
	id, eventCh := s.broadcaster.Subscribe()
	defer s.broadcaster.Unsubscribe(id)
	streamSSEFromChannel(w, eventCh)
}

func (s *Server) handleDetectionStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.session.Start()
	s.metrics.SessionActive.Store(1)
	s.metrics.SessionStarts.Add(1)
	logger.Info("Dashboard", "Detection started")

	writeJSON(w, map[string]any{
		"status":   "started",
		"products": s.session.Snapshot(),
	})
}

func (s *Server) handleDetectionStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.session.Stop()
	s.metrics.SessionActive.Store(0)
	logger.Info("Dashboard", "Detection stopped")

	writeJSON(w, map[string]any{
		"status":   "stopped",
		"products": s.session.Snapshot(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"session": map[string]any{
			"active":           s.session.Active(),
			"products_tracked": len(s.session.Snapshot()),
		},
		"pipeline": map[string]any{
			"frames_annotated":  s.metrics.FramesAnnotated.Load(),
			"frames_dropped":    s.metrics.FramesDropped.Load(),
			"frames_encoded":    s.metrics.FramesEncoded.Load(),
			"buffer_depth":      s.buffer.Len(),
			"stream_clients":    s.frames.ClientCount(),
			"dashboard_clients": s.metrics.DashboardClients.Load(),
			"broadcasts_sent":   s.metrics.BroadcastsSent.Load(),
		},
		"timestamp": float64(time.Now().Unix()),
	}
	writeJSON(w, payload)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		_, _ = fmt.Fprintf(w, `{"error":"%s"}`, err.Error())
	}
}
