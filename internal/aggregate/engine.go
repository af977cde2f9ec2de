// Package aggregate turns the stream of per-frame detections into per-product
// session counts on a fixed cadence.
package aggregate

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/harshivkrishna/automated-billing-system/internal/catalog"
	"github.com/harshivkrishna/automated-billing-system/internal/detect"
	"github.com/harshivkrishna/automated-billing-system/internal/logger"
	"github.com/harshivkrishna/automated-billing-system/internal/metrics"
	"github.com/harshivkrishna/automated-billing-system/internal/session"
)

// DefaultInterval is the aggregation cadence. It is decoupled from the frame
// rate so the engine never outruns inference.
const DefaultInterval = 100 * time.Millisecond

// Engine consumes the latest detection snapshot on a fixed cadence and folds
// each detection into the session's count table.
type Engine struct {
	store    *detect.SnapshotStore
	session  *session.Session
	labels   *catalog.Labels
	metrics  *metrics.Metrics
	clk      clock.Clock
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

// New creates an aggregation engine. A non-positive interval falls back to
// DefaultInterval.
func New(store *detect.SnapshotStore, sess *session.Session, labels *catalog.Labels, m *metrics.Metrics, clk clock.Clock, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Engine{
		store:    store,
		session:  sess,
		labels:   labels,
		metrics:  m,
		clk:      clk,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the aggregation loop.
func (e *Engine) Start() {
	go e.run()
}

// Stop halts the engine.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.stopped {
		close(e.stop)
		e.stopped = true
	}
	e.mu.Unlock()
}

func (e *Engine) run() {
	logger.Info("Aggregator", "Starting aggregation loop (interval=%v)", e.interval)
	ticker := e.clk.Ticker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.tick(e.clk.Now())
		}
	}
}

// tick processes one aggregation cycle. The snapshot is consumed even while
// the session is inactive so no backlog accumulates; counting simply freezes.
func (e *Engine) tick(now time.Time) {
	dets := e.store.ReadCopy()
	if len(dets) == 0 {
		return
	}
	e.metrics.DetectionsSeen.Add(uint64(len(dets)))

	if !e.session.Active() {
		return
	}

	for _, det := range dets {
		label, ok := e.labels.Name(det.Category)
		if !ok {
			e.metrics.DetectionsDropped.Add(1)
			logger.Warn("Aggregator", "Dropping detection with out-of-catalog category %d", det.Category)
			continue
		}
		if e.session.RecordObservation(label, now) {
			e.metrics.ObservationsCounted.Add(1)
			logger.Debug("Aggregator", "Counted %s (confidence %.2f)", label, det.Confidence)
		}
	}
}
