// Package pipeline is the per-frame ingest path: it receives detections and
// the decoded frame from the inference source, publishes the detection
// snapshot, annotates the frame, and enqueues it for streaming.
package pipeline

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/harshivkrishna/automated-billing-system/internal/catalog"
	"github.com/harshivkrishna/automated-billing-system/internal/detect"
	"github.com/harshivkrishna/automated-billing-system/internal/logger"
	"github.com/harshivkrishna/automated-billing-system/internal/metrics"
	"github.com/harshivkrishna/automated-billing-system/internal/overlay"
	"github.com/harshivkrishna/automated-billing-system/internal/stream"
	"github.com/harshivkrishna/automated-billing-system/pkg/types"
)

// Pipeline wires the producer side of the checkout core together.
type Pipeline struct {
	store   *detect.SnapshotStore
	buffer  *stream.FrameBuffer
	labels  *catalog.Labels
	metrics *metrics.Metrics

	frameNum atomic.Uint64
}

// New creates a pipeline publishing into store and buffer.
func New(store *detect.SnapshotStore, buffer *stream.FrameBuffer, labels *catalog.Labels, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		store:   store,
		buffer:  buffer,
		labels:  labels,
		metrics: m,
	}
}

// HandleFrame is invoked once per processed frame by the inference source
// with the already-thresholded detections and the decoded frame. It never
// blocks: boxes are clamped to the frame, the snapshot is replaced, the frame
// is annotated and offered to the stream buffer, and the call returns.
func (p *Pipeline) HandleFrame(dets []detect.Detection, img *image.RGBA) {
	if img == nil {
		return
	}
	bounds := img.Bounds()

	clamped := make([]detect.Detection, len(dets))
	for i, det := range dets {
		det.BBox = det.BBox.Clamp(bounds.Dx(), bounds.Dy())
		clamped[i] = det
	}
	p.store.Replace(clamped)

	overlay.Draw(img, clamped, p.labels)

	frame := &types.VideoFrame{
		Image:     img,
		Timestamp: time.Now(),
		FrameNum:  p.frameNum.Add(1),
	}
	if p.buffer.TryPush(frame) {
		p.metrics.FramesAnnotated.Add(1)
	} else {
		p.metrics.FramesDropped.Add(1)
		logger.Debug("Pipeline", "Stream buffer full, dropping frame %d", frame.FrameNum)
	}
}
