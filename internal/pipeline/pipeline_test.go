package pipeline

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harshivkrishna/automated-billing-system/internal/catalog"
	"github.com/harshivkrishna/automated-billing-system/internal/detect"
	"github.com/harshivkrishna/automated-billing-system/internal/metrics"
	"github.com/harshivkrishna/automated-billing-system/internal/stream"
)

func newTestPipeline(capacity int) (*Pipeline, *detect.SnapshotStore, *stream.FrameBuffer, *metrics.Metrics) {
	store := detect.NewSnapshotStore()
	buffer := stream.NewFrameBuffer(capacity)
	labels := catalog.NewLabels([]string{"apple"})
	m := metrics.New()
	return New(store, buffer, labels, m), store, buffer, m
}

func newFrame() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, 640, 480))
}

func TestHandleFramePublishesSnapshotAndFrame(t *testing.T) {
	p, store, buffer, m := newTestPipeline(5)

	dets := []detect.Detection{{Category: 0, Confidence: 0.9, BBox: detect.BoundingBox{X: 10, Y: 10, W: 50, H: 50}}}
	p.HandleFrame(dets, newFrame())

	require.Equal(t, dets, store.ReadCopy())
	require.Equal(t, 1, buffer.Len())
	require.Equal(t, uint64(1), m.FramesAnnotated.Load())

	frame := buffer.Pop()
	require.Equal(t, uint64(1), frame.FrameNum)
	// The box was drawn before the frame was queued.
	require.Equal(t, uint8(255), frame.Image.RGBAAt(10, 10).G)
}

func TestHandleFrameClampsBoxes(t *testing.T) {
	p, store, _, _ := newTestPipeline(5)

	p.HandleFrame([]detect.Detection{{
		Category:   0,
		Confidence: 0.9,
		BBox:       detect.BoundingBox{X: -20, Y: 0, W: 100, H: 600},
	}}, newFrame())

	dets := store.ReadCopy()
	require.Equal(t, detect.BoundingBox{X: 0, Y: 0, W: 80, H: 480}, dets[0].BBox)
}

func TestHandleFrameEmptyDetections(t *testing.T) {
	p, store, buffer, _ := newTestPipeline(5)

	// Seed a previous snapshot; an empty frame must replace, not merge.
	p.HandleFrame([]detect.Detection{{Category: 0, Confidence: 0.9}}, newFrame())
	p.HandleFrame(nil, newFrame())

	require.Empty(t, store.ReadCopy())
	require.Equal(t, 2, buffer.Len())
}

func TestHandleFrameDropsWhenBufferFull(t *testing.T) {
	p, _, buffer, m := newTestPipeline(1)

	p.HandleFrame(nil, newFrame())
	p.HandleFrame(nil, newFrame())

	require.Equal(t, 1, buffer.Len())
	require.Equal(t, uint64(1), m.FramesAnnotated.Load())
	require.Equal(t, uint64(1), m.FramesDropped.Load())
}

func TestHandleFrameNilImage(t *testing.T) {
	p, store, buffer, _ := newTestPipeline(5)

	p.HandleFrame([]detect.Detection{{Category: 0}}, nil)

	require.Empty(t, store.ReadCopy())
	require.Equal(t, 0, buffer.Len())
}
