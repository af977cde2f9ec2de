package stream

import (
	"bytes"
	"image/jpeg"
	"sync"
	"time"

	"github.com/harshivkrishna/automated-billing-system/internal/logger"
	"github.com/harshivkrishna/automated-billing-system/internal/metrics"
)

const (
	jpegQuality  = 75
	idleInterval = 10 * time.Millisecond
)

// Encoder drains the frame buffer, JPEG-encodes each frame once, and hands
// the bytes to the broadcaster. When the buffer is empty it idles briefly so
// it stays responsive to shutdown without busy-spinning.
type Encoder struct {
	buffer      *FrameBuffer
	broadcaster *Broadcaster
	metrics     *metrics.Metrics

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

// NewEncoder creates an encoder reading from buffer and publishing to
// broadcaster.
func NewEncoder(buffer *FrameBuffer, broadcaster *Broadcaster, m *metrics.Metrics) *Encoder {
	return &Encoder{
		buffer:      buffer,
		broadcaster: broadcaster,
		metrics:     m,
		stop:        make(chan struct{}),
	}
}

// Start begins the encode loop.
func (e *Encoder) Start() {
	go e.run()
}

// Stop halts the encoder.
func (e *Encoder) Stop() {
	e.mu.Lock()
	if !e.stopped {
		close(e.stop)
		e.stopped = true
	}
	e.mu.Unlock()
}

func (e *Encoder) run() {
	logger.Info("Encoder", "Starting MJPEG encode loop")
	for {
		select {
		case <-e.stop:
			return
		default:
		}

		frame := e.buffer.Pop()
		if frame == nil {
			time.Sleep(idleInterval)
			continue
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, frame.Image, &jpeg.Options{Quality: jpegQuality}); err != nil {
			e.metrics.EncodeErrors.Add(1)
			logger.Warn("Encoder", "JPEG encode failed for frame %d: %v", frame.FrameNum, err)
			continue
		}

		e.metrics.FramesEncoded.Add(1)
		e.broadcaster.Publish(buf.Bytes())
	}
}
