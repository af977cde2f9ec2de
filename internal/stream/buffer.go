// Package stream carries annotated frames from the inference callback to the
// MJPEG transport: a bounded frame buffer, a JPEG encoder loop, and a fanout
// broadcaster for connected viewers.
package stream

import (
	"sync"

	"github.com/harshivkrishna/automated-billing-system/pkg/types"
)

// DefaultBufferCapacity bounds the number of frames waiting to be encoded.
const DefaultBufferCapacity = 10

// FrameBuffer is a bounded FIFO decoupling the frame producer from the slower
// encoder. The producer never blocks: when the buffer is full the incoming
// frame is discarded so live video degrades instead of stalling annotation.
type FrameBuffer struct {
	mu       sync.Mutex
	frames   []*types.VideoFrame
	capacity int
}

// NewFrameBuffer creates a buffer with the given capacity. A non-positive
// capacity falls back to DefaultBufferCapacity.
func NewFrameBuffer(capacity int) *FrameBuffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	return &FrameBuffer{capacity: capacity}
}

// TryPush enqueues a deep copy of the frame. It returns false when the buffer
// is at capacity and the frame was dropped.
func (b *FrameBuffer) TryPush(frame *types.VideoFrame) bool {
	if frame == nil {
		return false
	}
	// Clone outside the lock; pixel copies are the expensive part.
	clone := frame.Clone()

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) >= b.capacity {
		return false
	}
	b.frames = append(b.frames, clone)
	return true
}

// Pop removes and returns the oldest frame, or nil when the buffer is empty.
func (b *FrameBuffer) Pop() *types.VideoFrame {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) == 0 {
		return nil
	}
	frame := b.frames[0]
	b.frames = b.frames[1:]
	return frame
}

// Len returns the number of buffered frames.
func (b *FrameBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.frames)
}
