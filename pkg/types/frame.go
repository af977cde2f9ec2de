package types

import (
	"image"
	"time"
)

// VideoFrame represents one decoded camera frame with metadata
type VideoFrame struct {
	Image     *image.RGBA // Annotated pixel buffer
	Timestamp time.Time   // Frame capture timestamp
	FrameNum  uint64      // Sequential frame number
}

// Clone returns a copy of the frame whose pixel buffer is independent of the
// original, so later annotation passes cannot touch an already-queued frame.
func (f *VideoFrame) Clone() *VideoFrame {
	if f == nil {
		return nil
	}
	clone := &VideoFrame{
		Timestamp: f.Timestamp,
		FrameNum:  f.FrameNum,
	}
	if f.Image != nil {
		img := image.NewRGBA(f.Image.Rect)
		copy(img.Pix, f.Image.Pix)
		img.Stride = f.Image.Stride
		clone.Image = img
	}
	return clone
}

// ServerConfig holds configuration for the checkout server
type ServerConfig struct {
	HTTPAddr     string // HTTP server address (e.g., ":5000")
	MetricsAddr  string // Prometheus metrics address (e.g., ":9090")
	LabelsPath   string // Path to the labels file
	ProductsPath string // Path to the product details JSON
	TargetFPS    int    // Target frames per second
}
