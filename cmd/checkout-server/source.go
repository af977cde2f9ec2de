package main

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"github.com/harshivkrishna/automated-billing-system/internal/catalog"
	"github.com/harshivkrishna/automated-billing-system/internal/detect"
	"github.com/harshivkrishna/automated-billing-system/internal/logger"
	"github.com/harshivkrishna/automated-billing-system/internal/pipeline"
)

const (
	frameWidth  = 640
	frameHeight = 480

	// How long each synthetic product stays in frame before the source moves
	// on to the next catalog entry.
	categoryHold = 2 * time.Second
)

// syntheticSource stands in for the camera and inference model: it renders
// fake frames at the configured rate and cycles one detection through every
// catalog category, so the whole pipeline can run without hardware.
type syntheticSource struct {
	pipeline  *pipeline.Pipeline
	labels    *catalog.Labels
	fps       int
	threshold float64

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

func newSyntheticSource(p *pipeline.Pipeline, labels *catalog.Labels, fps int, threshold float64) *syntheticSource {
	if fps <= 0 {
		fps = 15
	}
	return &syntheticSource{
		pipeline:  p,
		labels:    labels,
		fps:       fps,
		threshold: threshold,
		stop:      make(chan struct{}),
	}
}

// Start begins the synthetic frame loop.
func (s *syntheticSource) Start() {
	go s.run()
}

// Stop halts the source.
func (s *syntheticSource) Stop() {
	s.mu.Lock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
	s.mu.Unlock()
}

func (s *syntheticSource) run() {
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	category := 0
	lastSwitch := time.Now()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if time.Since(lastSwitch) >= categoryHold {
				category = (category + 1) % s.labels.Len()
				lastSwitch = time.Now()
				if name, ok := s.labels.Name(category); ok {
					logger.Debug("TestSource", "Presenting %s", name)
				}
			}

			det := detect.Detection{
				Category:   category,
				Confidence: 0.95,
				BBox:       detect.BoundingBox{X: 100, Y: 100, W: 200, H: 150},
			}
			dets := []detect.Detection{det}
			if det.Confidence < s.threshold {
				dets = nil
			}
			s.pipeline.HandleFrame(dets, s.renderFrame())
		}
	}
}

func (s *syntheticSource) renderFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frameWidth, frameHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 40, G: 44, B: 52, A: 255}), image.Point{}, draw.Src)
	return img
}
