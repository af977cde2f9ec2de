package overlay

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harshivkrishna/automated-billing-system/internal/catalog"
	"github.com/harshivkrishna/automated-billing-system/internal/detect"
)

func newFrame() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, 640, 480))
}

func TestDrawMarksBoxCorners(t *testing.T) {
	img := newFrame()
	labels := catalog.NewLabels([]string{"apple"})

	Draw(img, []detect.Detection{{
		Category:   0,
		Confidence: 0.95,
		BBox:       detect.BoundingBox{X: 100, Y: 100, W: 200, H: 150},
	}}, labels)

	topLeft := img.RGBAAt(100, 100)
	require.Equal(t, uint8(255), topLeft.G)
	require.Equal(t, uint8(0), topLeft.R)

	bottomRight := img.RGBAAt(300, 250)
	require.Equal(t, uint8(255), bottomRight.G)
}

func TestDrawSkipsUnknownCategory(t *testing.T) {
	img := newFrame()
	labels := catalog.NewLabels([]string{"apple"})

	Draw(img, []detect.Detection{{
		Category:   7,
		Confidence: 0.95,
		BBox:       detect.BoundingBox{X: 100, Y: 100, W: 200, H: 150},
	}}, labels)

	require.Equal(t, uint8(0), img.RGBAAt(100, 100).G)
}

func TestDrawClampsBoxToFrame(t *testing.T) {
	img := newFrame()
	labels := catalog.NewLabels([]string{"apple"})

	// Must not panic on a box reaching past the frame edge.
	Draw(img, []detect.Detection{{
		Category:   0,
		Confidence: 0.5,
		BBox:       detect.BoundingBox{X: 600, Y: 450, W: 100, H: 100},
	}}, labels)

	require.Equal(t, uint8(255), img.RGBAAt(600, 450).G)
}
