// Package overlay draws detection annotations onto camera frames before they
// are queued for streaming.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/harshivkrishna/automated-billing-system/internal/catalog"
	"github.com/harshivkrishna/automated-billing-system/internal/detect"
)

var annotationColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}

const boxThickness = 2

// Draw renders a bounding box and a "label (confidence)" caption for every
// detection. Detections whose category is outside the label catalog are
// skipped; they carry no drawable label.
func Draw(img *image.RGBA, dets []detect.Detection, labels *catalog.Labels) {
	bounds := img.Bounds()
	for _, det := range dets {
		name, ok := labels.Name(det.Category)
		if !ok {
			continue
		}
		box := det.BBox.Clamp(bounds.Dx(), bounds.Dy())
		drawRect(img, box)
		caption := fmt.Sprintf("%s (%.2f)", name, det.Confidence)
		drawText(img, box.X+5, box.Y+15, caption)
	}
}

func drawRect(img *image.RGBA, box detect.BoundingBox) {
	for t := 0; t < boxThickness; t++ {
		for x := box.X; x <= box.X+box.W; x++ {
			setPixel(img, x, box.Y+t)
			setPixel(img, x, box.Y+box.H-t)
		}
		for y := box.Y; y <= box.Y+box.H; y++ {
			setPixel(img, box.X+t, y)
			setPixel(img, box.X+box.W-t, y)
		}
	}
}

func drawText(img *image.RGBA, x, y int, text string) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(annotationColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

func setPixel(img *image.RGBA, x, y int) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, annotationColor)
	}
}
